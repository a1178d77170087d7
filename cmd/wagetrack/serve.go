package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"wagetrack/internal/authsession"
	"wagetrack/internal/clock"
	"wagetrack/internal/config"
	"wagetrack/internal/db"
	"wagetrack/internal/httpapi"
	"wagetrack/internal/logger"
	"wagetrack/internal/repository"
	"wagetrack/internal/service"
)

func serveCmd() *cobra.Command {
	var addr, dbPath, storeKind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if addr != "" {
				cfg.Addr = addr
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			if storeKind != "" {
				cfg.Store = storeKind
			}
			return serve(cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides WAGETRACK_ADDR)")
	cmd.Flags().StringVar(&dbPath, "db", "", "sqlite database path (overrides WAGETRACK_DB)")
	cmd.Flags().StringVar(&storeKind, "store", "", "storage backend: sqlite or memory")
	return cmd
}

func serve(cfg config.Config) error {
	log := logger.New()

	var store repository.Store
	switch cfg.Store {
	case "memory":
		store = repository.NewMemoryStore()
	case "sqlite":
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		store = repository.NewSQLiteStore(database)
	default:
		return fmt.Errorf("unknown store %q (want sqlite or memory)", cfg.Store)
	}

	var tokens authsession.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer client.Close()
		tokens = authsession.NewRedisStore(client)
		log.Info("session tokens in redis", "addr", cfg.RedisAddr)
	} else {
		tokens = authsession.NewMemoryStore()
	}

	clk := clock.System()
	handler := httpapi.NewHandler(
		service.NewWageService(store, clk),
		service.NewSessionService(store, clk),
		service.NewSummaryService(store),
		service.NewUserService(store, clk),
		tokens,
		cfg.SessionTTL,
		cfg.SecureCookies,
		log,
	)

	gin.SetMode(gin.ReleaseMode)
	router := handler.Router()

	log.Info("listening", "addr", cfg.Addr, "store", cfg.Store)
	return router.Run(cfg.Addr)
}
