package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"wagetrack/internal/authsession"
	"wagetrack/internal/service"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Handler exposes the wage/session/summary services as JSON resources.
type Handler struct {
	wages     service.WageService
	sessions  service.SessionService
	summaries service.SummaryService
	users     service.UserService

	tokens        authsession.Store
	sessionTTL    time.Duration
	secureCookies bool
	log           *slog.Logger
}

func NewHandler(
	wages service.WageService,
	sessions service.SessionService,
	summaries service.SummaryService,
	users service.UserService,
	tokens authsession.Store,
	sessionTTL time.Duration,
	secureCookies bool,
	log *slog.Logger,
) *Handler {
	return &Handler{
		wages:         wages,
		sessions:      sessions,
		summaries:     summaries,
		users:         users,
		tokens:        tokens,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
		log:           log,
	}
}

// Router assembles the gin engine with all routes and middleware.
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(h.log))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/api/auth/login", h.login)
	router.POST("/api/auth/logout", h.logout)

	api := router.Group("/api")
	api.Use(RequireAuth(h.tokens))

	api.GET("/me", h.me)

	api.GET("/wage", h.getWage)
	api.PUT("/wage", h.setWage)

	api.POST("/sessions/start", h.startSession)
	api.POST("/sessions/:id/stop", h.stopSession)
	api.GET("/sessions", h.listSessions)
	api.GET("/sessions/current", h.currentSession)
	api.PATCH("/sessions/:id", h.updateSession)
	api.DELETE("/sessions/:id", h.deleteSession)

	api.GET("/summary/daily", h.dailySummary)
	api.GET("/summary/monthly", h.monthlySummary)

	return router
}

func (h *Handler) getWage(c *gin.Context) {
	w, err := h.wages.Get(c.Request.Context(), currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWageResponse(w))
}

func (h *Handler) setWage(c *gin.Context) {
	var req struct {
		HourlyWage int `json:"hourly_wage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}
	w, err := h.wages.Set(c.Request.Context(), currentUser(c), req.HourlyWage)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWageResponse(w))
}

func (h *Handler) startSession(c *gin.Context) {
	var req struct {
		HourlyWage *int `json:"hourly_wage"`
	}
	// An empty body means "use the stored wage".
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "malformed request body")
			return
		}
	}
	session, err := h.sessions.Start(c.Request.Context(), currentUser(c), req.HourlyWage)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSessionResponse(session))
}

func (h *Handler) stopSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	session, err := h.sessions.Stop(c.Request.Context(), currentUser(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

func (h *Handler) listSessions(c *gin.Context) {
	var filter service.SessionFilter

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.ParseInLocation(dateLayout, dateStr, time.UTC)
		if err != nil {
			badRequest(c, "date must be YYYY-MM-DD")
			return
		}
		filter.Date = &date
	}
	if monthStr := c.Query("month"); monthStr != "" {
		month, err := time.ParseInLocation(monthLayout, monthStr, time.UTC)
		if err != nil {
			badRequest(c, "month must be YYYY-MM")
			return
		}
		filter.Year = month.Year()
		filter.Month = month.Month()
	}

	sessions, err := h.sessions.List(c.Request.Context(), currentUser(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponses(sessions))
}

func (h *Handler) currentSession(c *gin.Context) {
	view, err := h.sessions.Current(c.Request.Context(), currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, currentResponse{
		Session:             toSessionResponse(view.Session),
		ElapsedSeconds:      view.ElapsedSeconds,
		CurrentEarnedAmount: view.CurrentEarnedAmount,
	})
}

func (h *Handler) updateSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req struct {
		StartTime *string `json:"start_time"`
		EndTime   *string `json:"end_time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	var newStart, newEnd *time.Time
	if req.StartTime != nil {
		t, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			badRequest(c, "start_time must be an RFC3339 timestamp")
			return
		}
		newStart = &t
	}
	if req.EndTime != nil {
		t, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			badRequest(c, "end_time must be an RFC3339 timestamp")
			return
		}
		newEnd = &t
	}

	session, err := h.sessions.Update(c.Request.Context(), currentUser(c), id, newStart, newEnd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

func (h *Handler) deleteSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.sessions.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) dailySummary(c *gin.Context) {
	dateStr := c.Query("date")
	date, err := time.ParseInLocation(dateLayout, dateStr, time.UTC)
	if err != nil {
		badRequest(c, "date must be YYYY-MM-DD")
		return
	}
	summary, err := h.summaries.Daily(c.Request.Context(), currentUser(c), date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dailySummaryResponse(*summary))
}

func (h *Handler) monthlySummary(c *gin.Context) {
	monthStr := c.Query("month")
	if monthStr == "" {
		badRequest(c, "month is required")
		return
	}
	month, err := time.ParseInLocation(monthLayout, monthStr, time.UTC)
	if err != nil {
		badRequest(c, "month must be YYYY-MM")
		return
	}
	summary, err := h.summaries.Monthly(c.Request.Context(), currentUser(c), month.Year(), int(month.Month()))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMonthlySummaryResponse(summary))
}

// sessionID parses the :id path segment, answering 404 for garbage since no
// session can have a non-numeric id.
func sessionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "work session not found"})
		return 0, false
	}
	return id, true
}
