package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wagetrack/internal/authsession"
	"wagetrack/internal/domain"
)

// login accepts an opaque user identifier, upserts the user record, and
// issues a session cookie. No credential verification happens here; the
// identifier is trusted as-is.
func (h *Handler) login(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}
	if !domain.ValidUserID(req.UserID) {
		badRequest(c, "user id must be 1-64 chars of [A-Za-z0-9_-]")
		return
	}

	ctx := c.Request.Context()
	if err := h.users.Ensure(ctx, req.UserID); err != nil {
		writeError(c, err)
		return
	}

	id, err := authsession.GenerateID()
	if err != nil {
		writeError(c, err)
		return
	}
	expiresAt := time.Now().Add(h.sessionTTL)
	if err := h.tokens.Create(ctx, authsession.Token{ID: id, UserID: req.UserID, ExpiresAt: expiresAt}); err != nil {
		writeError(c, err)
		return
	}

	authsession.SetCookie(c.Writer, id, expiresAt, h.secureCookies)
	c.JSON(http.StatusOK, gin.H{"user_id": req.UserID})
}

func (h *Handler) logout(c *gin.Context) {
	if cookie, err := c.Cookie(authsession.CookieName); err == nil && cookie != "" {
		if err := h.tokens.Delete(c.Request.Context(), cookie); err != nil {
			writeError(c, err)
			return
		}
	}
	authsession.ClearCookie(c.Writer, h.secureCookies)
	c.Status(http.StatusNoContent)
}

func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user_id": currentUser(c)})
}
