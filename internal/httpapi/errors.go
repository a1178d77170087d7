package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wagetrack/internal/domain"
)

// writeError maps domain error kinds onto the wire contract:
// InvalidInput and Conflict are 400, NotFound 404, Unauthenticated 401,
// anything else is an internal error.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrConflict):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthenticated):
		status = http.StatusUnauthorized
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Do not leak storage internals to clients.
		msg = "internal error"
	} else {
		msg = trimKindSuffix(msg)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// trimKindSuffix strips the trailing sentinel text ("...: conflict") so the
// client sees the stable operation message on its own.
func trimKindSuffix(msg string) string {
	for _, kind := range []error{domain.ErrInvalidInput, domain.ErrNotFound, domain.ErrConflict, domain.ErrUnauthenticated} {
		msg = strings.TrimSuffix(msg, ": "+kind.Error())
	}
	return msg
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
