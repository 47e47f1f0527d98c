package response

import (
	"errors"
	"net/http"

	"kidspace/services"

	"github.com/gin-gonic/gin"
)

// Error sends a standardized error response
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// FromServiceError maps a service error onto its status code.
// Unknown errors become a 500 carrying fallback, never the raw error text.
func FromServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalid):
		Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		Error(c, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrForbidden):
		Error(c, http.StatusForbidden, "Forbidden")
	case errors.Is(err, services.ErrConflict):
		Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrRateLimited):
		Error(c, http.StatusTooManyRequests, err.Error())
	default:
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, fallback)
	}
}

