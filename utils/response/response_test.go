package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"kidspace/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFromServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"invalid", fmt.Errorf("%w: title is required", services.ErrInvalid), http.StatusBadRequest, `{"error":"invalid input: title is required"}`},
		{"not found", services.ErrNotFound, http.StatusNotFound, `{"error":"Not found"}`},
		{"forbidden", services.ErrForbidden, http.StatusForbidden, `{"error":"Forbidden"}`},
		{"conflict", services.ErrConflict, http.StatusConflict, `{"error":"already exists"}`},
		{"rate limited", services.ErrRateLimited, http.StatusTooManyRequests, `{"error":"too many submissions, please wait a few minutes"}`},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, `{"error":"Failed to do it"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			FromServiceError(c, tt.err, "Failed to do it")
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}
