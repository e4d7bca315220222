package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubChecker struct {
	err error
}

func (s stubChecker) CheckAvailable(_ context.Context) error {
	return s.err
}

func TestRequireDatabase(t *testing.T) {
	newRouter := func(checker AvailabilityChecker) *gin.Engine {
		router := gin.New()
		router.POST("/checkout", RequireDatabase(checker), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		return router
	}

	t.Run("passes through when database is reachable", func(t *testing.T) {
		router := newRouter(stubChecker{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/checkout", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("returns 503 when database is down", func(t *testing.T) {
		router := newRouter(stubChecker{err: errors.New("connection refused")})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/checkout", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "DATABASE_UNAVAILABLE")
	})
}
