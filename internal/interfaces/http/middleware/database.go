package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jelectro/storefront/internal/interfaces/http/dto"
)

// AvailabilityChecker reports whether the database can serve a request
type AvailabilityChecker interface {
	CheckAvailable(ctx context.Context) error
}

// RequireDatabase rejects requests with 503 when the database is
// unreachable, before any work is attempted.
func RequireDatabase(checker AvailabilityChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := checker.CheckAvailable(c.Request.Context()); err != nil {
			requestID := c.GetString("request_id")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeDatabaseUnavailable,
					"Database is temporarily unavailable", requestID))
			return
		}
		c.Next()
	}
}
