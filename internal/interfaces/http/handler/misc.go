package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jelectro/storefront/internal/interfaces/http/middleware"
)

// Pinger reports whether the database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles liveness and readiness checks
type HealthHandler struct {
	BaseHandler
	db      Pinger
	version string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	if err := h.db.Ping(ctx); err != nil {
		dbStatus = "down"
	}

	h.Success(c, gin.H{
		"status":   "ok",
		"version":  h.version,
		"database": dbStatus,
	})
}

// ContactRequest represents a message from the contact form
type ContactRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,min=1,max=5000"`
}

// ContactHandler accepts contact-form submissions. Messages are logged
// for follow-up; there is no mailbox integration.
type ContactHandler struct {
	BaseHandler
	logger *zap.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(log *zap.Logger) *ContactHandler {
	return &ContactHandler{logger: log}
}

// Submit handles POST /contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	h.logger.Info("Contact message received",
		zap.String("request_id", getRequestID(c)),
		zap.String("name", req.Name),
		zap.String("email", req.Email),
		zap.String("message", req.Message),
	)

	h.Success(c, gin.H{"message": "Thanks for reaching out. We will get back to you soon."})
}
