package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appidentity "github.com/jelectro/storefront/internal/application/identity"
	"github.com/jelectro/storefront/internal/infrastructure/config"
	"github.com/jelectro/storefront/internal/interfaces/http/middleware"
)

// lastUsernameTTL is how long the login-form prefill cookie lives
const lastUsernameTTL = 7 * 24 * time.Hour

// AuthHandler handles registration, login, logout and identity lookup
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
	cookieCfg   config.CookieConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *appidentity.AuthService, cookieCfg config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookieCfg:   cookieCfg,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req appidentity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.setSessionCookies(c, resp)
	h.Created(c, resp)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.setSessionCookies(c, resp)
	h.Success(c, resp)
}

// Logout handles POST /auth/logout. Both the session cookie and the
// prefill cookie are cleared.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(h.sameSite())
	c.SetCookie(middleware.SessionCookieName, "", -1,
		h.cookieCfg.Path, h.cookieCfg.Domain, h.cookieCfg.Secure, true)
	c.SetCookie(middleware.LastUsernameCookieName, "", -1,
		h.cookieCfg.Path, h.cookieCfg.Domain, h.cookieCfg.Secure, false)

	h.Success(c, gin.H{"message": "Logged out"})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getSessionUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.authService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// setSessionCookies sets the session cookie and the persistent
// last_username cookie used to prefill the login form.
func (h *AuthHandler) setSessionCookies(c *gin.Context, resp *appidentity.AuthResponse) {
	c.SetSameSite(h.sameSite())

	sessionTTL := int(time.Until(resp.ExpiresAt).Seconds())
	c.SetCookie(middleware.SessionCookieName, resp.Token, sessionTTL,
		h.cookieCfg.Path, h.cookieCfg.Domain, h.cookieCfg.Secure, true)

	c.SetCookie(middleware.LastUsernameCookieName, resp.User.Username, int(lastUsernameTTL.Seconds()),
		h.cookieCfg.Path, h.cookieCfg.Domain, h.cookieCfg.Secure, false)
}

func (h *AuthHandler) sameSite() http.SameSite {
	switch h.cookieCfg.SameSite {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
