package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jelectro/storefront/internal/infrastructure/auth"
	"github.com/jelectro/storefront/internal/interfaces/http/dto"
)

// Session context keys
const (
	SessionClaimsKey   = "session_claims"
	SessionUserIDKey   = "session_user_id"
	SessionUsernameKey = "session_username"
	SessionRoleKey     = "session_role"

	// SessionCookieName is the cookie carrying the session token
	SessionCookieName = "jelectro_session"
	// LastUsernameCookieName remembers the last login for form prefill
	LastUsernameCookieName = "last_username"

	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// SessionAuth validates the session token and stores the identity in the
// gin context. The token is read from the Authorization header first and
// the session cookie second, so both API clients and browsers work.
func SessionAuth(sessions *auth.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c, "Authentication required")
			return
		}

		claims, err := sessions.Validate(token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired session")
			return
		}

		c.Set(SessionClaimsKey, claims)
		c.Set(SessionUserIDKey, claims.UserID)
		c.Set(SessionUsernameKey, claims.Username)
		c.Set(SessionRoleKey, claims.Role)

		c.Next()
	}
}

// RequireAdmin rejects any request whose session role is not admin. It
// must run after SessionAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(SessionRoleKey) != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Admin access required"))
			return
		}
		c.Next()
	}
}

// GetSessionUserID returns the authenticated user ID from the gin context
func GetSessionUserID(c *gin.Context) string {
	return c.GetString(SessionUserIDKey)
}

// GetSessionUsername returns the authenticated username from the gin context
func GetSessionUsername(c *gin.Context) string {
	return c.GetString(SessionUsernameKey)
}

// GetSessionRole returns the authenticated role from the gin context
func GetSessionRole(c *gin.Context) string {
	return c.GetString(SessionRoleKey)
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader(AuthHeaderKey); header != "" {
		if strings.HasPrefix(header, BearerPrefix) {
			return strings.TrimPrefix(header, BearerPrefix)
		}
		return ""
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}
