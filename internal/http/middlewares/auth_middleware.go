package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gracecommunity/churchhub/internal/auth"
	"github.com/gracecommunity/churchhub/internal/authz"
	"github.com/gracecommunity/churchhub/internal/domain/user"
)

// Keep these interfaces small so tests can fake them easily.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// UserGetter resolves the token subject to the current account record, so a
// revoked (deleted) or still-pending account is caught on every request, not
// only at login.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

type AuthMiddleware struct {
	jwt   TokenVerifier
	users UserGetter
}

func NewAuthMiddleware(jwt TokenVerifier, users UserGetter) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, users: users}
}

func abortError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// RequireAuth verifies the bearer credential, loads the account and stashes
// an authz.Actor on the context. A pending account fails with 403
// account_pending rather than 401, so the caller can tell the difference.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortError(c, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if raw == "" {
			abortError(c, http.StatusUnauthorized, "unauthorized", "Missing or invalid access token")
			return
		}

		claims, err := m.jwt.VerifyToken(raw)
		if err != nil {
			abortError(c, http.StatusUnauthorized, "unauthorized", "Invalid or expired access token")
			return
		}

		u, err := m.users.GetByID(c.Request.Context(), claims.Subject)
		if err != nil {
			// The account behind the token no longer exists.
			abortError(c, http.StatusUnauthorized, "unauthorized", "Unknown account")
			return
		}

		if !u.Approved {
			abortError(c, http.StatusForbidden, "account_pending", "Account pending approval")
			return
		}

		setActor(c, authz.Actor{
			ID:            u.ID,
			Role:          u.Role,
			Approved:      u.Approved,
			Authenticated: true,
		})

		c.Next()
	}
}

// OptionalAuth resolves a bearer credential when one is presented but never
// rejects the request. Public read routes use it so a creator or an admin can
// still see a pending entry that is hidden from everyone else.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if raw == "" {
			c.Next()
			return
		}

		claims, err := m.jwt.VerifyToken(raw)
		if err != nil {
			c.Next()
			return
		}

		u, err := m.users.GetByID(c.Request.Context(), claims.Subject)
		if err != nil || !u.Approved {
			c.Next()
			return
		}

		setActor(c, authz.Actor{
			ID:            u.ID,
			Role:          u.Role,
			Approved:      u.Approved,
			Authenticated: true,
		})

		c.Next()
	}
}

// RequireRole gates a route to the given role. Admin passes every check.
func (m *AuthMiddleware) RequireRole(required user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFromContext(c)

		if !actor.Authenticated {
			abortError(c, http.StatusUnauthorized, "unauthorized", "Missing identity context")
			return
		}

		if actor.Role != required && actor.Role != user.RoleAdmin {
			abortError(c, http.StatusForbidden, "forbidden", "Insufficient permissions")
			return
		}

		c.Next()
	}
}
