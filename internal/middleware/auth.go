package middleware

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/jaydipchangani/project-management-backend/internal/access"
	"github.com/jaydipchangani/project-management-backend/internal/constants"
	apierrors "github.com/jaydipchangani/project-management-backend/internal/errors"
	"github.com/jaydipchangani/project-management-backend/internal/models"
	"github.com/jaydipchangani/project-management-backend/internal/services"
)

// Authenticator resolves the principal behind a bearer token or a session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (access.Principal, error)
	PrincipalForUser(ctx context.Context, userID uint64) (access.Principal, error)
}

// RequireAuth checks for a bearer token first and falls back to the session cookie
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			principal access.Principal
			err       error
		)

		if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
			token, ok := bearerToken(header)
			if !ok {
				apierrors.Unauthorized(c, "Invalid authorization header")
				return
			}
			principal, err = auth.Authenticate(c.Request.Context(), token)
		} else {
			session := sessions.Default(c)
			userID, ok := toUint64(session.Get(constants.ContextKeyUserID))
			if !ok {
				apierrors.Unauthorized(c, "")
				return
			}
			principal, err = auth.PrincipalForUser(c.Request.Context(), userID)
			if errors.Is(err, services.ErrUserNotFound) {
				// the account is gone, drop the stale session
				session.Clear()
				_ = session.Save()
			}
		}

		if err != nil {
			if errors.Is(err, services.ErrUnauthorized) || errors.Is(err, services.ErrNotFound) {
				apierrors.Unauthorized(c, "Invalid or expired credentials")
				return
			}
			log.Printf("authentication failed: %v", err)
			apierrors.InternalError(c, "")
			return
		}

		// Store the principal in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, principal.ID)
		c.Set(constants.ContextKeyPrincipal, principal)
		c.Next()
	}
}

// RequireRoles rejects principals whose role is not one of roles
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}
		if !principal.HasRole(roles...) {
			apierrors.Forbidden(c, "Your role is not allowed to access this resource")
			return
		}
		c.Next()
	}
}

// GetPrincipal retrieves the authenticated principal from context
func GetPrincipal(c *gin.Context) (access.Principal, bool) {
	v, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return access.Principal{}, false
	}
	p, ok := v.(access.Principal)
	return p, ok
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUint64(userID)
}

func toUint64(v interface{}) (uint64, bool) {
	switch v := v.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
