package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/logger"
	"patrimonio/internal/models"
)

// ProfileGetter loads a profile by id.
type ProfileGetter interface {
	GetProfileByID(id string) (*models.Profile, error)
}

// CurrentRole replaces the role carried by the access token with the one
// stored for the profile, so role changes apply before the token expires.
// It must run after AuthMiddleware.
func CurrentRole(profiles ProfileGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := profiles.GetProfileByID(c.GetString(ContextUserID))
		if err != nil {
			if errors.Is(err, apperrors.ErrProfileNotFound) {
				abortWithAppError(c, apperrors.ErrUnauthorized)
				return
			}
			logger.Get().Errorw("role lookup failed", "user_id", c.GetString(ContextUserID), "error", err)
			abortWithAppError(c, apperrors.ErrInternalServer)
			return
		}
		c.Set(ContextRole, profile.Role)
		c.Next()
	}
}

func abortWithAppError(c *gin.Context, err *apperrors.AppError) {
	abortWithError(c, err.StatusCode, err.Code, err.Message)
}

func roleFrom(c *gin.Context) models.Role {
	if v, ok := c.Get(ContextRole); ok {
		if role, ok := v.(models.Role); ok {
			return role
		}
	}
	return ""
}

// ReadOnlyGuard rejects mutating requests from viewer profiles. It must run
// after AuthMiddleware, and after CurrentRole where the stored role counts.
func ReadOnlyGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		if !roleFrom(c).CanWrite() {
			abortWithAppError(c, apperrors.ErrReadOnlyProfile)
			return
		}
		c.Next()
	}
}

// RequireRole lets through only profiles holding one of roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := roleFrom(c)
		for _, r := range roles {
			if current == r {
				c.Next()
				return
			}
		}
		abortWithAppError(c, apperrors.ErrForbidden)
	}
}
