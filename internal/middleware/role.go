package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"events-web-app/internal/apperror"
	"events-web-app/internal/models"
	"events-web-app/pkg/utils"
)

// CheckRoles allows the caller when it holds at least one required role
func CheckRoles(caller models.Roles, required []models.Role) error {
	if len(caller) == 0 {
		return apperror.ErrNoRoleClaim
	}
	if !caller.Intersects(required...) {
		return apperror.ErrRoleNotPermitted
	}
	return nil
}

// RequireRoles rejects callers without one of the required roles. It must
// run after AuthMiddleware.
func RequireRoles(logger *zap.Logger, required ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextRolesKey); !exists {
			utils.ProblemResponse(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		caller := CurrentRoles(c)
		if err := CheckRoles(caller, required); err != nil {
			logger.Warn("Role check failed",
				zap.String("user_id", c.GetString(ContextUserIDKey)),
				zap.Stringer("user_roles", caller),
				zap.Error(err),
			)
			utils.ProblemResponse(c, http.StatusForbidden, err.Error())
			return
		}

		c.Next()
	}
}
