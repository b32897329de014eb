package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"events-web-app/internal/apperror"
	"events-web-app/internal/metrics"
	"events-web-app/internal/models"
	"events-web-app/pkg/utils"
)

const (
	// AccessTokenCookie and RefreshTokenCookie name the auth cookies
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"

	ContextUserIDKey = "userID"
	ContextRolesKey  = "roles"
)

// AccessTokenValidator checks access tokens for the auth middleware
type AccessTokenValidator interface {
	ValidateAccessToken(tokenString string) (*utils.Claims, error)
}

// AuthMiddleware validates the JWT access token from the Authorization
// header or, failing that, from the accessToken cookie
func AuthMiddleware(tokens AccessTokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			utils.ProblemResponse(c, http.StatusUnauthorized, apperror.ErrMissingToken.Error())
			return
		}

		// Validate token
		claims, err := tokens.ValidateAccessToken(token)
		if err != nil {
			utils.ProblemResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		// Inject claims into context
		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextRolesKey, models.NewRoles(claims.Roles...))

		metrics.AuthenticatedRequestsTotal.Inc()

		c.Next()
	}
}

func extractToken(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		// Check Bearer prefix
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

// CurrentUserID returns the id of the authenticated caller
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString(ContextUserIDKey)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// CurrentRoles returns the roles of the authenticated caller
func CurrentRoles(c *gin.Context) models.Roles {
	value, exists := c.Get(ContextRolesKey)
	if !exists {
		return nil
	}
	roles, _ := value.(models.Roles)
	return roles
}
