package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"events-web-app/internal/apperror"
	"events-web-app/internal/config"
	"events-web-app/internal/dto"
	"events-web-app/internal/metrics"
	"events-web-app/internal/middleware"
	"events-web-app/internal/service"
	"events-web-app/pkg/utils"
)

type AuthHandler struct {
	userService *service.UserService
	cookies     config.CookieConfig
	log         *zap.Logger
}

func NewAuthHandler(userService *service.UserService, cookies config.CookieConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		cookies:     cookies,
		log:         log,
	}
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		respondError(c, h.log, err)
		return
	}
	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()

	h.setTokenCookies(c, result.AccessToken, result.RefreshToken)
	utils.SuccessResponse(c, dto.TokenResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.userService.Register(c.Request.Context(), strings.TrimSpace(req.Email), req.Password, strings.TrimSpace(req.Username))
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "failure").Inc()
		respondError(c, h.log, err)
		return
	}
	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()

	h.setTokenCookies(c, result.AccessToken, result.RefreshToken)
	utils.SuccessResponse(c, dto.TokenResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

// Logout expires the auth cookies the client still holds
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	for _, name := range []string{middleware.AccessTokenCookie, middleware.RefreshTokenCookie} {
		if _, err := c.Cookie(name); err == nil {
			c.SetCookie(name, "", -1, "/", h.cookies.Domain, h.cookies.Secure, true)
		}
	}
	c.Status(http.StatusOK)
}

// GetRole returns the role carried by the caller's access token, or null
// when the token names none. Runs behind AuthMiddleware.
func (h *AuthHandler) GetRole(c *gin.Context) {
	token := accessTokenFrom(c)
	if token == "" {
		respondError(c, h.log, apperror.ErrMissingToken)
		return
	}

	role, err := h.userService.GetRoleByToken(token)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

// Refresh issues a new access token from the token cookies
func (h *AuthHandler) Refresh(c *gin.Context) {
	accessToken, _ := c.Cookie(middleware.AccessTokenCookie)
	refreshToken, _ := c.Cookie(middleware.RefreshTokenCookie)

	newAccessToken, err := h.userService.RefreshToken(c.Request.Context(), accessToken, refreshToken)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("refresh", "failure").Inc()
		respondError(c, h.log, err)
		return
	}
	metrics.AuthAttemptsTotal.WithLabelValues("refresh", "success").Inc()

	h.setCookie(c, middleware.AccessTokenCookie, newAccessToken)
	utils.SuccessResponse(c, dto.TokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: refreshToken,
	})
}

func (h *AuthHandler) setTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	h.setCookie(c, middleware.AccessTokenCookie, accessToken)
	h.setCookie(c, middleware.RefreshTokenCookie, refreshToken)
}

// setCookie writes a session cookie readable only by the server
func (h *AuthHandler) setCookie(c *gin.Context, name, value string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(name, value, 0, "/", h.cookies.Domain, h.cookies.Secure, true)
}

// accessTokenFrom looks where AuthMiddleware looks, header before cookie
func accessTokenFrom(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(middleware.AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	return ""
}
