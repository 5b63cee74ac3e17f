package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/bank_dashboard/internal/apperrors"
	portssvc "github.com/SscSPs/bank_dashboard/internal/core/ports/services"
	"github.com/SscSPs/bank_dashboard/internal/dto"
	"github.com/SscSPs/bank_dashboard/internal/middleware"
	"github.com/SscSPs/bank_dashboard/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// refreshCookie describes where the refresh token cookie lives.
type refreshCookie struct {
	name   string
	path   string
	secure bool
}

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cookie       refreshCookie
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
		cookie: refreshCookie{
			name:   cfg.RefreshTokenCookieName,
			path:   cfg.RefreshTokenCookiePath,
			secure: cfg.IsProduction,
		},
	}
}

// registerAuthRoutes sets up the public authentication routes. Login and refresh are rate limited per client IP.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, loginLimiter *limiter.Limiter) {
	h := NewAuthHandler(services.User, services.Token, cfg)
	limit := middleware.RateLimit(loginLimiter, middleware.ClientIPKey)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", limit, h.Login)
		auth.POST("/refresh", limit, h.Refresh)
		auth.POST("/logout", h.Logout)
	}
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookie.name, value, maxAge, h.cookie.path, "", h.cookie.secure, true)
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT access token. A refresh token is set as an HttpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, logger, err, "Failed to authenticate user")
		return
	}

	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, logger, err, "Failed to generate token")
		return
	}

	refresh, refreshExpiresAt, err := h.tokenService.IssueRefreshToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, logger, err, "Failed to issue refresh token")
		return
	}
	h.setRefreshCookie(c, refresh, int(time.Until(refreshExpiresAt).Seconds()))

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// Refresh godoc
// @Summary Refresh access token
// @Description Exchanges the refresh token cookie for a new access token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	raw, err := c.Cookie(h.cookie.name)
	if err != nil || raw == "" {
		respondError(c, logger, apperrors.ErrInvalidRefresh, "Refresh token cookie missing")
		return
	}

	user, err := h.tokenService.ValidateRefreshToken(c.Request.Context(), raw)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			h.setRefreshCookie(c, "", -1)
		}
		respondError(c, logger, err, "Failed to validate refresh token")
		return
	}

	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, logger, err, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, dto.RefreshTokenResponse{Token: token, ExpiresAt: expiresAt})
}

// Logout godoc
// @Summary Logout
// @Description Revokes the refresh token held in the cookie and clears it. Succeeds even without a valid cookie.
// @Tags auth
// @Success 204
// @Failure 500 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if raw, err := c.Cookie(h.cookie.name); err == nil && raw != "" {
		user, err := h.tokenService.ValidateRefreshToken(c.Request.Context(), raw)
		switch {
		case err == nil:
			if err := h.tokenService.RevokeRefreshToken(c.Request.Context(), user.UserID); err != nil {
				respondError(c, logger, err, "Failed to revoke refresh token")
				return
			}
			logger.Info("User logged out", slog.String("user_id", user.UserID))
		case !errors.Is(err, apperrors.ErrUnauthorized):
			respondError(c, logger, err, "Failed to validate refresh token")
			return
		}
	}

	h.setRefreshCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}
