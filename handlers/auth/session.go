package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mavhungutrezzy/umami-tube/utils/auth"
	"github.com/mavhungutrezzy/umami-tube/utils/logger"
	"github.com/mavhungutrezzy/umami-tube/utils/middleware"
	"github.com/mavhungutrezzy/umami-tube/utils/response"
	"gorm.io/gorm"
)

// AuthHandler exposes the caller's mirrored account and token revocation.
// Tokens are issued by the identity provider, never here.
type AuthHandler struct {
	blacklistService *auth.BlacklistService
	log              *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		blacklistService: auth.NewBlacklistService(db),
		log:              log,
	}
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	return response.Success(c, user)
}

// Logout handles POST /api/v1/auth/logout by blacklisting the presented token
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	claims, ok := middleware.GetClaims(c)
	if !ok || claims.ID == "" {
		return response.BadRequest(c, "No token ID found")
	}

	// Keep the entry until the token would have expired on its own
	expiresAt := time.Now().Add(24 * time.Hour)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := h.blacklistService.RevokeToken(c.UserContext(), claims.ID, user.ID, expiresAt, "logout"); err != nil {
		h.log.Error("Failed to revoke token", "user_id", user.ID, "error", err)
		return response.InternalServerError(c, "Failed to logout")
	}
	return response.NoContent(c)
}

// LogoutAll handles POST /api/v1/auth/logout-all; every token minted so far stops working
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	if err := h.blacklistService.RevokeAllUserTokens(c.UserContext(), user.ID); err != nil {
		h.log.Error("Failed to revoke user tokens", "user_id", user.ID, "error", err)
		return response.InternalServerError(c, "Failed to logout")
	}
	return response.NoContent(c)
}
