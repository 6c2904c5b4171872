package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mavhungutrezzy/umami-tube/model"
	"github.com/mavhungutrezzy/umami-tube/services"
	"github.com/mavhungutrezzy/umami-tube/utils/auth"
	"github.com/mavhungutrezzy/umami-tube/utils/response"
	"gorm.io/gorm"
)

// AuthMiddleware verifies bearer tokens issued by the identity provider
type AuthMiddleware struct {
	jwtManager       *auth.JWTManager
	blacklistService *auth.BlacklistService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager, db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:       jwtManager,
		blacklistService: auth.NewBlacklistService(db),
	}
}

// Required is middleware that requires a valid JWT token
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := m.authenticate(c)
		if err != nil || user == nil {
			return err
		}
		return c.Next()
	}
}

// RequireOperator is middleware that requires a valid token held by an admin
func (m *AuthMiddleware) RequireOperator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := m.authenticate(c)
		if err != nil || user == nil {
			return err
		}
		if !user.IsOperator() {
			return response.Forbidden(c, "Admin access required")
		}
		return c.Next()
	}
}

// authenticate writes the 401/500 response itself and returns a nil user when it did
func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (*model.User, error) {
	// Get token from Authorization header
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, response.Unauthorized(c, "Missing authorization token")
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, response.Unauthorized(c, "Invalid authorization format")
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, response.Unauthorized(c, "Token has expired")
		}
		return nil, response.Unauthorized(c, "Invalid token")
	}

	// Check if token is revoked (blacklisted)
	isRevoked, err := m.blacklistService.IsTokenRevoked(c.UserContext(), claims.ID)
	if err != nil {
		return nil, response.InternalServerError(c, "Failed to check token status")
	}
	if isRevoked {
		return nil, response.Unauthorized(c, "Token has been revoked")
	}

	user, err := m.blacklistService.SyncUser(c.UserContext(), claims)
	if err != nil {
		return nil, response.InternalServerError(c, "Failed to load user")
	}

	// Tokens minted before the last RevokeAllUserTokens carry an older version
	if claims.TokenVersion < user.TokenVersion {
		return nil, response.Unauthorized(c, "Token has been invalidated")
	}

	c.Locals("user", user)
	c.Locals("claims", claims)
	c.Locals("token_jti", claims.ID)

	return user, nil
}

// GetUser extracts full user object from context
func GetUser(c *fiber.Ctx) (*model.User, bool) {
	user := c.Locals("user")
	if user == nil {
		return nil, false
	}
	u, ok := user.(*model.User)
	return u, ok
}

// GetActor returns the authenticated requester as seen by the catalog services
func GetActor(c *fiber.Ctx) (services.Actor, bool) {
	user, ok := GetUser(c)
	if !ok {
		return services.Actor{}, false
	}
	return services.Actor{ID: user.ID, Operator: user.IsOperator()}, true
}

// GetClaims extracts full claims from context
func GetClaims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims := c.Locals("claims")
	if claims == nil {
		return nil, false
	}
	claimsData, ok := claims.(*auth.Claims)
	return claimsData, ok
}
