package auth

import (
	"context"
	"errors"
	"time"

	"github.com/mavhungutrezzy/umami-tube/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlacklistService handles JWT token revocation and the local mirror of token subjects
type BlacklistService struct {
	db *gorm.DB
}

// NewBlacklistService creates a new blacklist service
func NewBlacklistService(db *gorm.DB) *BlacklistService {
	return &BlacklistService{db: db}
}

// RevokeToken blacklists one token by jti until it would have expired anyway.
// Revoking the same jti twice is a no-op.
func (s *BlacklistService) RevokeToken(ctx context.Context, jti string, userID uint, expiresAt time.Time, reason string) error {
	entry := model.JWTTokenBlacklist{
		Token:     jti,
		UserID:    userID,
		Reason:    reason,
		ExpiresAt: expiresAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token"}}, DoNothing: true}).
		Create(&entry).Error
}

// IsTokenRevoked reports whether jti is blacklisted and not yet past its expiry
func (s *BlacklistService) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	var found []uint
	err := s.db.WithContext(ctx).
		Model(&model.JWTTokenBlacklist{}).
		Where("token = ? AND expires_at > ?", jti, time.Now()).
		Limit(1).
		Pluck("id", &found).Error
	if err != nil {
		return false, err
	}
	return len(found) > 0, nil
}

// RevokeAllUserTokens raises the user's token version; every token minted with a
// lower version fails authentication from now on
func (s *BlacklistService) RevokeAllUserTokens(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error
}

// CleanupExpiredTokens deletes entries whose tokens have expired and reports how many
func (s *BlacklistService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&model.JWTTokenBlacklist{})
	return result.RowsAffected, result.Error
}

// SyncUser mirrors the token subject into the users table so listings can reference
// it as owner. Email, name and role follow the identity provider; the token version
// is only ever raised locally.
func (s *BlacklistService) SyncUser(ctx context.Context, claims *Claims) (*model.User, error) {
	user := model.User{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	}
	if user.Name == "" {
		user.Name = claims.Email
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "role", "updated_at"}),
	}).Create(&user).Error
	if err != nil {
		return nil, err
	}

	var stored model.User
	if err := s.db.WithContext(ctx).First(&stored, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidClaims
		}
		return nil, err
	}
	return &stored, nil
}
