package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaims = errors.New("invalid token claims")
)

const (
	accessTokenType = "access"
	defaultExpiry   = 15 * time.Minute
	clockSkew       = 30 * time.Second
)

// JWTConfig holds JWT configuration. The secret is shared with the identity provider.
type JWTConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// Claims is what the identity provider puts in an access token. The catalog trusts
// user id, email, name and role; TokenVersion lets it revoke every older token of a
// user at once.
type Claims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	Name         string `json:"name,omitempty"`
	Role         string `json:"role"`
	TokenType    string `json:"token_type"`
	TokenVersion int    `json:"token_version"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 access tokens
type JWTManager struct {
	config JWTConfig
	parser *jwt.Parser
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(config JWTConfig) *JWTManager {
	if config.Expiry == 0 {
		config.Expiry = defaultExpiry
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(clockSkew),
		jwt.WithExpirationRequired(),
	}
	if config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(config.Issuer))
	}

	return &JWTManager{config: config, parser: jwt.NewParser(opts...)}
}

// GenerateAccessToken signs an access token with a fresh jti and returns both.
// Production tokens come from the identity provider; catalogctl and tests mint their own.
func (j *JWTManager) GenerateAccessToken(userID uint, email, name, role string, tokenVersion int) (string, string, error) {
	now := time.Now()
	jti := uuid.NewString()

	claims := Claims{
		UserID:       userID,
		Email:        email,
		Name:         name,
		Role:         role,
		TokenType:    accessTokenType,
		TokenVersion: tokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   email,
			Issuer:    j.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.config.Expiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.config.Secret))
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// ValidateToken verifies signature, issuer and lifetime and returns the claims of an
// access token. Refresh tokens and tokens without a subject id are rejected.
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := j.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(j.config.Secret), nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	}

	if claims.TokenType != accessTokenType || claims.UserID == 0 {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
