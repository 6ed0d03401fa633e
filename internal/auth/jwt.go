package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/acadsuite/campus-api/internal/models"
)

// Token type discriminators embedded in claims.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	// ErrInvalidToken indicates the token failed signature or shape checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrWrongTokenType indicates an access token was presented where a
	// refresh token was expected, or vice versa.
	ErrWrongTokenType = errors.New("unexpected token type")
)

// Claims carried by both access and refresh tokens.
type Claims struct {
	UserID    uint        `json:"user_id"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	TokenType string      `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair bundles a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// TokenManagerConfig configures signing secrets and lifetimes.
type TokenManagerConfig struct {
	Secret        string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

// TokenManager issues and verifies HS256 token pairs. Access and refresh
// tokens are signed with separate secrets so one cannot stand in for the
// other even if the type claim were stripped.
type TokenManager struct {
	cfg TokenManagerConfig
}

// NewTokenManager constructs a token manager.
func NewTokenManager(cfg TokenManagerConfig) *TokenManager {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 30 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 24 * time.Hour
	}
	return &TokenManager{cfg: cfg}
}

// IssuePair generates a new access/refresh token pair for the user.
func (m *TokenManager) IssuePair(user models.User) (TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(m.cfg.AccessTTL)
	refreshExpiry := now.Add(m.cfg.RefreshTTL)

	access, err := m.sign(user, TokenTypeAccess, now, accessExpiry, m.cfg.Secret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := m.sign(user, TokenTypeRefresh, now, refreshExpiry, m.cfg.RefreshSecret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	return TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExpiry,
		RefreshExpiresAt: refreshExpiry,
	}, nil
}

func (m *TokenManager) sign(user models.User, tokenType string, now, expiresAt time.Time, secret string) (string, error) {
	claims := Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%d", user.ID),
			Issuer:    m.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyAccess parses and validates an access token.
func (m *TokenManager) VerifyAccess(token string) (Claims, error) {
	return m.verify(token, TokenTypeAccess, m.cfg.Secret)
}

// VerifyRefresh parses and validates a refresh token.
func (m *TokenManager) VerifyRefresh(token string) (Claims, error) {
	return m.verify(token, TokenTypeRefresh, m.cfg.RefreshSecret)
}

func (m *TokenManager) verify(tokenString, wantType, secret string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return Claims{}, ErrWrongTokenType
	}
	return claims, nil
}
