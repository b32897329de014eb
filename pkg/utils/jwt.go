package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"events-web-app/internal/apperror"
	"events-web-app/internal/models"
)

const refreshTokenBytes = 64

// Claims represents JWT custom claims
type Claims struct {
	UserID   string       `json:"id"`
	Email    string       `json:"email"`
	Username string       `json:"username"`
	Roles    models.Roles `json:"roles"`
	jwt.RegisteredClaims
}

// JWTProvider issues and validates HS256 access tokens and opaque refresh tokens.
type JWTProvider struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	now           func() time.Time
}

// NewJWTProvider creates a provider signing with secret.
func NewJWTProvider(secret string, accessExpiry, refreshExpiry time.Duration) *JWTProvider {
	return &JWTProvider{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		now:           time.Now,
	}
}

// IssueTokens generates an access/refresh pair and records the refresh token
// hash and its expiry on user. The caller persists user.
func (p *JWTProvider) IssueTokens(user *models.User) (string, string, error) {
	accessToken, err := p.GenerateAccessToken(user)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := GenerateRefreshToken()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	hash := HashRefreshToken(refreshToken)
	expiresAt := p.now().UTC().Add(p.refreshExpiry)
	user.RefreshToken = &hash
	user.RefreshTokenExpiresAt = &expiresAt

	return accessToken, refreshToken, nil
}

// GenerateAccessToken generates a short-lived JWT access token
func (p *JWTProvider) GenerateAccessToken(user *models.User) (string, error) {
	now := p.now()
	claims := Claims{
		UserID:   user.ID.String(),
		Email:    user.Email,
		Username: user.Username,
		Roles:    user.Roles(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(p.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// ValidateAccessToken validates signature, algorithm and lifetime.
func (p *JWTProvider) ValidateAccessToken(tokenString string) (*Claims, error) {
	return p.parse(tokenString, jwt.WithTimeFunc(p.now))
}

// ValidateExpired validates signature and algorithm only, so claims of an
// expired access token can still be read.
func (p *JWTProvider) ValidateExpired(tokenString string) (*Claims, error) {
	return p.parse(tokenString, jwt.WithoutClaimsValidation())
}

func (p *JWTProvider) parse(tokenString string, opts ...jwt.ParserOption) (*Claims, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperror.ErrInvalidToken
	}
	return claims, nil
}

// GenerateRefreshToken generates a cryptographically random refresh token
func GenerateRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// HashRefreshToken creates a SHA-256 hash of the refresh token for secure storage
func HashRefreshToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// RefreshTokenMatches compares a presented token with a stored hash in constant time.
func RefreshTokenMatches(stored *string, presented string) bool {
	if stored == nil || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*stored), []byte(HashRefreshToken(presented))) == 1
}
