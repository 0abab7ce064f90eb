// Package token issues and verifies the access/refresh JWT pair.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// fallbackTTLSeconds is used when a TTL string cannot be parsed. Kept at
// 15 minutes for wire compatibility with existing deployments.
const fallbackTTLSeconds = 900

// AccessClaims is the access token payload: {sub, email, deviceId?, iat, exp}
type AccessClaims struct {
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	DeviceID string `json:"deviceId,omitempty"`
	IssuedAt int64  `json:"iat"`
	Expiry   int64  `json:"exp"`
}

func (c *AccessClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.Expiry, 0)), nil
}
func (c *AccessClaims) GetIssuedAt() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.IssuedAt, 0)), nil
}
func (c *AccessClaims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }
func (c *AccessClaims) GetIssuer() (string, error)              { return "", nil }
func (c *AccessClaims) GetSubject() (string, error)             { return c.Subject, nil }
func (c *AccessClaims) GetAudience() (jwt.ClaimStrings, error)  { return nil, nil }

// RefreshClaims is the refresh token payload: {sub, tokenId, iat, exp}
type RefreshClaims struct {
	Subject  string `json:"sub"`
	TokenID  string `json:"tokenId"`
	IssuedAt int64  `json:"iat"`
	Expiry   int64  `json:"exp"`
}

func (c *RefreshClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.Expiry, 0)), nil
}
func (c *RefreshClaims) GetIssuedAt() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.IssuedAt, 0)), nil
}
func (c *RefreshClaims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }
func (c *RefreshClaims) GetIssuer() (string, error)              { return "", nil }
func (c *RefreshClaims) GetSubject() (string, error)             { return c.Subject, nil }
func (c *RefreshClaims) GetAudience() (jwt.ClaimStrings, error)  { return nil, nil }

// Pair bundles a freshly issued token pair. ExpiresIn always reports the
// access token TTL in seconds.
type Pair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Manager signs and verifies the token pair. Access and refresh tokens use
// separate secrets.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     int64 // seconds
	refreshTTL    int64 // seconds
}

// NewManager creates a Manager from TTL strings like "15m" or "7d"
func NewManager(accessSecret, refreshSecret, accessExpiresIn, refreshExpiresIn string) *Manager {
	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     ParseTTL(accessExpiresIn),
		refreshTTL:    ParseTTL(refreshExpiresIn),
	}
}

// AccessTTL returns the access token lifetime in seconds
func (m *Manager) AccessTTL() int64 {
	return m.accessTTL
}

// GenerateAccessToken creates a signed access token. deviceID is optional
// and omitted from the payload when empty.
func (m *Manager) GenerateAccessToken(userID uuid.UUID, email, deviceID string) (string, error) {
	now := time.Now().Unix()
	claims := &AccessClaims{
		Subject:  userID.String(),
		Email:    email,
		DeviceID: deviceID,
		IssuedAt: now,
		Expiry:   now + m.accessTTL,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.accessSecret)
}

// GenerateRefreshToken creates a signed refresh token carrying a fresh
// unique tokenId.
func (m *Manager) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	now := time.Now().Unix()
	claims := &RefreshClaims{
		Subject:  userID.String(),
		TokenID:  uuid.NewString(),
		IssuedAt: now,
		Expiry:   now + m.refreshTTL,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.refreshSecret)
}

// GenerateTokens issues an access/refresh pair
func (m *Manager) GenerateTokens(userID uuid.UUID, email, deviceID string) (*Pair, error) {
	accessToken, err := m.GenerateAccessToken(userID, email, deviceID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := m.GenerateRefreshToken(userID)
	if err != nil {
		return nil, err
	}

	return &Pair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    m.accessTTL,
	}, nil
}

// VerifyAccessToken parses and validates an access token
func (m *Manager) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.accessSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// VerifyRefreshToken parses and validates a refresh token
func (m *Manager) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RefreshClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.refreshSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*RefreshClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// ParseTTL converts a TTL string (integer plus s|m|h|d suffix) to seconds.
// Anything unparseable falls back to 900 seconds; callers depend on that
// fallback, do not change it.
func ParseTTL(ttl string) int64 {
	if len(ttl) < 2 {
		return fallbackTTLSeconds
	}

	value, err := strconv.ParseInt(ttl[:len(ttl)-1], 10, 64)
	if err != nil {
		return fallbackTTLSeconds
	}

	switch ttl[len(ttl)-1] {
	case 's':
		return value
	case 'm':
		return value * 60
	case 'h':
		return value * 60 * 60
	case 'd':
		return value * 60 * 60 * 24
	default:
		return fallbackTTLSeconds
	}
}
