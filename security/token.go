package security

import (
	"errors"
	"fmt"
	"time"

	"trackside/training-api/config"

	"github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrTokenInvalid = errors.New("token is invalid or expired")

// Claims holds the JWT payload fields.
type Claims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// TokenMaker signs and verifies the HS256 access and refresh tokens.
type TokenMaker struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenMaker(cfg config.Auth) *TokenMaker {
	return &TokenMaker{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessLifetime,
		refreshTTL: cfg.RefreshLifetime,
	}
}

func (t *TokenMaker) AccessLifetime() time.Duration  { return t.accessTTL }
func (t *TokenMaker) RefreshLifetime() time.Duration { return t.refreshTTL }

// MakeAccess mints a short-lived access token for the given user.
func (t *TokenMaker) MakeAccess(userID string) (string, error) {
	token, _, err := t.make(userID, TokenTypeAccess, t.accessTTL)
	return token, err
}

// MakeRefresh mints a refresh token and returns its jti so the caller
// can blacklist it later.
func (t *TokenMaker) MakeRefresh(userID string) (token, jti string, err error) {
	return t.make(userID, TokenTypeRefresh, t.refreshTTL)
}

func (t *TokenMaker) make(userID, tokenType string, ttl time.Duration) (string, string, error) {
	jti, err := gonanoid.New()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate jti, %w", err)
	}

	now := time.Now()
	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", "", err
	}

	return signed, jti, nil
}

// Parse validates the signature, expiry and type of a token and
// returns its claims. Any failure collapses into ErrTokenInvalid.
func (t *TokenMaker) Parse(tokenStr, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", tok.Method.Alg())
		}

		return t.secret, nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.TokenType != wantType || claims.UserID == "" || claims.ID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
