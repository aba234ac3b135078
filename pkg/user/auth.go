package user

import (
	"fmt"
	"time"

	"github.com/RSanjanaS/APP-development-C2G/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer creates and validates the signed session tokens handed out at
// login. The token subject is the user's uid.
type TokenIssuer struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewTokenIssuer(cfg config.Auth) *TokenIssuer {
	ttl := time.Duration(cfg.TokenTTLHours) * time.Hour
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(cfg.JWTSecret), tokenTTL: ttl}
}

func (t *TokenIssuer) Issue(u User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   u.Uid,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.tokenTTL)),
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses the token and returns the uid it was issued for.
func (t *TokenIssuer) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	return claims.Subject, nil
}
