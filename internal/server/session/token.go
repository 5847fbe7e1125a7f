package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

// Claims are the registered claims plus the session payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID         string `json:"uid,omitempty"`
	RecoveryTarget string `json:"rec,omitempty"`
}

// GenerateToken signs s with HS256, valid for validityDuration from now.
func GenerateToken(s Session, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID:         s.UserID,
		RecoveryTarget: s.RecoveryTarget,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}

	return tokenString, nil
}

// ParseToken verifies tokenString and returns the session it carries.
// Only HS256 is accepted.
func ParseToken(tokenString string, secretKey []byte) (Session, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid {
		return Session{}, ErrInvalidToken
	}

	return Session{UserID: claims.UserID, RecoveryTarget: claims.RecoveryTarget}, nil
}
