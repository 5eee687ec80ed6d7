package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminTokenDuration is how long an admin login stays valid
const AdminTokenDuration = 2 * time.Hour

var ErrInvalidToken = errors.New("invalid admin token")

// AdminClaims are the JWT claims carried by the admin auth cookie
type AdminClaims struct {
	jwt.RegisteredClaims
}

// GenerateAdminToken creates a signed token for an authenticated admin
func GenerateAdminToken(signingKey []byte) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AdminTokenDuration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}
	return signed, nil
}

// ValidateAdminToken verifies a token string and returns an error if it
// is expired, malformed, or signed with the wrong key
func ValidateAdminToken(signingKey []byte, tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return signingKey, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid || claims.Subject != "admin" {
		return ErrInvalidToken
	}
	return nil
}
