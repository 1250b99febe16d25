// Package auth protects the write API: HS256 bearer tokens for admin
// clients plus a bcrypt-hashed static API key as the non-expiring
// alternative.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/untpkit/resolver/internal/common"
)

// Claims extends the registered claims with the client identity the token
// was minted for.
type Claims struct {
	jwt.RegisteredClaims
	ClientID string
}

// GenerateToken mints an HS256 admin token for clientID.
func GenerateToken(clientID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		ClientID: clientID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetClientIDFromToken validates the token and returns the client identity
// it carries.
func GetClientIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.ClientID, nil
}
