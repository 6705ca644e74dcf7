package config

import (
	"errors"
	"os"
	"time"

	"MedConnect/util"

	"github.com/golang-jwt/jwt/v5"
)

// One token policy for every flow: signup and login both issue 24h tokens.
const tokenTTL = 24 * time.Hour

type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secret"
	}
	return []byte(secret)
}

func GenerateJWT(userID, role string) (string, error) {
	return generateJWTWithTTL(userID, role, tokenTTL)
}

func generateJWTWithTTL(userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}

func VerifyJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, util.Unauthenticated(util.INVALID_TOKEN)
	}
	if claims.UserID == "" || claims.Role == "" {
		return nil, util.Unauthenticated(util.INVALID_TOKEN)
	}
	return claims, nil
}
