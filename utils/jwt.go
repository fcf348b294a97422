package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"go-tycoon/config"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func GenerateAccessToken(userID string) (string, error) {
	cfg := config.Get().JWT
	return sign(userID, "tycoon-access", cfg.AccessTTL, []byte(cfg.AccessSecret))
}

func GenerateRefreshToken(userID string) (string, error) {
	cfg := config.Get().JWT
	return sign(userID, "tycoon-refresh", cfg.RefreshTTL, []byte(cfg.RefreshSecret))
}

func sign(userID, issuer string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ParseAccessToken(tokenStr string) (*Claims, error) {
	return parseToken(tokenStr, []byte(config.Get().JWT.AccessSecret))
}

func ParseRefreshToken(tokenStr string) (*Claims, error) {
	return parseToken(tokenStr, []byte(config.Get().JWT.RefreshSecret))
}

func parseToken(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
