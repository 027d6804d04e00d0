package utils

import (
	"errors"
	"time"

	"medledger/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "MEDLEDGER"
	}
	return []byte(secret)
}

// GenerateOperatorToken creates a signed JWT for an operator with the given id and
// display name. The token expires after the specified duration.
func GenerateOperatorToken(operatorID, operatorName string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  operatorID,
		"name": operatorName,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractOperatorFromToken extracts the operator id (subject) and display name from a
// valid JWT token string.
func ExtractOperatorFromToken(tokenString string) (string, string, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", "", errors.New("token does not contain a valid 'sub' claim")
	}

	name, _ := claims["name"].(string)
	return sub, name, nil
}
