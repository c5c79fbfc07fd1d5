package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TOTPGrantSubject is the subject of every TOTP grant token.
const TOTPGrantSubject = "vault-totp"

// GenerateGrantToken signs an HS256 token proving that a TOTP code was accepted
// at now. It expires after duration.
func GenerateGrantToken(issuer string, now time.Time, duration time.Duration, signKey string) (string, error) {
	if issuer == "" || duration <= 0 || signKey == "" {
		return "", errors.New("invalid params for generating grant token")
	}

	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   TOTPGrantSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing grant token: %w", err)
	}
	return signed, nil
}

// ValidateGrantToken checks signature, issuer, subject and expiry of a grant
// token as of now.
func ValidateGrantToken(tokenString, signKey, issuer string, now time.Time) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithSubject(TOTPGrantSubject),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return fmt.Errorf("error occurred validating grant token: %w", err)
	}
	if !token.Valid {
		return errors.New("invalid grant token")
	}
	return nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>" value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
