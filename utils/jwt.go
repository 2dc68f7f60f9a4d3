package utils

import (
	"errors"
	"strconv"
	"time"

	"beu/config"

	"github.com/golang-jwt/jwt"
)

// FeedAudience marks tokens that only grant read access to a calendar feed.
const FeedAudience = "calendar-feed"

var ErrMissingSecret = errors.New("jwt secret is not configured")

func secretKey() ([]byte, error) {
	if config.AppConfig.JWTSecret == "" {
		return nil, ErrMissingSecret
	}
	return []byte(config.AppConfig.JWTSecret), nil
}

// GenerateToken creates a signed JWT with the given subject and audience.
// The token expires after the specified duration.
func GenerateToken(subject, audience string, duration time.Duration) (string, error) {
	key, err := secretKey()
	if err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"sub": subject,
		"aud": audience,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	key, err := secretKey()
	if err != nil {
		return nil, err
	}
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
}

// ExtractIDFromToken extracts the subject from a valid bearer token.
// Feed tokens are refused so a leaked feed URL cannot act on the API.
func ExtractIDFromToken(tokenString string) (string, error) {
	claims, err := validClaims(tokenString)
	if err != nil {
		return "", err
	}
	if aud, _ := claims["aud"].(string); aud == FeedAudience {
		return "", errors.New("feed token cannot be used as bearer token")
	}
	return subject(claims)
}

// ExtractFeedSubject extracts the subject from a calendar feed token.
func ExtractFeedSubject(tokenString string) (string, error) {
	claims, err := validClaims(tokenString)
	if err != nil {
		return "", err
	}
	if !claims.VerifyAudience(FeedAudience, true) {
		return "", errors.New("token is not a calendar feed token")
	}
	return subject(claims)
}

func validClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// subject reads "sub", falling back to the "user_id" claim the backend issues.
func subject(claims jwt.MapClaims) (string, error) {
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub, nil
	}
	switch id := claims["user_id"].(type) {
	case string:
		if id != "" {
			return id, nil
		}
	case float64:
		return strconv.FormatInt(int64(id), 10), nil
	}
	return "", errors.New("token does not contain a valid 'sub' claim")
}
