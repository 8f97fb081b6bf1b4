package auth

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims represents the claims in a session token. Sessions are
// anonymous demo conversations, not user accounts; the token only binds
// requests to one conversation store.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

const sessionTokenTTL = 24 * time.Hour

var jwtSecret = []byte("vaani-dev-secret")

// LoadSecretFromEnv replaces the signing secret with VAANI_JWT_SECRET
// when set. Called once from main before any token is issued.
func LoadSecretFromEnv() {
	if secret := os.Getenv("VAANI_JWT_SECRET"); secret != "" {
		jwtSecret = []byte(secret)
	}
}

// GenerateSessionToken generates a JWT bound to a conversation session
func GenerateSessionToken(sessionID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(sessionTokenTTL)
	claims := &SessionClaims{
		SessionID: sessionID,
		Role:      "session",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken validates a session token and returns its claims
func ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrInvalidKey
}
