package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionLifetime is how long a session token stays valid.
const SessionLifetime = 180 * 24 * time.Hour

var ErrInvalidSession = errors.New("the session token is invalid")

type sessionClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

var sessionSecret []byte

// SetSessionSecret configures the key used to sign session tokens.
func SetSessionSecret(secret string) {
	sessionSecret = []byte(secret)
}

// NewSessionToken encodes a user ID into a signed session token.
func NewSessionToken(userID uuid.UUID) (string, error) {
	claims := &sessionClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sessionSecret)
}

// ParseSessionToken decodes a session token and returns the user ID it
// was issued for. Any mutation of the token, a bad signature or an
// expired lifetime all return ErrInvalidSession; a wrong user ID is
// never returned.
func ParseSessionToken(token string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(_ *jwt.Token) (interface{}, error) {
		return sessionSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return uuid.Nil, ErrInvalidSession
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, ErrInvalidSession
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrInvalidSession
	}

	return id, nil
}
