package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/guttosm/grind-calculator/config"
)

// SessionToken is a signed token bound to one anonymous wizard session.
type SessionToken struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
}

// SessionTokenService issues and validates the tokens that guard the catalog and wizard endpoints.
type SessionTokenService interface {
	// Issue signs a token for sessionID, or for a new session when it is empty.
	Issue(sessionID string) (*SessionToken, error)
	// Validate returns the session id carried by token or ErrInvalidSessionToken.
	Validate(token string) (string, error)
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionTokenServiceImpl implements SessionTokenService with HS256 JWTs.
type SessionTokenServiceImpl struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewSessionTokenService creates a token service from the session configuration.
func NewSessionTokenService(cfg config.SessionConfig) *SessionTokenServiceImpl {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionTokenServiceImpl{
		secretKey: []byte(cfg.SecretKey),
		ttl:       ttl,
		now:       time.Now,
	}
}

func (s *SessionTokenServiceImpl) Issue(sessionID string) (*SessionToken, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := &sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &SessionToken{
		Token:     signed,
		SessionID: sessionID,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *SessionTokenServiceImpl) Validate(token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSessionToken
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secretKey, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid || claims.SessionID == "" {
		return "", ErrInvalidSessionToken
	}
	return claims.SessionID, nil
}
