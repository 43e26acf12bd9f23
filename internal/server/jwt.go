package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/server/middleware"
)

// Claims are the registered claims of an API token. The subject is the caller's UUID.
type Claims struct {
	jwt.RegisteredClaims
	subject uuid.UUID
}

// GetUserID returns the parsed subject. It satisfies middleware.UserIDGetter.
func (c *Claims) GetUserID() uuid.UUID {
	return c.subject
}

// JWTService issues and checks HS256 API tokens.
type JWTService struct {
	config *config.JWTConfig
	now    func() time.Time
}

// NewJWTService creates a JWTService signing with cfg.Secret.
func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{config: cfg, now: time.Now}
}

// AsTokenValidator adapts the service to the auth middleware.
func (s *JWTService) AsTokenValidator() middleware.TokenValidator {
	return tokenValidatorFunc(func(token string) (middleware.UserIDGetter, error) {
		claims, err := s.ValidateToken(token)
		if err != nil {
			return nil, err
		}
		return claims, nil
	})
}

type tokenValidatorFunc func(string) (middleware.UserIDGetter, error)

func (f tokenValidatorFunc) ValidateToken(token string) (middleware.UserIDGetter, error) {
	return f(token)
}

// GenerateToken signs a token for subject that expires after the configured TTL.
func (s *JWTService) GenerateToken(subject uuid.UUID) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    s.config.Issuer,
		Subject:   subject.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TTL())),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the signature, algorithm, expiry and issuer of tokenString
// and requires a non-nil UUID subject.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, &claims.RegisteredClaims, func(*jwt.Token) (any, error) {
		return []byte(s.config.Secret), nil
	}, opts...)
	if err != nil {
		return nil, describeTokenError(err)
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil || subject == uuid.Nil {
		return nil, fmt.Errorf("token has no subject")
	}
	claims.subject = subject
	return claims, nil
}

func describeTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("invalid token signature: %w", err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("token expired: %w", err)
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return fmt.Errorf("token has no expiry: %w", err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("malformed token: %w", err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return fmt.Errorf("unexpected token issuer: %w", err)
	}
	return fmt.Errorf("failed to parse token: %w", err)
}
