package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dosada05/swiss-tournament/utils"
	"github.com/golang-jwt/jwt/v4"
)

const (
	RoleOrganizer   = "organizer"
	defaultTokenTTL = 12 * time.Hour
)

// AuthService exchanges the organizer password for a signed token that unlocks mutating routes.
type AuthService interface {
	IssueToken(ctx context.Context, password string) (string, time.Time, error)
}

type authService struct {
	passwordHash string
	jwtSecret    []byte
	ttl          time.Duration
	now          func() time.Time
}

func NewAuthService(passwordHash, jwtSecret string, ttl time.Duration) AuthService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &authService{
		passwordHash: passwordHash,
		jwtSecret:    []byte(jwtSecret),
		ttl:          ttl,
		now:          time.Now,
	}
}

func (s *authService) IssueToken(ctx context.Context, password string) (string, time.Time, error) {
	if s.passwordHash == "" || len(s.jwtSecret) == 0 {
		return "", time.Time{}, ErrAuthDisabled
	}
	if !utils.CheckPasswordHash(password, s.passwordHash) {
		return "", time.Time{}, ErrAuthInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := jwt.MapClaims{
		"role": RoleOrganizer,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}
