package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mwork/booker-qa/internal/pkg/password"
)

// tokenLength matches the 15 hex characters restful-booker hands out
const tokenLength = 15

// Service checks admin credentials and issues session tokens
type Service struct {
	username     string
	passwordHash string
	store        TokenStore
	ttl          time.Duration
}

// NewService creates auth service for a single admin account
func NewService(username, plainPassword string, store TokenStore, ttl time.Duration) (*Service, error) {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &Service{
		username:     username,
		passwordHash: hash,
		store:        store,
		ttl:          ttl,
	}, nil
}

// CreateToken issues a token for valid credentials
func (s *Service) CreateToken(ctx context.Context, username, plainPassword string) (string, error) {
	if !s.CheckBasic(username, plainPassword) {
		return "", ErrInvalidCredentials
	}

	token := newToken()
	if err := s.store.Save(ctx, token, s.ttl); err != nil {
		return "", fmt.Errorf("save token: %w", err)
	}
	return token, nil
}

// ValidateToken reports whether token was issued and has not expired
func (s *Service) ValidateToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	return s.store.Exists(ctx, token)
}

// CheckBasic verifies a username/password pair against the admin account
func (s *Service) CheckBasic(username, plainPassword string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) != 1 {
		return false
	}
	return password.Verify(plainPassword, s.passwordHash)
}

func newToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:tokenLength]
}
