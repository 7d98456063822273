package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordRequired = errors.New("password is required")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrNotConfigured    = errors.New("admin password is not configured")
)

const (
	tokenPrefix = "admin_token:"
	tokenTTL    = 24 * time.Hour
)

// Service issues and checks the admin capability token. A successful login
// stores an opaque token in Redis; every write request must carry it. There
// is no server-side session beyond the token key itself.
type Service struct {
	Rdb *redis.Client
	// PasswordHash is the bcrypt hash of the admin password. Preferred.
	PasswordHash string
	// Password is a plaintext fallback for local development.
	Password string
}

// Login verifies the admin password and returns a fresh token valid for 24h.
func (s *Service) Login(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", ErrPasswordRequired
	}
	if err := s.verify(password); err != nil {
		return "", err
	}
	token := uuid.NewString()
	if err := s.Rdb.Set(ctx, tokenPrefix+token, "admin", tokenTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) verify(password string) error {
	switch {
	case s.PasswordHash != "":
		if bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password)) != nil {
			return ErrInvalidPassword
		}
	case s.Password != "":
		if subtle.ConstantTimeCompare([]byte(s.Password), []byte(password)) != 1 {
			return ErrInvalidPassword
		}
	default:
		return ErrNotConfigured
	}
	return nil
}

// Verify reports whether the token is a live admin token.
func (s *Service) Verify(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	_, err := s.Rdb.Get(ctx, tokenPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Logout revokes the token. Revoking an unknown token is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Rdb.Del(ctx, tokenPrefix+token).Err()
}
