package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/edutectno/identity-service/internal/api/metrics"
	"github.com/edutectno/identity-service/internal/core/domain"
	"github.com/edutectno/identity-service/internal/core/ports"
	"github.com/edutectno/identity-service/internal/token"
)

// AuthService implements registration and login. Both return a signed bearer
// token whose subject is the username.
type AuthService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	codec    *token.Codec
	throttle ports.LoginThrottle
	log      zerolog.Logger
}

// NewAuthService wires the service. throttle may be nil to disable login
// rate limiting.
func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, codec *token.Codec, throttle ports.LoginThrottle, log zerolog.Logger) *AuthService {
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		codec:    codec,
		throttle: throttle,
		log:      log,
	}
}

// Login verifies the credentials and issues a token. An unknown username and
// a wrong password are indistinguishable to the caller: both surface as
// domain.ErrInvalidCredentials so usernames cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, username)
		if err != nil {
			// Throttle outages must not take logins down with them.
			s.log.Warn().Err(err).Msg("login throttle unavailable")
		} else if !allowed {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("username", username).Msg("login for unknown username")
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", err
	}

	if !s.hasher.Verify(ctx, password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	tok, err := s.codec.Issue(user.Username, user.Role, time.Now().UTC())
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return tok, nil
}

// Register hashes the password, persists a new user with the default USER
// role, and issues a token for it. Username uniqueness is enforced by the
// store; a violation surfaces as domain.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, error) {
	digest, err := s.hasher.Hash(ctx, input.Password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		PasswordHash: digest,
		Firstname:    input.Firstname,
		Lastname:     input.Lastname,
		Country:      input.Country,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		} else {
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		}
		return "", err
	}

	tok, err := s.codec.Issue(created.Username, created.Role, now)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return "", err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", created.Username).Msg("user registered")
	return tok, nil
}
