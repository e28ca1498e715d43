package auth

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"

	"user-service/internal/entity"
	"user-service/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// CredentialStore is the read-only lookup the verifier needs. It must be
// safe for concurrent use.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// Service verifies credentials and issues bearer tokens. Verification is a
// pure request-scoped computation plus one store read; no lock is held while
// the memory-hard hash runs, so concurrent logins do not serialize each
// other.
type Service struct {
	store  CredentialStore
	hasher *Hasher
	tokens *TokenService
}

func NewService(store CredentialStore, hasher *Hasher, tokens *TokenService) *Service {
	return &Service{store: store, hasher: hasher, tokens: tokens}
}

// Login verifies the email/password pair and returns a signed token carrying
// the stored numeric id. Failures map onto the fixed error set:
// ErrMissingPassword, ErrInvalidCredentials, ErrStoreUnavailable.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	id, err := s.verify(ctx, email, password)
	if err != nil {
		return "", err
	}

	return s.tokens.Issue(id)
}

// verify confirms the candidate password against the stored keyed hash. A
// lookup miss and a hash mismatch produce the same error; causes are logged
// server-side only. No state is written on either outcome.
func (s *Service) verify(ctx context.Context, email, password string) (int, error) {
	if password == "" {
		return 0, ErrMissingPassword
	}

	user, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, ErrInvalidCredentials
	}
	if err != nil {
		logger.Error().Err(err).Msg("Error looking up credentials")
		return 0, ErrStoreUnavailable
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		logger.Error().Err(err).Int("user_id", user.ID).Msg("Error verifying stored password hash")
		return 0, ErrInvalidCredentials
	}
	if !ok {
		return 0, ErrInvalidCredentials
	}

	return user.ID, nil
}
