package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/parogest/parogest/internal/domain"
	"github.com/parogest/parogest/internal/observability/metrics"
	"github.com/parogest/parogest/internal/security/password"
	"github.com/parogest/parogest/internal/validation"
	"go.opentelemetry.io/otel"
)

// ErrInvalidCredentials is returned on any authentication failure. It never
// reveals whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService validates and persists users and owns every password
// transition. The plaintext never reaches a repository.
type UserService struct {
	userRepo domain.UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo domain.UserRepository, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}

	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create validates the candidate user and the new password together (one
// accumulated error set), hashes the password and stores the user.
func (s *UserService) Create(ctx context.Context, u *domain.User, plaintext string) error {
	errs := validation.ValidateUser(u)
	errs = append(errs, validation.ValidatePassword(plaintext)...)
	metrics.ObserveValidation("user", errorCodes(errs))
	if err := errs.Err(); err != nil {
		return err
	}

	hashed, err := s.hash(ctx, plaintext)
	if err != nil {
		s.logger.Error("failed to hash password", slog.String("error", err.Error()))
		return err
	}
	u.HashedPassword = hashed

	if err := s.userRepo.Create(u); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.ObserveConflict("user")
		}
		return err
	}

	s.logger.Info("user created",
		slog.Int64("id", u.ID),
		slog.String("role", string(u.Role)),
	)
	return nil
}

// Update validates and saves a modified user. The password is untouched;
// use ChangePassword for that.
func (s *UserService) Update(ctx context.Context, u *domain.User) error {
	errs := validation.ValidateUser(u)
	metrics.ObserveValidation("user", errorCodes(errs))
	if err := errs.Err(); err != nil {
		return err
	}

	if err := s.userRepo.Update(u); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.ObserveConflict("user")
		}
		return err
	}
	return nil
}

// Authenticate verifies credentials and returns the user. Verification is
// hash-to-hash only. A malformed stored hash is logged and still reported
// as invalid credentials to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, plaintext string) (*domain.User, error) {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		s.logger.Info("authentication attempt for unknown email", slog.String("email", email))
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		s.logger.Info("authentication attempt for inactive user", slog.Int64("id", u.ID))
		return nil, ErrInvalidCredentials
	}

	ok, err := s.verify(ctx, plaintext, u.HashedPassword)
	if err != nil {
		// Corrupt stored credential, not a wrong password.
		s.logger.Error("stored credential unreadable",
			slog.Int64("id", u.ID),
			slog.String("error", err.Error()),
		)
		return nil, ErrInvalidCredentials
	}
	if !ok {
		s.logger.Info("authentication failed", slog.Int64("id", u.ID))
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

// ChangePassword verifies the current password and stores a hash of the
// new one.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if err := validation.ValidatePassword(next).Err(); err != nil {
		return err
	}

	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	ok, err := s.verify(ctx, current, u.HashedPassword)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}

	hashed, err := s.hash(ctx, next)
	if err != nil {
		s.logger.Error("failed to hash new password", slog.String("error", err.Error()))
		return err
	}
	u.HashedPassword = hashed

	if err := s.userRepo.Update(u); err != nil {
		return err
	}

	s.logger.Info("user changed password", slog.Int64("id", userID))
	return nil
}

// hash runs the deliberately expensive credential hash. CPU-bound; callers
// on a latency-sensitive path should schedule it accordingly.
func (s *UserService) hash(ctx context.Context, plaintext string) (string, error) {
	_, span := otel.Tracer("parogest/service").Start(ctx, "password.hash")
	defer span.End()

	start := time.Now()
	hashed, err := password.Hash(plaintext)
	metrics.ObserveHash("hash", time.Since(start))
	return hashed, err
}

func (s *UserService) verify(ctx context.Context, plaintext, stored string) (bool, error) {
	_, span := otel.Tracer("parogest/service").Start(ctx, "password.verify")
	defer span.End()

	start := time.Now()
	ok, err := password.Verify(plaintext, stored)
	metrics.ObserveHash("verify", time.Since(start))
	return ok, err
}
