package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lukmanhakim/user-portal/internal"
	userdm "github.com/lukmanhakim/user-portal/internal/core/datamodel/user"
)

// Service is the authentication gate: it owns the login sequence and is the
// only writer of the attempt cache and the locked flag. Attempt tracking is a
// direct synchronous call from here, not an event listener.
type Service struct {
	store    UserStore
	hasher   PasswordHasher
	attempts *LoginAttemptCache
	codec    *TokenCodec
	logger   *slog.Logger
}

func NewService(store UserStore, hasher PasswordHasher, attempts *LoginAttemptCache, codec *TokenCodec, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		hasher:   hasher,
		attempts: attempts,
		codec:    codec,
		logger:   logger,
	}
}

// Login runs the full authentication sequence and, on success, returns the
// user record together with a freshly issued token. Bad credentials, disabled
// accounts and locked accounts all surface to the wire as the same generic
// failure; only the server-side log tells them apart.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*userdm.User, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", err
	}

	u, err := s.store.FindByUsername(ctx, dto.Username)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			s.attempts.RecordFailure(dto.Username)
			s.logger.Warn("login failed: unknown username", "username", dto.Username)
			return nil, "", internal.ErrInvalidCredentials
		}
		return nil, "", internal.NewInternalError("user lookup failed", err)
	}

	if !s.hasher.Verify(dto.Password, u.PasswordHash) {
		s.attempts.RecordFailure(dto.Username)
		s.logger.Warn("login failed: bad password", "username", dto.Username)
		return nil, "", internal.ErrInvalidCredentials
	}

	if !u.IsActive {
		s.logger.Warn("login rejected: account disabled", "username", dto.Username)
		return nil, "", internal.ErrAccountDisabled
	}

	if err := s.evaluateLock(ctx, u); err != nil {
		return nil, "", err
	}

	role, err := ParseRole(u.Role)
	if err != nil {
		return nil, "", internal.NewInternalError("stored role is not valid", err)
	}

	s.attempts.Clear(u.Username)

	u.LastLoginDisplayAt = u.LastLoginAt
	now := time.Now()
	u.LastLoginAt = &now
	if err := s.store.Save(ctx, u); err != nil {
		return nil, "", internal.NewInternalError("updating last login failed", err)
	}

	// Authorities come from the user's actual role at this moment; nothing
	// else ever reaches the token.
	token, err := s.codec.Issue(u.Username, role.Authorities())
	if err != nil {
		return nil, "", internal.NewInternalError("token issuance failed", err)
	}

	s.logger.Info("login succeeded", "username", u.Username, "role", u.Role)
	return u, token, nil
}

// evaluateLock is the single consistent check-and-lock point: the threshold
// is examined at lookup time, locking immediately on crossing it, and a
// locked account whose cache entry has expired is unlocked in the same place.
func (s *Service) evaluateLock(ctx context.Context, u *userdm.User) error {
	exceeded := s.attempts.HasExceededLimit(u.Username)

	if u.IsLocked {
		if exceeded {
			s.logger.Warn("login rejected: account locked", "username", u.Username)
			return internal.ErrAccountLocked
		}
		// Attempt window expired; lift the lock and let this login proceed.
		u.IsLocked = false
		if err := s.store.Save(ctx, u); err != nil {
			return internal.NewInternalError("unlocking account failed", err)
		}
		s.logger.Info("account unlocked: attempt window expired", "username", u.Username)
		return nil
	}

	if exceeded {
		u.IsLocked = true
		if err := s.store.Save(ctx, u); err != nil {
			return internal.NewInternalError("locking account failed", err)
		}
		s.logger.Warn("account locked: attempt limit reached", "username", u.Username, "attempts", s.attempts.Attempts(u.Username))
		return internal.ErrAccountLocked
	}

	return nil
}
