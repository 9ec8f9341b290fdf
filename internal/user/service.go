package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lukmanhakim/user-portal/internal"
	"github.com/lukmanhakim/user-portal/internal/auth"
	userdm "github.com/lukmanhakim/user-portal/internal/core/datamodel/user"
	"github.com/lukmanhakim/user-portal/internal/mail"
	"github.com/lukmanhakim/user-portal/internal/storage"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

type Service struct {
	repo    Repository
	hasher  auth.PasswordHasher
	mailer  mail.Mailer
	images  *storage.ImageStore
	baseURL string
	logger  *slog.Logger
}

func NewService(repo Repository, hasher auth.PasswordHasher, mailer mail.Mailer, images *storage.ImageStore, baseURL string, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		hasher:  hasher,
		mailer:  mailer,
		images:  images,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Register creates a self-service account with role USER and a generated
// password delivered by email.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*userdm.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.validateNewUsernameAndEmail(ctx, "", dto.Username, dto.Email); err != nil {
		return nil, err
	}

	password, err := generatePassword()
	if err != nil {
		return nil, internal.NewInternalError("password generation failed", err)
	}
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, internal.NewInternalError("password hashing failed", err)
	}

	u := &userdm.User{
		PublicID:        uuid.NewString(),
		FirstName:       dto.FirstName,
		LastName:        dto.LastName,
		Username:        dto.Username,
		Email:           dto.Email,
		PasswordHash:    digest,
		Role:            auth.RoleUser.String(),
		IsActive:        true,
		IsLocked:        false,
		JoinedAt:        time.Now(),
		ProfileImageURL: s.temporaryProfileImageURL(dto.Username),
	}

	if err := s.repo.Save(ctx, u); err != nil {
		return nil, internal.NewInternalError("saving user failed", err)
	}

	if err := s.mailer.SendNewPassword(u.FirstName, password, u.Email); err != nil {
		s.logger.Error("password email delivery failed", "email", u.Email, "error", err)
	}

	s.logger.Info("registered new user", "username", u.Username)
	return u, nil
}

// Create is the administrative variant of Register: role, active and locked
// state come from the caller, plus an optional profile image.
func (s *Service) Create(ctx context.Context, dto CreateUserDTO, image *ImageUpload) (*userdm.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.validateNewUsernameAndEmail(ctx, "", dto.Username, dto.Email); err != nil {
		return nil, err
	}

	role, err := auth.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	password, err := generatePassword()
	if err != nil {
		return nil, internal.NewInternalError("password generation failed", err)
	}
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, internal.NewInternalError("password hashing failed", err)
	}

	u := &userdm.User{
		PublicID:        uuid.NewString(),
		FirstName:       dto.FirstName,
		LastName:        dto.LastName,
		Username:        dto.Username,
		Email:           dto.Email,
		PasswordHash:    digest,
		Role:            role.String(),
		IsActive:        dto.IsActive,
		IsLocked:        dto.IsLocked,
		JoinedAt:        time.Now(),
		ProfileImageURL: s.temporaryProfileImageURL(dto.Username),
	}

	if err := s.repo.Save(ctx, u); err != nil {
		return nil, internal.NewInternalError("saving user failed", err)
	}

	if err := s.saveProfileImage(ctx, u, image); err != nil {
		return nil, err
	}

	if err := s.mailer.SendNewPassword(u.FirstName, password, u.Email); err != nil {
		s.logger.Error("password email delivery failed", "email", u.Email, "error", err)
	}

	s.logger.Info("created user", "username", u.Username, "role", u.Role)
	return u, nil
}

// Update rewrites an existing account identified by currentUsername.
func (s *Service) Update(ctx context.Context, currentUsername string, dto CreateUserDTO, image *ImageUpload) (*userdm.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByUsername(ctx, currentUsername)
	if err != nil {
		return nil, err
	}

	if err := s.validateNewUsernameAndEmail(ctx, currentUsername, dto.Username, dto.Email); err != nil {
		return nil, err
	}

	role, err := auth.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	current.FirstName = dto.FirstName
	current.LastName = dto.LastName
	current.Username = dto.Username
	current.Email = dto.Email
	current.Role = role.String()
	current.IsActive = dto.IsActive
	current.IsLocked = dto.IsLocked

	if err := s.repo.Save(ctx, current); err != nil {
		return nil, internal.NewInternalError("saving user failed", err)
	}

	if err := s.saveProfileImage(ctx, current, image); err != nil {
		return nil, err
	}

	s.logger.Info("updated user", "username", current.Username)
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) FindByUsername(ctx context.Context, username string) (*userdm.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *Service) List(ctx context.Context) ([]*userdm.User, error) {
	return s.repo.List(ctx)
}

// ResetPassword rotates the password for the account behind email and mails
// the new one.
func (s *Service) ResetPassword(ctx context.Context, email string) error {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return internal.ErrEmailNotFound
		}
		return err
	}

	password, err := generatePassword()
	if err != nil {
		return internal.NewInternalError("password generation failed", err)
	}
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return internal.NewInternalError("password hashing failed", err)
	}

	u.PasswordHash = digest
	if err := s.repo.Save(ctx, u); err != nil {
		return internal.NewInternalError("saving user failed", err)
	}

	if err := s.mailer.SendNewPassword(u.FirstName, password, u.Email); err != nil {
		s.logger.Error("password email delivery failed", "email", u.Email, "error", err)
	}

	s.logger.Info("reset password", "username", u.Username)
	return nil
}

// UpdateProfileImage replaces the stored image for username.
func (s *Service) UpdateProfileImage(ctx context.Context, username string, image *ImageUpload) (*userdm.User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.saveProfileImage(ctx, u, image); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) saveProfileImage(ctx context.Context, u *userdm.User, image *ImageUpload) error {
	if image == nil {
		return nil
	}

	if !allowedImageTypes[image.ContentType] {
		return internal.ErrNotAnImageFile
	}

	if err := s.images.Save(u.Username, image.Data); err != nil {
		return internal.NewInternalError("storing profile image failed", err)
	}

	u.ProfileImageURL = fmt.Sprintf("%s/user/image/%s/%s.jpg", s.baseURL, u.Username, u.Username)
	if err := s.repo.Save(ctx, u); err != nil {
		return internal.NewInternalError("saving user failed", err)
	}
	return nil
}

// validateNewUsernameAndEmail enforces uniqueness for create and update.
// currentUsername is empty on create; on update it identifies the account
// whose own username/email must not count as a collision.
func (s *Service) validateNewUsernameAndEmail(ctx context.Context, currentUsername, newUsername, newEmail string) error {
	byUsername, err := s.repo.FindByUsername(ctx, newUsername)
	if err != nil && !errors.Is(err, internal.ErrUserNotFound) {
		return err
	}
	byEmail, err := s.repo.FindByEmail(ctx, newEmail)
	if err != nil && !errors.Is(err, internal.ErrUserNotFound) {
		return err
	}

	if currentUsername == "" {
		if byUsername != nil {
			return internal.ErrUsernameExists
		}
		if byEmail != nil {
			return internal.ErrEmailExists
		}
		return nil
	}

	current, err := s.repo.FindByUsername(ctx, currentUsername)
	if err != nil {
		return err
	}
	if byUsername != nil && byUsername.ID != current.ID {
		return internal.ErrUsernameExists
	}
	if byEmail != nil && byEmail.ID != current.ID {
		return internal.ErrEmailExists
	}
	return nil
}

func (s *Service) temporaryProfileImageURL(username string) string {
	return fmt.Sprintf("%s/user/image/profile/%s", s.baseURL, username)
}

// generatePassword returns a random 10-character password from a
// cryptographically secure source.
func generatePassword() (string, error) {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
