package user

import (
	"context"
	"io"

	userdm "github.com/lukmanhakim/user-portal/internal/core/datamodel/user"
)

// Repository is the full user store. Its FindByUsername/Save subset is what
// the auth core consumes through its own narrower interface.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*userdm.User, error)
	FindByEmail(ctx context.Context, email string) (*userdm.User, error)
	Save(ctx context.Context, u *userdm.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*userdm.User, error)
}

// ServiceAPI is consumed by the HTTP handler.
type ServiceAPI interface {
	Register(ctx context.Context, dto RegisterDTO) (*userdm.User, error)
	Create(ctx context.Context, dto CreateUserDTO, image *ImageUpload) (*userdm.User, error)
	Update(ctx context.Context, currentUsername string, dto CreateUserDTO, image *ImageUpload) (*userdm.User, error)
	Delete(ctx context.Context, id int64) error
	FindByUsername(ctx context.Context, username string) (*userdm.User, error)
	List(ctx context.Context) ([]*userdm.User, error)
	ResetPassword(ctx context.Context, email string) error
	UpdateProfileImage(ctx context.Context, username string, image *ImageUpload) (*userdm.User, error)
}

// ImageUpload carries a profile image as it arrives from a multipart form.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}
