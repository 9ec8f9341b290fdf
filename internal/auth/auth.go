package auth

import (
	"context"

	userdm "github.com/lukmanhakim/user-portal/internal/core/datamodel/user"
)

// JWTTokenHeader is the custom response header carrying a freshly issued
// token. Tokens never travel in a response body; subsequent requests present
// them in the standard Authorization header with the Bearer scheme.
const (
	JWTTokenHeader = "Jwt-Token"
	TokenPrefix    = "Bearer "
)

// UserStore is the slice of the user persistence layer the gate consumes.
// Lookups return internal.ErrUserNotFound for absent usernames.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*userdm.User, error)
	Save(ctx context.Context, u *userdm.User) error
}

// PasswordHasher abstracts the credential check. Implementations have no
// side effects.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// ServiceAPI is the authentication gate consumed by the HTTP handler.
type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO) (*userdm.User, string, error)
}
