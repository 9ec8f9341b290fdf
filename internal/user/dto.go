package user

import (
	"time"

	"github.com/lukmanhakim/user-portal/internal"
	"github.com/lukmanhakim/user-portal/internal/auth"
	userdm "github.com/lukmanhakim/user-portal/internal/core/datamodel/user"
)

// RegisterDTO is the self-service signup payload. The password is generated
// server side and emailed; clients never pick one here.
type RegisterDTO struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

func (d RegisterDTO) Validate() error {
	if d.FirstName == "" {
		return internal.NewValidationError("firstName is required")
	}
	if d.LastName == "" {
		return internal.NewValidationError("lastName is required")
	}
	if d.Username == "" {
		return internal.NewValidationError("username is required")
	}
	if d.Email == "" {
		return internal.NewValidationError("email is required")
	}
	return nil
}

// CreateUserDTO is the admin-facing create/update payload carried as form
// fields alongside an optional profile image.
type CreateUserDTO struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Role      string
	IsActive  bool
	IsLocked  bool
}

func (d CreateUserDTO) Validate() error {
	if d.FirstName == "" {
		return internal.NewValidationError("firstName is required")
	}
	if d.LastName == "" {
		return internal.NewValidationError("lastName is required")
	}
	if d.Username == "" {
		return internal.NewValidationError("username is required")
	}
	if d.Email == "" {
		return internal.NewValidationError("email is required")
	}
	if _, err := auth.ParseRole(d.Role); err != nil {
		return err
	}
	return nil
}

// UserResponse is the JSON view of a user record.
type UserResponse struct {
	PublicID        string     `json:"userId"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	ProfileImageURL string     `json:"profileImageUrl"`
	Role            string     `json:"role"`
	Authorities     []string   `json:"authorities"`
	JoinedAt        time.Time  `json:"joinDate"`
	LastLoginAt     *time.Time `json:"lastLoginDate,omitempty"`
	IsActive        bool       `json:"active"`
	IsLocked        bool       `json:"locked"`
}

func NewUserResponse(u *userdm.User) UserResponse {
	var authorities []string
	if role, err := auth.ParseRole(u.Role); err == nil {
		authorities = role.Authorities()
	}

	return UserResponse{
		PublicID:        u.PublicID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Username:        u.Username,
		Email:           u.Email,
		ProfileImageURL: u.ProfileImageURL,
		Role:            u.Role,
		Authorities:     authorities,
		JoinedAt:        u.JoinedAt,
		LastLoginAt:     u.LastLoginDisplayAt,
		IsActive:        u.IsActive,
		IsLocked:        u.IsLocked,
	}
}

func NewUserResponses(users []*userdm.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
