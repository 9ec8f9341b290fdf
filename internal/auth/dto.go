package auth

import (
	"time"

	"github.com/lukmanhakim/user-portal/internal"
	userdm "github.com/lukmanhakim/user-portal/internal/core/datamodel/user"
)

// LoginDTO is the transport shape the HTTP handler accepts for login.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	if d.Username == "" {
		return internal.NewValidationError("username is required")
	}
	if d.Password == "" {
		return internal.NewValidationError("password is required")
	}
	return nil
}

// UserView is the login response body: the authenticated user without
// credentials. The token itself travels in the Jwt-Token header.
type UserView struct {
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

func NewUserView(u *userdm.User) UserView {
	var authorities []string
	if role, err := ParseRole(u.Role); err == nil {
		authorities = role.Authorities()
	}

	return UserView{
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
