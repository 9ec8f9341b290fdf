package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lukmanhakim/user-portal/internal"
	userdm "github.com/lukmanhakim/user-portal/internal/core/datamodel/user"
)

// Repository persists users through GORM. It backs both the user domain and
// the auth core's narrower store interface.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*userdm.User, error) {
	var u userdm.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*userdm.User, error) {
	var u userdm.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Save inserts new records and updates existing ones, keyed on the primary
// key being set.
func (r *Repository) Save(ctx context.Context, u *userdm.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&userdm.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]*userdm.User, error) {
	var users []*userdm.User
	err := r.db.WithContext(ctx).Order("joined_at ASC").Find(&users).Error
	return users, err
}
