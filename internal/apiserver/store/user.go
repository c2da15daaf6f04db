package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/kart-io/haven/internal/model"
)

type users struct {
	db *gorm.DB
}

// Create creates a new user.
func (u *users) Create(ctx context.Context, user *model.User) error {
	return u.db.WithContext(ctx).Create(user).Error
}

// Get retrieves a user by ID.
func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	if err := u.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (u *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := u.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates an existing user.
func (u *users) Update(ctx context.Context, user *model.User) error {
	return u.db.WithContext(ctx).Save(user).Error
}
