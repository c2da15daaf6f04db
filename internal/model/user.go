// Package model defines the persisted entities of the Haven API server.
// Primary keys are ULID strings assigned in BeforeCreate hooks; timestamps
// are millisecond Unix times maintained by GORM.
package model

import (
	"gorm.io/gorm"

	"github.com/kart-io/haven/pkg/id"
)

// User represents an account in the database.
type User struct {
	ID          string         `json:"id" gorm:"primaryKey;size:26"`
	Email       string         `json:"email" gorm:"size:128;not null;uniqueIndex:uk_email"`
	Password    string         `json:"-" gorm:"size:255;not null"`
	DisplayName string         `json:"display_name" gorm:"size:64"`
	CreatedAt   int64          `json:"created_at" gorm:"autoCreateTime:milli"`
	UpdatedAt   int64          `json:"updated_at" gorm:"autoUpdateTime:milli"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for GORM.
func (u *User) TableName() string {
	return "users"
}

// BeforeCreate assigns a ULID primary key if none was provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = id.New()
	}
	return nil
}
