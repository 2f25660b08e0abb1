package models

import (
	"pawbook-backend/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a staff member of a store (console login).
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null"`
	Name     string    `gorm:"not null"`
	Phone    string

	Role    string    `gorm:"type:varchar(20);default:'staff'"` // 'admin' or 'staff'
	StoreID uuid.UUID `gorm:"type:uuid;index;not null"`

	Store Store `gorm:"foreignKey:StoreID"`

	LastLogin *time.Time
	IsActive  bool `gorm:"default:true"`

	gorm.Model
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
