package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Owner is a pet owner using the LINE mini-app.
type Owner struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	StoreID uuid.UUID `gorm:"type:uuid;index;not null"`

	LineUserID string `gorm:"uniqueIndex;not null"`
	Name       string `gorm:"not null"`
	Phone      string
	Email      string

	Dogs []Dog `gorm:"foreignKey:OwnerID"`

	IsActive bool `gorm:"default:true"`

	gorm.Model
}

func (o *Owner) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}
