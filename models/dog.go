package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Dog struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	StoreID uuid.UUID `gorm:"type:uuid;index;not null"`
	OwnerID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name     string `gorm:"not null"`
	Breed    string
	Birthday *time.Time
	Gender   string `gorm:"type:varchar(10)"`
	Notes    string

	Contracts    []Contract    `gorm:"foreignKey:DogID"`
	Reservations []Reservation `gorm:"foreignKey:DogID"`

	IsActive bool `gorm:"default:true"`

	gorm.Model
}

func (d *Dog) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}
