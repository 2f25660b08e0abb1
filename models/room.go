package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HotelRoom is a bookable physical unit for hotel stays.
type HotelRoom struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	StoreID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name         string `gorm:"not null"`
	SizeClass    string `gorm:"type:varchar(20);default:'medium'"` // small, medium, large
	Capacity     int    `gorm:"default:1"`
	IsEnabled    bool   `gorm:"default:true"`
	DisplayOrder int    `gorm:"default:0"`

	gorm.Model
}

func (r *HotelRoom) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
