package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Store struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Name    string    `gorm:"not null"`
	Address string
	Phone   string

	BusinessType string `gorm:"type:varchar(20);default:'daycare'"` // daycare, grooming, hotel

	// Daily daycare ceiling. Bookings are rejected once the active
	// reservation count for a date reaches this number.
	MaxCapacity int `gorm:"default:10;not null"`

	BusinessHours JSONB      `gorm:"type:jsonb;default:'{}'"`
	ClosedDays    StringList `gorm:"type:jsonb;default:'[]'"` // lowercase weekday names

	Users  []User      `gorm:"foreignKey:StoreID"`
	Owners []Owner     `gorm:"foreignKey:StoreID"`
	Dogs   []Dog       `gorm:"foreignKey:StoreID"`
	Rooms  []HotelRoom `gorm:"foreignKey:StoreID"`

	gorm.Model
}

func (s *Store) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// IsClosedOn reports whether the store is closed on the given weekday.
func (s *Store) IsClosedOn(day time.Weekday) bool {
	return s.ClosedDays.Contains(strings.ToLower(day.String()))
}
