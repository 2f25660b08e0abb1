package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PreVisitInput is an optional owner-submitted health/behavior snapshot
// attached 1:1 to a reservation.
type PreVisitInput struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	ReservationID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	HealthCondition string `gorm:"type:text"`
	Appetite        string `gorm:"type:varchar(20)"` // normal, low, none
	LastMealAt      *time.Time
	Medications     string `gorm:"type:text"`
	Notes           string `gorm:"type:text"`

	gorm.Model
}

func (p *PreVisitInput) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
