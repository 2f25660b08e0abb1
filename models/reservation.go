package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceType string

const (
	ServiceDaycare  ServiceType = "daycare"
	ServiceGrooming ServiceType = "grooming"
	ServiceHotel    ServiceType = "hotel"
)

func (t ServiceType) Valid() bool {
	switch t {
	case ServiceDaycare, ServiceGrooming, ServiceHotel:
		return true
	}
	return false
}

type ReservationStatus string

const (
	StatusScheduled  ReservationStatus = "scheduled"
	StatusCheckedIn  ReservationStatus = "checked_in"
	StatusCheckedOut ReservationStatus = "checked_out"
	StatusCancelled  ReservationStatus = "cancelled"
)

// statusTransitions is the single place the reservation state machine is
// defined. checked_out and cancelled are terminal.
var statusTransitions = map[ReservationStatus][]ReservationStatus{
	StatusScheduled: {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusCheckedOut, StatusCancelled},
}

// CanTransitionTo reports whether the state machine allows moving to next.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Active reports whether the reservation still counts toward capacity and
// room conflicts. Cancelled reservations never count.
func (s ReservationStatus) Active() bool {
	return s != StatusCancelled
}

// Reservation is one scheduled visit for one dog at one store.
type Reservation struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	StoreID uuid.UUID `gorm:"type:uuid;index;not null"`
	DogID   uuid.UUID `gorm:"type:uuid;index;not null"`

	ServiceType     ServiceType `gorm:"type:varchar(20);not null"`
	ReservationDate time.Time   `gorm:"index;not null"` // date only, UTC midnight
	ReservationTime string      `gorm:"type:varchar(5)"`

	// Hotel stays carry an explicit [StartDatetime, EndDatetime) interval.
	StartDatetime *time.Time
	EndDatetime   *time.Time
	RoomID        *uuid.UUID `gorm:"type:uuid;index"`

	Status       ReservationStatus `gorm:"type:varchar(20);default:'scheduled';index"`
	CheckedInAt  *time.Time
	CheckedOutAt *time.Time

	Notes string

	Dog      Dog            `gorm:"foreignKey:DogID"`
	Room     *HotelRoom     `gorm:"foreignKey:RoomID"`
	PreVisit *PreVisitInput `gorm:"foreignKey:ReservationID"`

	gorm.Model
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
