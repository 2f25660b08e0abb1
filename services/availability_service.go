package services

import (
	"errors"
	"time"

	"pawbook-backend/models"
	"pawbook-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MonthlyAvailability is the calendar payload the booking UI renders.
type MonthlyAvailability struct {
	Month         string        `json:"month"`
	Availability  []DayCapacity `json:"availability"`
	BusinessHours models.JSONB  `json:"businessHours"`
	ClosedDays    []string      `json:"closedDays"`
}

// RoomAvailability is one row of the hotel availability listing.
type RoomAvailability struct {
	Room                  models.HotelRoom `json:"room"`
	IsAvailable           bool             `json:"is_available"`
	ConflictReservationID *uuid.UUID       `json:"conflict_reservation_id"`
}

// AvailabilityService is the read-only facade behind the booking calendar.
// Safe to hit at high frequency; no side effects.
type AvailabilityService struct {
	db       *gorm.DB
	capacity *CapacityService
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{db: db, capacity: NewCapacityService(db)}
}

// MonthlyAvailability returns per-day remaining capacity and closed-day
// flags for every calendar day of the month containing firstOfMonth.
func (s *AvailabilityService) MonthlyAvailability(storeID uuid.UUID, firstOfMonth time.Time) (*MonthlyAvailability, error) {
	var store models.Store
	if err := s.db.First(&store, "id = ?", storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	first := time.Date(firstOfMonth.Year(), firstOfMonth.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := utils.DaysInMonth(first)

	result := MonthlyAvailability{
		Month:         first.Format("2006-01"),
		Availability:  make([]DayCapacity, 0, days),
		BusinessHours: store.BusinessHours,
		ClosedDays:    store.ClosedDays,
	}
	for d := 0; d < days; d++ {
		capacity, err := s.capacity.remainingCapacityTx(s.db, &store, first.AddDate(0, 0, d))
		if err != nil {
			return nil, err
		}
		result.Availability = append(result.Availability, capacity)
	}
	return &result, nil
}

// HotelAvailability lists the store's enabled rooms with their availability
// for the requested [checkin, checkout) interval.
func (s *AvailabilityService) HotelAvailability(storeID uuid.UUID, checkin, checkout time.Time) ([]RoomAvailability, error) {
	if !checkout.After(checkin) {
		return nil, ErrInvalidInterval
	}

	var rooms []models.HotelRoom
	err := s.db.Where("store_id = ? AND is_enabled = ?", storeID, true).
		Order("display_order, name").Find(&rooms).Error
	if err != nil {
		return nil, err
	}

	result := make([]RoomAvailability, 0, len(rooms))
	for _, room := range rooms {
		free, conflictID, err := s.capacity.roomIsAvailableTx(s.db, room.ID, checkin, checkout, nil)
		if err != nil {
			return nil, err
		}
		result = append(result, RoomAvailability{
			Room:                  room,
			IsAvailable:           free,
			ConflictReservationID: conflictID,
		})
	}
	return result, nil
}
