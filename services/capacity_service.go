package services

import (
	"errors"
	"time"

	"pawbook-backend/models"
	"pawbook-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate takes a row lock for the check-then-act sections. SQLite
// (used by the test suite) does not parse FOR UPDATE and serializes writers
// on its own, so the clause is only applied on postgres.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// DayCapacity is the remaining daycare capacity for one store date.
type DayCapacity struct {
	Date      string `json:"date"`
	Available int    `json:"available"`
	Capacity  int    `json:"capacity"`
	IsClosed  bool   `json:"isClosed"`
}

// CapacityService computes daycare slot availability and hotel room
// conflicts. Pure reads; it never mutates state.
type CapacityService struct {
	db *gorm.DB
}

func NewCapacityService(db *gorm.DB) *CapacityService {
	return &CapacityService{db: db}
}

// RemainingCapacity reports remaining daycare slots for a store date.
// Closed days still return the numeric capacity, informationally.
func (s *CapacityService) RemainingCapacity(storeID uuid.UUID, date time.Time) (DayCapacity, error) {
	var store models.Store
	if err := s.db.First(&store, "id = ?", storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DayCapacity{}, ErrNotFound
		}
		return DayCapacity{}, err
	}
	return s.remainingCapacityTx(s.db, &store, date)
}

func (s *CapacityService) remainingCapacityTx(tx *gorm.DB, store *models.Store, date time.Time) (DayCapacity, error) {
	day := utils.DateOnly(date)

	var count int64
	err := tx.Model(&models.Reservation{}).
		Where("store_id = ? AND service_type = ? AND reservation_date = ? AND status <> ?",
			store.ID, models.ServiceDaycare, day, models.StatusCancelled).
		Count(&count).Error
	if err != nil {
		return DayCapacity{}, err
	}

	available := store.MaxCapacity - int(count)
	if available < 0 {
		available = 0
	}

	return DayCapacity{
		Date:      day.Format("2006-01-02"),
		Available: available,
		Capacity:  store.MaxCapacity,
		IsClosed:  store.IsClosedOn(day.Weekday()),
	}, nil
}

// RoomIsAvailable reports whether a room is free for [start, end). Touching
// intervals do not conflict. When the room is taken, the id of the first
// conflicting reservation is returned.
func (s *CapacityService) RoomIsAvailable(roomID uuid.UUID, start, end time.Time) (bool, *uuid.UUID, error) {
	return s.roomIsAvailableTx(s.db, roomID, start, end, nil)
}

func (s *CapacityService) roomIsAvailableTx(tx *gorm.DB, roomID uuid.UUID, start, end time.Time, excludeReservationID *uuid.UUID) (bool, *uuid.UUID, error) {
	// Half-open overlap: existing.start < end AND existing.end > start
	q := tx.Model(&models.Reservation{}).
		Where("room_id = ? AND service_type = ? AND status <> ?",
			roomID, models.ServiceHotel, models.StatusCancelled).
		Where("start_datetime < ? AND end_datetime > ?", end, start)
	if excludeReservationID != nil {
		q = q.Where("id <> ?", *excludeReservationID)
	}

	var conflict models.Reservation
	if err := q.Order("start_datetime").First(&conflict).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, nil, nil
		}
		return false, nil, err
	}
	return false, &conflict.ID, nil
}
