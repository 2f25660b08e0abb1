package services

import (
	"errors"
	"testing"
	"time"

	"pawbook-backend/models"

	"github.com/google/uuid"
)

func TestMonthlyAvailability(t *testing.T) {
	db := openTestDB(t)
	store := seedStore(t, db, 2, "sunday")
	_, dog := seedOwnerWithDog(t, db, store)

	seedDaycareReservation(t, db, store, dog, monday, models.StatusScheduled)

	svc := NewAvailabilityService(db)
	result, err := svc.MonthlyAvailability(store.ID, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("MonthlyAvailability: %v", err)
	}

	if result.Month != "2026-03" {
		t.Fatalf("expected month 2026-03, got %s", result.Month)
	}
	if len(result.Availability) != 31 {
		t.Fatalf("expected 31 days for March, got %d", len(result.Availability))
	}

	byDate := make(map[string]DayCapacity, len(result.Availability))
	for _, day := range result.Availability {
		byDate[day.Date] = day
	}

	if got := byDate["2026-03-02"]; got.Available != 1 {
		t.Fatalf("expected 1 slot on the booked Monday, got %+v", got)
	}
	if got := byDate["2026-03-03"]; got.Available != 2 {
		t.Fatalf("expected a free Tuesday, got %+v", got)
	}
	// All five Sundays in March 2026 are flagged closed.
	for _, date := range []string{"2026-03-01", "2026-03-08", "2026-03-15", "2026-03-22", "2026-03-29"} {
		if !byDate[date].IsClosed {
			t.Fatalf("expected %s to be closed", date)
		}
	}
}

func TestMonthlyAvailabilityUnknownStore(t *testing.T) {
	db := openTestDB(t)

	_, err := NewAvailabilityService(db).MonthlyAvailability(uuid.New(), fixedNow)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHotelAvailability(t *testing.T) {
	db := openTestDB(t)
	store := seedStore(t, db, 5)
	_, dog := seedOwnerWithDog(t, db, store)
	roomA := seedRoom(t, db, store, "Room A")
	roomB := seedRoom(t, db, store, "Room B")

	// Disabled rooms never show up.
	disabled := seedRoom(t, db, store, "Room C")
	if err := db.Model(&disabled).Update("is_enabled", false).Error; err != nil {
		t.Fatalf("disable room: %v", err)
	}

	start := time.Date(2026, 4, 1, 14, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 3, 11, 0, 0, 0, time.UTC)
	occupied := seedHotelReservation(t, db, store, dog, roomA, start, end, models.StatusScheduled)

	result, err := NewAvailabilityService(db).HotelAvailability(store.ID, start, end)
	if err != nil {
		t.Fatalf("HotelAvailability: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 enabled rooms, got %d", len(result))
	}

	byRoom := make(map[uuid.UUID]RoomAvailability, len(result))
	for _, row := range result {
		byRoom[row.Room.ID] = row
	}

	if row := byRoom[roomA.ID]; row.IsAvailable || row.ConflictReservationID == nil || *row.ConflictReservationID != occupied.ID {
		t.Fatalf("expected Room A blocked by %s, got %+v", occupied.ID, row)
	}
	if row := byRoom[roomB.ID]; !row.IsAvailable || row.ConflictReservationID != nil {
		t.Fatalf("expected Room B free, got %+v", row)
	}
}

func TestHotelAvailabilityInvalidInterval(t *testing.T) {
	db := openTestDB(t)
	store := seedStore(t, db, 5)

	checkin := time.Date(2026, 4, 3, 11, 0, 0, 0, time.UTC)
	checkout := time.Date(2026, 4, 1, 14, 0, 0, 0, time.UTC)
	_, err := NewAvailabilityService(db).HotelAvailability(store.ID, checkin, checkout)
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
}
