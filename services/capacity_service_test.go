package services

import (
	"errors"
	"testing"
	"time"

	"pawbook-backend/models"

	"github.com/google/uuid"
)

func TestRemainingCapacity(t *testing.T) {
	db := openTestDB(t)
	store := seedStore(t, db, 3)
	_, dog := seedOwnerWithDog(t, db, store)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // Monday

	svc := NewCapacityService(db)

	capacity, err := svc.RemainingCapacity(store.ID, date)
	if err != nil {
		t.Fatalf("RemainingCapacity: %v", err)
	}
	if capacity.Available != 3 || capacity.Capacity != 3 || capacity.IsClosed {
		t.Fatalf("empty day: got %+v", capacity)
	}

	seedDaycareReservation(t, db, store, dog, date, models.StatusScheduled)
	seedDaycareReservation(t, db, store, dog, date, models.StatusCheckedIn)
	// Cancelled reservations never count toward capacity.
	seedDaycareReservation(t, db, store, dog, date, models.StatusCancelled)

	capacity, err = svc.RemainingCapacity(store.ID, date)
	if err != nil {
		t.Fatalf("RemainingCapacity: %v", err)
	}
	if capacity.Available != 1 {
		t.Fatalf("expected 1 slot remaining, got %d", capacity.Available)
	}

	// Overbooked days clamp to zero rather than going negative.
	seedDaycareReservation(t, db, store, dog, date, models.StatusScheduled)
	seedDaycareReservation(t, db, store, dog, date, models.StatusCheckedOut)
	capacity, err = svc.RemainingCapacity(store.ID, date)
	if err != nil {
		t.Fatalf("RemainingCapacity: %v", err)
	}
	if capacity.Available != 0 {
		t.Fatalf("expected 0 slots remaining, got %d", capacity.Available)
	}
}

func TestRemainingCapacityClosedDay(t *testing.T) {
	db := openTestDB(t)
	store := seedStore(t, db, 5, "sunday")

	sunday := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	capacity, err := NewCapacityService(db).RemainingCapacity(store.ID, sunday)
	if err != nil {
		t.Fatalf("RemainingCapacity: %v", err)
	}
	if !capacity.IsClosed {
		t.Fatal("expected sunday to be closed")
	}
	// Closed days still report numeric capacity, informationally.
	if capacity.Available != 5 || capacity.Capacity != 5 {
		t.Fatalf("closed day capacity: got %+v", capacity)
	}
}

func TestRemainingCapacityUnknownStore(t *testing.T) {
	db := openTestDB(t)

	_, err := NewCapacityService(db).RemainingCapacity(uuid.New(), fixedNow)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRoomIsAvailable(t *testing.T) {
	db := openTestDB(t)
	store := seedStore(t, db, 5)
	_, dog := seedOwnerWithDog(t, db, store)
	room := seedRoom(t, db, store, "Room A")

	existingStart := time.Date(2026, 4, 1, 14, 0, 0, 0, time.UTC)
	existingEnd := time.Date(2026, 4, 3, 11, 0, 0, 0, time.UTC)
	existing := seedHotelReservation(t, db, store, dog, room, existingStart, existingEnd, models.StatusScheduled)

	svc := NewCapacityService(db)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		free  bool
	}{
		{
			name:  "overlapping request rejected",
			start: time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 4, 4, 11, 0, 0, 0, time.UTC),
			free:  false,
		},
		{
			name:  "touching boundary accepted",
			start: time.Date(2026, 4, 3, 11, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 4, 5, 11, 0, 0, 0, time.UTC),
			free:  true,
		},
		{
			name:  "fully before accepted",
			start: time.Date(2026, 3, 30, 14, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 4, 1, 14, 0, 0, 0, time.UTC),
			free:  true,
		},
		{
			name:  "contained interval rejected",
			start: time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 4, 2, 18, 0, 0, 0, time.UTC),
			free:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			free, conflictID, err := svc.RoomIsAvailable(room.ID, tt.start, tt.end)
			if err != nil {
				t.Fatalf("RoomIsAvailable: %v", err)
			}
			if free != tt.free {
				t.Fatalf("expected free=%v, got %v", tt.free, free)
			}
			if !tt.free && (conflictID == nil || *conflictID != existing.ID) {
				t.Fatalf("expected conflict with %s, got %v", existing.ID, conflictID)
			}
		})
	}
}

func TestRoomIsAvailableIgnoresCancelled(t *testing.T) {
	db := openTestDB(t)
	store := seedStore(t, db, 5)
	_, dog := seedOwnerWithDog(t, db, store)
	room := seedRoom(t, db, store, "Room A")

	start := time.Date(2026, 4, 1, 14, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 3, 11, 0, 0, 0, time.UTC)
	seedHotelReservation(t, db, store, dog, room, start, end, models.StatusCancelled)

	free, _, err := NewCapacityService(db).RoomIsAvailable(room.ID, start, end)
	if err != nil {
		t.Fatalf("RoomIsAvailable: %v", err)
	}
	if !free {
		t.Fatal("cancelled reservation must not block the room")
	}
}
