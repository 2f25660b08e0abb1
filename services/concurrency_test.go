package services

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"pawbook-backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openPostgresTestDB connects to the database named by TEST_DATABASE_URL.
// The row-lock serialization under real concurrency only holds on postgres,
// so these tests are skipped everywhere else.
func openPostgresTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres concurrency tests")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	err = db.AutoMigrate(
		&models.Store{},
		&models.Owner{},
		&models.Dog{},
		&models.HotelRoom{},
		&models.Reservation{},
		&models.Contract{},
		&models.TicketConsumption{},
		&models.PreVisitInput{},
		&models.NotificationLog{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestParallelCreateRespectsCapacity(t *testing.T) {
	db := openPostgresTestDB(t)
	store := seedStore(t, db, 1)
	owner, dog := seedOwnerWithDog(t, db, store)
	svc := newTestReservationService(t, db)

	const workers = 8
	results := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Create(ownerIdentity(store, owner), daycareParams(dog, monday))
			results[i] = err
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrCapacityExceeded):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || rejected != workers-1 {
		t.Fatalf("expected exactly 1 booking on a capacity-1 day, got %d ok / %d rejected", succeeded, rejected)
	}

	var count int64
	err := db.Model(&models.Reservation{}).
		Where("store_id = ? AND reservation_date = ? AND status <> ?",
			store.ID, monday, models.StatusCancelled).
		Count(&count).Error
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 persisted reservation, got %d", count)
	}
}

func TestParallelCheckInConsumesOnce(t *testing.T) {
	db := openPostgresTestDB(t)
	store := seedStore(t, db, 5)
	_, dog := seedOwnerWithDog(t, db, store)
	contract := seedContract(t, db, store, dog, models.ContractTicket, 5)
	svc := newTestReservationService(t, db)

	reservation := seedDaycareReservation(t, db, store, dog, monday, models.StatusScheduled)
	token := issueKioskToken(t, svc, store.ID)

	const workers = 8
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CheckIn(staffIdentity(store), reservation.ID, token)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInvalidStateTransition), errors.Is(err, ErrConflict):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly 1 successful check-in, got %d", succeeded)
	}
	if got := reloadContract(t, db, contract.ID).RemainingSessions; got != 4 {
		t.Fatalf("expected exactly one session consumed, got balance %d", got)
	}
}

// TestParallelHotelCreateSingleWinner races two bookings for the same room
// and overlapping nights.
func TestParallelHotelCreateSingleWinner(t *testing.T) {
	db := openPostgresTestDB(t)
	store := seedStore(t, db, 5)
	owner, dog := seedOwnerWithDog(t, db, store)
	room := seedRoom(t, db, store, fmt.Sprintf("Room %d", time.Now().UnixNano()))
	svc := newTestReservationService(t, db)

	end := time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC)

	const workers = 4
	results := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Create(ownerIdentity(store, owner), hotelParams(dog, room, monday, "14:00", end))
			results[i] = err
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrRoomConflict):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly 1 booking for the room, got %d", succeeded)
	}
}
