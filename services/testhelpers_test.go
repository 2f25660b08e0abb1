package services

import (
	"testing"
	"time"

	"pawbook-backend/models"
	"pawbook-backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// fixedNow is a Sunday. Closed-day tests rely on that.
var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
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

func seedStore(t *testing.T, db *gorm.DB, maxCapacity int, closedDays ...string) models.Store {
	t.Helper()
	store := models.Store{
		Name:        "Test Store",
		MaxCapacity: maxCapacity,
		ClosedDays:  models.StringList(closedDays),
		BusinessHours: models.JSONB{
			"monday": map[string]interface{}{"open": "09:00", "close": "19:00"},
		},
	}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return store
}

func seedOwnerWithDog(t *testing.T, db *gorm.DB, store models.Store) (models.Owner, models.Dog) {
	t.Helper()
	owner := models.Owner{
		StoreID:    store.ID,
		LineUserID: "line-" + uuid.NewString(),
		Name:       "Test Owner",
		Phone:      "+819012345678",
		IsActive:   true,
	}
	if err := db.Create(&owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	dog := models.Dog{
		StoreID:  store.ID,
		OwnerID:  owner.ID,
		Name:     "Pochi",
		IsActive: true,
	}
	if err := db.Create(&dog).Error; err != nil {
		t.Fatalf("seed dog: %v", err)
	}
	return owner, dog
}

func seedRoom(t *testing.T, db *gorm.DB, store models.Store, name string) models.HotelRoom {
	t.Helper()
	room := models.HotelRoom{
		StoreID:   store.ID,
		Name:      name,
		SizeClass: "medium",
		Capacity:  1,
		IsEnabled: true,
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}
	return room
}

func seedContract(t *testing.T, db *gorm.DB, store models.Store, dog models.Dog, contractType models.ContractType, remaining int) models.Contract {
	t.Helper()
	contract := models.Contract{
		StoreID:           store.ID,
		DogID:             dog.ID,
		ContractType:      contractType,
		TotalSessions:     remaining,
		RemainingSessions: remaining,
	}
	if err := db.Create(&contract).Error; err != nil {
		t.Fatalf("seed contract: %v", err)
	}
	return contract
}

func seedDaycareReservation(t *testing.T, db *gorm.DB, store models.Store, dog models.Dog, date time.Time, status models.ReservationStatus) models.Reservation {
	t.Helper()
	reservation := models.Reservation{
		StoreID:         store.ID,
		DogID:           dog.ID,
		ServiceType:     models.ServiceDaycare,
		ReservationDate: utils.DateOnly(date),
		ReservationTime: "10:00",
		Status:          status,
	}
	if err := db.Create(&reservation).Error; err != nil {
		t.Fatalf("seed reservation: %v", err)
	}
	return reservation
}

func seedHotelReservation(t *testing.T, db *gorm.DB, store models.Store, dog models.Dog, room models.HotelRoom, start, end time.Time, status models.ReservationStatus) models.Reservation {
	t.Helper()
	reservation := models.Reservation{
		StoreID:         store.ID,
		DogID:           dog.ID,
		ServiceType:     models.ServiceHotel,
		ReservationDate: utils.DateOnly(start),
		ReservationTime: start.Format("15:04"),
		StartDatetime:   &start,
		EndDatetime:     &end,
		RoomID:          &room.ID,
		Status:          status,
	}
	if err := db.Create(&reservation).Error; err != nil {
		t.Fatalf("seed hotel reservation: %v", err)
	}
	return reservation
}

func staffIdentity(store models.Store) Identity {
	return Identity{Role: utils.RoleStaff, UserID: uuid.New(), StoreID: store.ID}
}

func ownerIdentity(store models.Store, owner models.Owner) Identity {
	return Identity{Role: utils.RoleOwner, OwnerID: owner.ID, StoreID: store.ID}
}

// newTestReservationService wires the engine against the test database with
// a deterministic clock and QR secret.
func newTestReservationService(t *testing.T, db *gorm.DB) *ReservationService {
	t.Helper()
	t.Setenv("QR_TOKEN_SECRET", "test-qr-secret")
	svc := NewReservationService(db)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func issueKioskToken(t *testing.T, svc *ReservationService, storeID uuid.UUID) string {
	t.Helper()
	token, err := svc.qr.Issue(storeID)
	if err != nil {
		t.Fatalf("issue kiosk token: %v", err)
	}
	return token
}

func reloadReservation(t *testing.T, db *gorm.DB, id uuid.UUID) models.Reservation {
	t.Helper()
	var reservation models.Reservation
	if err := db.First(&reservation, "id = ?", id).Error; err != nil {
		t.Fatalf("reload reservation: %v", err)
	}
	return reservation
}

func reloadContract(t *testing.T, db *gorm.DB, id uuid.UUID) models.Contract {
	t.Helper()
	var contract models.Contract
	if err := db.First(&contract, "id = ?", id).Error; err != nil {
		t.Fatalf("reload contract: %v", err)
	}
	return contract
}
