package services

import (
	"errors"
	"time"

	"pawbook-backend/models"
	"pawbook-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationService owns the reservation state machine. Every transition
// runs as one transaction spanning the capacity read, the ticket ledger
// effect and the status write, so a failure anywhere rolls back everything.
type ReservationService struct {
	db       *gorm.DB
	capacity *CapacityService
	tickets  *TicketService
	qr       *QRTokenService
	now      func() time.Time
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{
		db:       db,
		capacity: NewCapacityService(db),
		tickets:  NewTicketService(db),
		qr:       NewQRTokenService(),
		now:      time.Now,
	}
}

type CreateReservationParams struct {
	DogID       uuid.UUID
	ServiceType models.ServiceType
	Date        time.Time
	Time        string
	RoomID      *uuid.UUID
	EndDatetime *time.Time
	Notes       string
}

type EditReservationParams struct {
	Date  *time.Time
	Time  *string
	Notes *string
}

// Create books a new visit. Blocking reasons surface in upstream order:
// capacity, then room conflict, then ticket balance. Tickets are not
// consumed here; that happens at check-in so a no-show costs nothing.
func (s *ReservationService) Create(identity Identity, params CreateReservationParams) (*models.Reservation, error) {
	var created models.Reservation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		dog, err := s.loadDogTx(tx, identity, params.DogID)
		if err != nil {
			return err
		}

		// The store row is the lock point serializing concurrent bookings
		// for this tenant.
		var store models.Store
		if err := lockForUpdate(tx).First(&store, "id = ?", identity.StoreID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		day := utils.DateOnly(params.Date)
		reservation := models.Reservation{
			StoreID:         store.ID,
			DogID:           dog.ID,
			ServiceType:     params.ServiceType,
			ReservationDate: day,
			ReservationTime: params.Time,
			Status:          models.StatusScheduled,
			Notes:           params.Notes,
		}

		switch params.ServiceType {
		case models.ServiceDaycare:
			capacity, err := s.capacity.remainingCapacityTx(tx, &store, day)
			if err != nil {
				return err
			}
			if capacity.IsClosed || capacity.Available == 0 {
				return ErrCapacityExceeded
			}
		case models.ServiceHotel:
			if params.RoomID == nil {
				return ErrNotFound
			}
			start := utils.CombineDateTime(day, params.Time)
			if params.EndDatetime == nil || !params.EndDatetime.After(start) {
				return ErrInvalidInterval
			}
			var room models.HotelRoom
			if err := tx.First(&room, "id = ?", *params.RoomID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			if room.StoreID != store.ID {
				return ErrForbidden
			}
			if !room.IsEnabled {
				return ErrNotFound
			}
			end := params.EndDatetime.UTC()
			free, _, err := s.capacity.roomIsAvailableTx(tx, room.ID, start, end, nil)
			if err != nil {
				return err
			}
			if !free {
				return ErrRoomConflict
			}
			reservation.StartDatetime = &start
			reservation.EndDatetime = &end
			reservation.RoomID = &room.ID
		}

		ok, _, err := s.tickets.canConsumeTx(tx, dog.ID, s.now())
		if err != nil {
			return err
		}
		if !ok {
			return ErrInsufficientTicket
		}

		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}
		created = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Edit updates date, time or notes while the reservation is still scheduled.
// A date or time change re-validates capacity (daycare) or the room interval
// (hotel).
func (s *ReservationService) Edit(identity Identity, reservationID uuid.UUID, params EditReservationParams) (*models.Reservation, error) {
	var updated models.Reservation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		reservation, err := s.loadReservationTx(tx, identity, reservationID, true)
		if err != nil {
			return err
		}
		if reservation.Status != models.StatusScheduled {
			return ErrInvalidStateTransition
		}

		dateChanged := params.Date != nil && !utils.DateOnly(*params.Date).Equal(reservation.ReservationDate)
		timeChanged := params.Time != nil && *params.Time != reservation.ReservationTime

		if params.Time != nil {
			reservation.ReservationTime = *params.Time
		}
		if dateChanged {
			reservation.ReservationDate = utils.DateOnly(*params.Date)
		}
		if params.Notes != nil {
			reservation.Notes = *params.Notes
		}

		if dateChanged || timeChanged {
			var store models.Store
			if err := lockForUpdate(tx).First(&store, "id = ?", reservation.StoreID).Error; err != nil {
				return err
			}

			switch reservation.ServiceType {
			case models.ServiceDaycare:
				if dateChanged {
					capacity, err := s.capacity.remainingCapacityTx(tx, &store, reservation.ReservationDate)
					if err != nil {
						return err
					}
					if capacity.IsClosed || capacity.Available == 0 {
						return ErrCapacityExceeded
					}
				}
			case models.ServiceHotel:
				start := utils.CombineDateTime(reservation.ReservationDate, reservation.ReservationTime)
				if reservation.EndDatetime == nil || !reservation.EndDatetime.After(start) {
					return ErrInvalidInterval
				}
				free, _, err := s.capacity.roomIsAvailableTx(tx, *reservation.RoomID, start, *reservation.EndDatetime, &reservation.ID)
				if err != nil {
					return err
				}
				if !free {
					return ErrRoomConflict
				}
				reservation.StartDatetime = &start
			}
		}

		if err := tx.Save(reservation).Error; err != nil {
			return err
		}
		updated = *reservation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Cancel voids a reservation. Owners may only cancel while scheduled;
// cancelling a checked-in visit is a staff-only administrative action. A
// session consumed at check-in is restored exactly once.
func (s *ReservationService) Cancel(identity Identity, reservationID uuid.UUID) (*models.Reservation, error) {
	var updated models.Reservation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		reservation, err := s.loadReservationTx(tx, identity, reservationID, true)
		if err != nil {
			return err
		}
		if !reservation.Status.CanTransitionTo(models.StatusCancelled) {
			return ErrInvalidStateTransition
		}
		if reservation.Status == models.StatusCheckedIn {
			if identity.IsOwner() {
				return ErrForbidden
			}
			if err := s.tickets.restoreTx(tx, reservation.ID, s.now()); err != nil {
				return err
			}
		}

		reservation.Status = models.StatusCancelled
		if err := tx.Save(reservation).Error; err != nil {
			return err
		}
		updated = *reservation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// CheckIn transitions scheduled → checked_in after verifying the kiosk QR
// token. The status write and the ticket debit are one atomic unit: a zero
// balance fails the whole check-in with nothing persisted.
func (s *ReservationService) CheckIn(identity Identity, reservationID uuid.UUID, qrToken string) (*models.Reservation, error) {
	tokenStoreID, err := s.qr.Verify(qrToken)
	if err != nil {
		return nil, err
	}

	var updated models.Reservation
	err = s.db.Transaction(func(tx *gorm.DB) error {
		reservation, err := s.loadReservationTx(tx, identity, reservationID, true)
		if err != nil {
			return err
		}
		if reservation.StoreID != tokenStoreID {
			return ErrStoreMismatch
		}

		now := s.now()
		// No retroactive check-in for past dates.
		if reservation.ReservationDate.Before(utils.DateOnly(now)) {
			return ErrInvalidStateTransition
		}
		if reservation.Status != models.StatusScheduled {
			return ErrInvalidStateTransition
		}

		if err := s.tickets.consumeTx(tx, reservation.DogID, reservation.ID, now); err != nil {
			return err
		}

		reservation.Status = models.StatusCheckedIn
		reservation.CheckedInAt = &now
		if err := tx.Save(reservation).Error; err != nil {
			return err
		}
		updated = *reservation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// CheckOut transitions checked_in → checked_out. The session was already
// consumed at check-in, so the ledger is untouched.
func (s *ReservationService) CheckOut(identity Identity, reservationID uuid.UUID, qrToken string) (*models.Reservation, error) {
	tokenStoreID, err := s.qr.Verify(qrToken)
	if err != nil {
		return nil, err
	}

	var updated models.Reservation
	err = s.db.Transaction(func(tx *gorm.DB) error {
		reservation, err := s.loadReservationTx(tx, identity, reservationID, true)
		if err != nil {
			return err
		}
		if reservation.StoreID != tokenStoreID {
			return ErrStoreMismatch
		}
		if reservation.Status != models.StatusCheckedIn || reservation.CheckedOutAt != nil {
			return ErrInvalidStateTransition
		}

		now := s.now()
		reservation.Status = models.StatusCheckedOut
		reservation.CheckedOutAt = &now
		if err := tx.Save(reservation).Error; err != nil {
			return err
		}
		updated = *reservation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// AttachPreVisit stores or replaces the owner-submitted pre-visit snapshot
// for a reservation.
func (s *ReservationService) AttachPreVisit(identity Identity, reservationID uuid.UUID, input models.PreVisitInput) (*models.PreVisitInput, error) {
	var saved models.PreVisitInput
	err := s.db.Transaction(func(tx *gorm.DB) error {
		reservation, err := s.loadReservationTx(tx, identity, reservationID, false)
		if err != nil {
			return err
		}
		if reservation.Status == models.StatusCancelled {
			return ErrInvalidStateTransition
		}

		var existing models.PreVisitInput
		err = tx.Where("reservation_id = ?", reservation.ID).First(&existing).Error
		if err == nil {
			existing.HealthCondition = input.HealthCondition
			existing.Appetite = input.Appetite
			existing.LastMealAt = input.LastMealAt
			existing.Medications = input.Medications
			existing.Notes = input.Notes
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			saved = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		input.ReservationID = reservation.ID
		if err := tx.Create(&input).Error; err != nil {
			return err
		}
		saved = input
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// loadDogTx fetches a dog and enforces tenant and owner scoping.
func (s *ReservationService) loadDogTx(tx *gorm.DB, identity Identity, dogID uuid.UUID) (*models.Dog, error) {
	var dog models.Dog
	if err := tx.First(&dog, "id = ?", dogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if dog.StoreID != identity.StoreID {
		return nil, ErrForbidden
	}
	if identity.IsOwner() && dog.OwnerID != identity.OwnerID {
		return nil, ErrForbidden
	}
	return &dog, nil
}

// loadReservationTx fetches a reservation and enforces tenant and owner
// scoping; lock takes the row lock for a pending mutation.
func (s *ReservationService) loadReservationTx(tx *gorm.DB, identity Identity, reservationID uuid.UUID, lock bool) (*models.Reservation, error) {
	q := tx
	if lock {
		q = lockForUpdate(tx)
	}
	var reservation models.Reservation
	if err := q.First(&reservation, "id = ?", reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if reservation.StoreID != identity.StoreID {
		return nil, ErrForbidden
	}
	if identity.IsOwner() {
		var dog models.Dog
		if err := tx.First(&dog, "id = ?", reservation.DogID).Error; err != nil {
			return nil, err
		}
		if dog.OwnerID != identity.OwnerID {
			return nil, ErrForbidden
		}
	}
	return &reservation, nil
}
