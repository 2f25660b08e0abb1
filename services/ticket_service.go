package services

import (
	"errors"
	"time"

	"pawbook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketService is the ledger for prepaid-session contracts. Consume and
// restore are idempotent per reservation: one check-in can never burn more
// than one session, one cancellation can never refund more than one.
type TicketService struct {
	db *gorm.DB
}

func NewTicketService(db *gorm.DB) *TicketService {
	return &TicketService{db: db}
}

// CanConsume reports whether a session could be consumed for the dog right
// now. A dog without any contract is unrestricted, as is a monthly plan.
func (s *TicketService) CanConsume(dogID uuid.UUID) (bool, string, error) {
	return s.canConsumeTx(s.db, dogID, time.Now())
}

func (s *TicketService) canConsumeTx(tx *gorm.DB, dogID uuid.UUID, at time.Time) (bool, string, error) {
	contract, err := s.activeContractTx(tx, dogID, at, false)
	if err != nil {
		return false, "", err
	}
	if contract == nil {
		// No contract found: allow. Monthly-only dogs and walk-ins book
		// without a ledger effect.
		return true, "", nil
	}
	if contract.ContractType == models.ContractTicket && contract.RemainingSessions <= 0 {
		return false, "no sessions remaining", nil
	}
	return true, "", nil
}

// consumeTx decrements the dog's active ticket contract for a check-in.
// Keyed by reservation id: a retried check-in finds the existing consumption
// row and no-ops. Monthly or absent contracts record a no-effect row so a
// later restore no-ops symmetrically.
func (s *TicketService) consumeTx(tx *gorm.DB, dogID, reservationID uuid.UUID, at time.Time) error {
	var existing models.TicketConsumption
	err := tx.Where("reservation_id = ?", reservationID).First(&existing).Error
	if err == nil {
		return nil // already consumed for this reservation
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	contract, err := s.activeContractTx(tx, dogID, at, true)
	if err != nil {
		return err
	}

	consumption := models.TicketConsumption{
		ReservationID: reservationID,
		DogID:         dogID,
		ConsumedAt:    at,
	}

	if contract != nil && contract.ContractType == models.ContractTicket {
		if contract.RemainingSessions <= 0 {
			return ErrInsufficientTicket
		}
		err := tx.Model(&models.Contract{}).Where("id = ?", contract.ID).
			Update("remaining_sessions", gorm.Expr("remaining_sessions - 1")).Error
		if err != nil {
			return err
		}
		consumption.ContractID = &contract.ID
	}

	if err := tx.Create(&consumption).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Concurrent retry raced us past the existence check.
			return ErrConflict
		}
		return err
	}
	return nil
}

// restoreTx refunds the session consumed for a reservation, at most once.
// No consumption row, a no-effect row, or an already-restored row all no-op.
func (s *TicketService) restoreTx(tx *gorm.DB, reservationID uuid.UUID, at time.Time) error {
	var consumption models.TicketConsumption
	err := lockForUpdate(tx).Where("reservation_id = ?", reservationID).First(&consumption).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if consumption.RestoredAt != nil {
		return nil
	}

	if consumption.ContractID != nil {
		err := tx.Model(&models.Contract{}).Where("id = ?", *consumption.ContractID).
			Update("remaining_sessions", gorm.Expr("remaining_sessions + 1")).Error
		if err != nil {
			return err
		}
	}

	return tx.Model(&consumption).Update("restored_at", at).Error
}

// activeContractTx returns the dog's most recent non-expired contract, or
// nil when none exists.
func (s *TicketService) activeContractTx(tx *gorm.DB, dogID uuid.UUID, at time.Time, lock bool) (*models.Contract, error) {
	q := tx
	if lock {
		q = lockForUpdate(tx)
	}
	var contract models.Contract
	err := q.Where("dog_id = ? AND (valid_until IS NULL OR valid_until >= ?)", dogID, at).
		Order("created_at DESC").First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contract, nil
}
