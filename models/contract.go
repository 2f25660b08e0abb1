package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContractType string

const (
	ContractTicket  ContractType = "ticket"
	ContractMonthly ContractType = "monthly"
)

// Contract is a dog's prepaid plan: a ticket bundle of N sessions, or a
// monthly subscription that is never decremented.
type Contract struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	StoreID uuid.UUID `gorm:"type:uuid;index;not null"`
	DogID   uuid.UUID `gorm:"type:uuid;index;not null"`

	ContractType      ContractType `gorm:"type:varchar(20);not null"`
	TotalSessions     int          `gorm:"default:0"`
	RemainingSessions int          `gorm:"default:0"`
	ValidUntil        *time.Time

	gorm.Model
}

func (c *Contract) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// TicketConsumption records the ledger effect of a check-in, keyed uniquely
// by reservation so retries can never decrement twice. A row with a nil
// ContractID means the check-in had no ledger effect (monthly plan or no
// contract) and a later restore is a matching no-op.
type TicketConsumption struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key"`
	ReservationID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	DogID         uuid.UUID  `gorm:"type:uuid;index;not null"`
	ContractID    *uuid.UUID `gorm:"type:uuid;index"`

	ConsumedAt time.Time
	RestoredAt *time.Time
}

func (t *TicketConsumption) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
