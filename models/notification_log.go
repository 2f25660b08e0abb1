// models/notification_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	StoreID       uuid.UUID `gorm:"type:uuid;index;not null"`
	OwnerID       uuid.UUID `gorm:"type:uuid;index;not null"`
	ReservationID uuid.UUID `gorm:"type:uuid;index;not null"`
	Type          string    `gorm:"type:varchar(20)"` // reservation_reminder
	Message       string    `gorm:"type:text"`
	Status        string    `gorm:"type:varchar(20)"` // sent, failed, skipped
	ErrorMessage  string    `gorm:"type:text"`
	Channel       string    `gorm:"type:varchar(20)"` // sms
	SentAt        time.Time
	gorm.Model
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
