// services/reminder_service.go
package services

import (
	"fmt"
	"os"
	"time"

	"pawbook-backend/config"
	"pawbook-backend/models"
	"pawbook-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReminderService texts owners about tomorrow's reservations.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 6 PM
	c.AddFunc("0 18 * * *", s.SendDailyReminders)

	c.Start()
	config.GetLogger().Info("Reminder scheduler started")
}

// SendDailyReminders texts the owner of every reservation scheduled for
// tomorrow that has not already been reminded.
func (s *ReminderService) SendDailyReminders() {
	log := config.GetLogger()
	log.Info("Starting daily reminder processing")

	tomorrow := utils.DateOnly(time.Now().AddDate(0, 0, 1))

	var reservations []models.Reservation
	err := s.db.Preload("Dog").
		Where("reservation_date = ? AND status = ?", tomorrow, models.StatusScheduled).
		Find(&reservations).Error
	if err != nil {
		log.Error("Failed to fetch tomorrow's reservations", zap.Error(err))
		return
	}

	for _, reservation := range reservations {
		s.processReservation(reservation)
	}

	log.Info("Daily reminder processing completed", zap.Int("reservations", len(reservations)))
}

func (s *ReminderService) processReservation(reservation models.Reservation) {
	log := config.GetLogger()

	var alreadySent int64
	s.db.Model(&models.NotificationLog{}).
		Where("reservation_id = ? AND type = ? AND status = ?", reservation.ID, "reservation_reminder", "sent").
		Count(&alreadySent)
	if alreadySent > 0 {
		return
	}

	var owner models.Owner
	if err := s.db.First(&owner, "id = ?", reservation.Dog.OwnerID).Error; err != nil {
		log.Error("Failed to load owner for reminder",
			zap.String("reservation", reservation.ID.String()), zap.Error(err))
		return
	}

	message := fmt.Sprintf("Reminder: %s has a %s visit tomorrow at %s. See you there!",
		reservation.Dog.Name, reservation.ServiceType, reservation.ReservationTime)

	entry := models.NotificationLog{
		StoreID:       reservation.StoreID,
		OwnerID:       owner.ID,
		ReservationID: reservation.ID,
		Type:          "reservation_reminder",
		Message:       message,
		Channel:       "sms",
		SentAt:        time.Now(),
	}

	if err := s.sendSMS(owner.Phone, message); err != nil {
		entry.Status = "failed"
		entry.ErrorMessage = err.Error()
		log.Error("Failed to send reminder SMS",
			zap.String("reservation", reservation.ID.String()), zap.Error(err))
	} else {
		entry.Status = "sent"
	}

	if err := s.db.Create(&entry).Error; err != nil {
		log.Error("Failed to record notification log", zap.Error(err))
	}
}

func (s *ReminderService) sendSMS(to, body string) error {
	from := os.Getenv("TWILIO_FROM_NUMBER")
	if from == "" || to == "" {
		return fmt.Errorf("sms not configured or owner has no phone")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(body)

	_, err := s.client.Api.CreateMessage(params)
	return err
}
