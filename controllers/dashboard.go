package controllers

import (
	"net/http"
	"time"

	"pawbook-backend/config"
	"pawbook-backend/models"
	"pawbook-backend/services"
	"pawbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TodayReservations int                  `json:"todayReservations"`
	CheckedInNow      int                  `json:"checkedInNow"`
	TodayCapacity     services.DayCapacity `json:"todayCapacity"`
	UpcomingCheckouts []UpcomingCheckout   `json:"upcomingCheckouts"`
	ActiveDogs        int                  `json:"activeDogs"`
}

type UpcomingCheckout struct {
	ReservationID string `json:"reservationId"`
	DogName       string `json:"dogName"`
	RoomName      string `json:"roomName"`
	CheckoutAt    string `json:"checkoutAt"`
}

// GetDashboardOverview returns the staff console's landing summary
func GetDashboardOverview(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	today := utils.DateOnly(time.Now())

	var todayCount int64
	config.DB.Model(&models.Reservation{}).
		Where("store_id = ? AND reservation_date = ? AND status <> ?",
			identity.StoreID, today, models.StatusCancelled).
		Count(&todayCount)

	var checkedInCount int64
	config.DB.Model(&models.Reservation{}).
		Where("store_id = ? AND status = ?", identity.StoreID, models.StatusCheckedIn).
		Count(&checkedInCount)

	var activeDogs int64
	config.DB.Model(&models.Dog{}).
		Where("store_id = ? AND is_active = ?", identity.StoreID, true).
		Count(&activeDogs)

	capacity, err := services.NewCapacityService(config.DB).RemainingCapacity(identity.StoreID, today)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Hotel stays ending within the next 24 hours
	var checkouts []models.Reservation
	config.DB.Preload("Dog").Preload("Room").
		Where("store_id = ? AND service_type = ? AND status = ? AND end_datetime BETWEEN ? AND ?",
			identity.StoreID, models.ServiceHotel, models.StatusCheckedIn,
			time.Now(), time.Now().Add(24*time.Hour)).
		Order("end_datetime").
		Find(&checkouts)

	upcoming := make([]UpcomingCheckout, 0, len(checkouts))
	for _, reservation := range checkouts {
		entry := UpcomingCheckout{
			ReservationID: reservation.ID.String(),
			DogName:       reservation.Dog.Name,
		}
		if reservation.Room != nil {
			entry.RoomName = reservation.Room.Name
		}
		if reservation.EndDatetime != nil {
			entry.CheckoutAt = reservation.EndDatetime.Format(time.RFC3339)
		}
		upcoming = append(upcoming, entry)
	}

	c.JSON(http.StatusOK, DashboardOverview{
		TodayReservations: int(todayCount),
		CheckedInNow:      int(checkedInCount),
		TodayCapacity:     capacity,
		UpcomingCheckouts: upcoming,
		ActiveDogs:        int(activeDogs),
	})
}
