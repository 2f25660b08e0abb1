// controllers/reservation.go
package controllers

import (
	"net/http"
	"time"

	"pawbook-backend/config"
	"pawbook-backend/models"
	"pawbook-backend/prometheus"
	"pawbook-backend/services"
	"pawbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateReservationInput defines the expected JSON structure for booking
type CreateReservationInput struct {
	DogID           uuid.UUID  `json:"dog_id" binding:"required"`
	ReservationDate string     `json:"reservation_date" binding:"required"`
	ReservationTime string     `json:"reservation_time"`
	ServiceType     string     `json:"service_type" binding:"required,oneof=daycare grooming hotel"`
	ServiceDetails  string     `json:"service_details"`
	RoomID          *uuid.UUID `json:"room_id"`
	EndDatetime     *string    `json:"end_datetime"`
}

// UpdateReservationInput defines the expected JSON structure for editing
type UpdateReservationInput struct {
	ReservationDate *string `json:"reservation_date"`
	ReservationTime *string `json:"reservation_time"`
	Notes           *string `json:"notes"`
}

// PreVisitInputBody is the owner-submitted health/behavior snapshot
type PreVisitInputBody struct {
	HealthCondition string     `json:"health_condition"`
	Appetite        string     `json:"appetite" binding:"omitempty,oneof=normal low none"`
	LastMealAt      *time.Time `json:"last_meal_at"`
	Medications     string     `json:"medications"`
	Notes           string     `json:"notes"`
}

// ReservationView decorates a reservation with derived read-side fields
type ReservationView struct {
	models.Reservation
	HasPreVisitInput bool `json:"hasPreVisitInput"`
}

// CreateReservation books a new visit for a dog
func CreateReservation(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var input CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, err := utils.ParseDate(input.ReservationDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation_date, expected YYYY-MM-DD")
		return
	}

	params := services.CreateReservationParams{
		DogID:       input.DogID,
		ServiceType: models.ServiceType(input.ServiceType),
		Date:        date,
		Time:        input.ReservationTime,
		RoomID:      input.RoomID,
		Notes:       input.ServiceDetails,
	}

	if input.ServiceType == string(models.ServiceHotel) {
		if input.RoomID == nil || input.EndDatetime == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "room_id and end_datetime are required for hotel stays")
			return
		}
		end, err := utils.ParseDateTime(*input.EndDatetime)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid end_datetime format")
			return
		}
		params.EndDatetime = &end
	}

	reservation, err := services.NewReservationService(config.DB).Create(identity, params)
	if err != nil {
		prometheus.RecordReservationOperation("create", "rejected")
		respondServiceError(c, err)
		return
	}

	prometheus.RecordReservationOperation("create", "success")
	c.JSON(http.StatusCreated, reservation)
}

// GetReservations lists reservations: an owner sees their dogs' visits, a
// staff member sees the store's day sheet (optionally filtered by ?date=)
func GetReservations(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Dog").Preload("Room").Preload("PreVisit").
		Where("reservations.store_id = ?", identity.StoreID).
		Order("reservation_date DESC, reservation_time")

	if identity.IsOwner() {
		query = query.Joins("JOIN dogs ON dogs.id = reservations.dog_id").
			Where("dogs.owner_id = ?", identity.OwnerID)
	} else if dateParam := c.Query("date"); dateParam != "" {
		date, err := utils.ParseDate(dateParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("reservation_date = ?", date)
	}

	var reservations []models.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reservations")
		return
	}

	views := make([]ReservationView, 0, len(reservations))
	for _, reservation := range reservations {
		views = append(views, ReservationView{
			Reservation:      reservation,
			HasPreVisitInput: reservation.PreVisit != nil,
		})
	}

	c.JSON(http.StatusOK, views)
}

// UpdateReservation edits a scheduled reservation
func UpdateReservation(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
		return
	}

	var input UpdateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	params := services.EditReservationParams{
		Time:  input.ReservationTime,
		Notes: input.Notes,
	}
	if input.ReservationDate != nil {
		date, err := utils.ParseDate(*input.ReservationDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation_date, expected YYYY-MM-DD")
			return
		}
		params.Date = &date
	}

	reservation, err := services.NewReservationService(config.DB).Edit(identity, reservationID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// CancelReservation voids a reservation
func CancelReservation(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
		return
	}

	reservation, err := services.NewReservationService(config.DB).Cancel(identity, reservationID)
	if err != nil {
		prometheus.RecordReservationOperation("cancel", "rejected")
		respondServiceError(c, err)
		return
	}

	prometheus.RecordReservationOperation("cancel", "success")
	c.JSON(http.StatusOK, gin.H{
		"message":     "Reservation cancelled",
		"reservation": reservation,
	})
}

// AttachPreVisitInput stores the pre-visit snapshot for a reservation
func AttachPreVisitInput(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
		return
	}

	var input PreVisitInputBody
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	preVisit, err := services.NewReservationService(config.DB).AttachPreVisit(identity, reservationID, models.PreVisitInput{
		HealthCondition: input.HealthCondition,
		Appetite:        input.Appetite,
		LastMealAt:      input.LastMealAt,
		Medications:     input.Medications,
		Notes:           input.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, preVisit)
}
