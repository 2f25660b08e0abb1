// controllers/checkin.go
package controllers

import (
	"net/http"

	"pawbook-backend/config"
	"pawbook-backend/prometheus"
	"pawbook-backend/services"
	"pawbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CheckRequestInput is the payload the mini-app sends after scanning the
// kiosk QR code
type CheckRequestInput struct {
	QRCode        string    `json:"qrCode" binding:"required"`
	ReservationID uuid.UUID `json:"reservationId" binding:"required"`
}

// CheckIn marks a scheduled reservation as checked in
func CheckIn(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var input CheckRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	reservation, err := services.NewReservationService(config.DB).CheckIn(identity, input.ReservationID, input.QRCode)
	if err != nil {
		prometheus.RecordCheckInOperation("check_in", "rejected")
		respondServiceError(c, err)
		return
	}

	prometheus.RecordCheckInOperation("check_in", "success")
	c.JSON(http.StatusOK, gin.H{
		"message":     "Checked in",
		"reservation": reservation,
	})
}

// CheckOut marks a checked-in reservation as checked out
func CheckOut(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var input CheckRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	reservation, err := services.NewReservationService(config.DB).CheckOut(identity, input.ReservationID, input.QRCode)
	if err != nil {
		prometheus.RecordCheckInOperation("check_out", "rejected")
		respondServiceError(c, err)
		return
	}

	prometheus.RecordCheckInOperation("check_out", "success")
	c.JSON(http.StatusOK, gin.H{
		"message":     "Checked out",
		"reservation": reservation,
	})
}
