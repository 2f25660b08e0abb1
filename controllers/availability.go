// controllers/availability.go
package controllers

import (
	"net/http"

	"pawbook-backend/config"
	"pawbook-backend/services"
	"pawbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetAvailability returns per-day remaining capacity for a month, backing
// the booking calendar
func GetAvailability(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	monthParam := c.Query("month")
	if monthParam == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "month query parameter required (YYYY-MM)")
		return
	}
	month, err := utils.ParseMonth(monthParam)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid month, expected YYYY-MM")
		return
	}

	availability, err := services.NewAvailabilityService(config.DB).MonthlyAvailability(identity.StoreID, month)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, availability)
}

// GetHotelAvailability lists the store's rooms with their availability for
// a requested stay interval
func GetHotelAvailability(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	checkinParam := c.Query("checkin_datetime")
	checkoutParam := c.Query("checkout_datetime")
	if checkinParam == "" || checkoutParam == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "checkin_datetime and checkout_datetime query parameters required")
		return
	}

	checkin, err := utils.ParseDateTime(checkinParam)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid checkin_datetime format")
		return
	}
	checkout, err := utils.ParseDateTime(checkoutParam)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid checkout_datetime format")
		return
	}

	rooms, err := services.NewAvailabilityService(config.DB).HotelAvailability(identity.StoreID, checkin, checkout)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}
