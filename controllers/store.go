// controllers/store.go
package controllers

import (
	"net/http"

	"pawbook-backend/config"
	"pawbook-backend/models"
	"pawbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// UpdateStoreInput defines the expected JSON structure for store settings
type UpdateStoreInput struct {
	Name          *string            `json:"name"`
	Address       *string            `json:"address"`
	Phone         *string            `json:"phone"`
	MaxCapacity   *int               `json:"maxCapacity" binding:"omitempty,min=1"`
	BusinessHours *models.JSONB      `json:"businessHours"`
	ClosedDays    *models.StringList `json:"closedDays"`
}

// GetStore returns the store profile and capacity configuration
func GetStore(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var store models.Store
	if err := config.DB.First(&store, "id = ?", identity.StoreID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Store not found")
		return
	}

	c.JSON(http.StatusOK, store)
}

// UpdateStore updates the store profile and capacity configuration
func UpdateStore(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var input UpdateStoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var store models.Store
	if err := config.DB.First(&store, "id = ?", identity.StoreID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Store not found")
		return
	}

	if input.Name != nil {
		store.Name = *input.Name
	}
	if input.Address != nil {
		store.Address = *input.Address
	}
	if input.Phone != nil {
		store.Phone = *input.Phone
	}
	if input.MaxCapacity != nil {
		store.MaxCapacity = *input.MaxCapacity
	}
	if input.BusinessHours != nil {
		store.BusinessHours = *input.BusinessHours
	}
	if input.ClosedDays != nil {
		store.ClosedDays = *input.ClosedDays
	}

	if err := config.DB.Save(&store).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update store")
		return
	}

	c.JSON(http.StatusOK, store)
}
