// controllers/dog.go
package controllers

import (
	"net/http"
	"time"

	"pawbook-backend/config"
	"pawbook-backend/models"
	"pawbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateDogInput defines the expected JSON structure for registering a dog
type CreateDogInput struct {
	Name     string     `json:"name" binding:"required"`
	Breed    string     `json:"breed"`
	Birthday *time.Time `json:"birthday"`
	Gender   string     `json:"gender" binding:"omitempty,oneof=male female"`
	Notes    string     `json:"notes"`
	OwnerID  *uuid.UUID `json:"ownerId"` // staff only; owners register their own dogs
}

// CreateDog registers a dog for an owner
func CreateDog(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var input CreateDogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	ownerID := identity.OwnerID
	if identity.IsStaff() {
		if input.OwnerID == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "ownerId required")
			return
		}
		var count int64
		config.DB.Model(&models.Owner{}).
			Where("store_id = ? AND id = ?", identity.StoreID, *input.OwnerID).Count(&count)
		if count == 0 {
			utils.RespondWithError(c, http.StatusNotFound, "Owner not found")
			return
		}
		ownerID = *input.OwnerID
	}

	dog := models.Dog{
		StoreID:  identity.StoreID,
		OwnerID:  ownerID,
		Name:     input.Name,
		Breed:    input.Breed,
		Birthday: input.Birthday,
		Gender:   input.Gender,
		Notes:    input.Notes,
		IsActive: true,
	}

	if err := config.DB.Create(&dog).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create dog")
		return
	}

	c.JSON(http.StatusCreated, dog)
}

// GetDogs lists dogs: an owner sees their own, staff see the whole store
func GetDogs(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	query := config.DB.Where("store_id = ?", identity.StoreID).Order("name")
	if identity.IsOwner() {
		query = query.Where("owner_id = ?", identity.OwnerID)
	}

	var dogs []models.Dog
	if err := query.Find(&dogs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve dogs")
		return
	}

	c.JSON(http.StatusOK, dogs)
}
