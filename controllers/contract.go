// controllers/contract.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"pawbook-backend/config"
	"pawbook-backend/models"
	"pawbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateContractInput defines the expected JSON structure for creating a
// prepaid contract
type CreateContractInput struct {
	DogID         uuid.UUID  `json:"dogId" binding:"required"`
	ContractType  string     `json:"contractType" binding:"required,oneof=ticket monthly"`
	TotalSessions int        `json:"totalSessions" binding:"omitempty,min=1"`
	ValidUntil    *time.Time `json:"validUntil"`
}

// UpdateContractInput defines the expected JSON structure for adjusting a
// contract
type UpdateContractInput struct {
	RemainingSessions *int       `json:"remainingSessions" binding:"omitempty,min=0"`
	ValidUntil        *time.Time `json:"validUntil"`
}

// CreateContract creates a prepaid contract for a dog
func CreateContract(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var input CreateContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var dog models.Dog
	if err := config.DB.Where("store_id = ? AND id = ?", identity.StoreID, input.DogID).
		First(&dog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Dog not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.ContractType == string(models.ContractTicket) && input.TotalSessions == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "totalSessions required for ticket contracts")
		return
	}

	contract := models.Contract{
		StoreID:           identity.StoreID,
		DogID:             dog.ID,
		ContractType:      models.ContractType(input.ContractType),
		TotalSessions:     input.TotalSessions,
		RemainingSessions: input.TotalSessions,
		ValidUntil:        input.ValidUntil,
	}

	if err := config.DB.Create(&contract).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create contract")
		return
	}

	c.JSON(http.StatusCreated, contract)
}

// GetContracts lists the store's contracts, optionally filtered by dog
func GetContracts(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	query := config.DB.Where("store_id = ?", identity.StoreID).Order("created_at DESC")
	if dogParam := c.Query("dog_id"); dogParam != "" {
		dogID, err := uuid.Parse(dogParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid dog_id format")
			return
		}
		query = query.Where("dog_id = ?", dogID)
	}

	var contracts []models.Contract
	if err := query.Find(&contracts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve contracts")
		return
	}

	c.JSON(http.StatusOK, contracts)
}

// UpdateContract adjusts a contract's balance or validity
func UpdateContract(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid contract ID format")
		return
	}

	var input UpdateContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var contract models.Contract
	if err := config.DB.Where("store_id = ? AND id = ?", identity.StoreID, contractID).
		First(&contract).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Contract not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.RemainingSessions != nil {
		contract.RemainingSessions = *input.RemainingSessions
	}
	if input.ValidUntil != nil {
		contract.ValidUntil = input.ValidUntil
	}

	if err := config.DB.Save(&contract).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update contract")
		return
	}

	c.JSON(http.StatusOK, contract)
}
