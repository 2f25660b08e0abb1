// controllers/room.go
package controllers

import (
	"errors"
	"net/http"

	"pawbook-backend/config"
	"pawbook-backend/models"
	"pawbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateRoomInput defines the expected JSON structure for creating a room
type CreateRoomInput struct {
	Name         string `json:"name" binding:"required"`
	SizeClass    string `json:"sizeClass" binding:"omitempty,oneof=small medium large"`
	Capacity     int    `json:"capacity" binding:"omitempty,min=1"`
	DisplayOrder int    `json:"displayOrder"`
}

// UpdateRoomInput defines the expected JSON structure for updating a room
type UpdateRoomInput struct {
	Name         *string `json:"name"`
	SizeClass    *string `json:"sizeClass" binding:"omitempty,oneof=small medium large"`
	Capacity     *int    `json:"capacity" binding:"omitempty,min=1"`
	IsEnabled    *bool   `json:"isEnabled"`
	DisplayOrder *int    `json:"displayOrder"`
}

// CreateRoom creates a new hotel room for the store
func CreateRoom(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var input CreateRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	room := models.HotelRoom{
		StoreID:      identity.StoreID,
		Name:         input.Name,
		SizeClass:    input.SizeClass,
		Capacity:     input.Capacity,
		IsEnabled:    true,
		DisplayOrder: input.DisplayOrder,
	}
	if room.SizeClass == "" {
		room.SizeClass = "medium"
	}
	if room.Capacity == 0 {
		room.Capacity = 1
	}

	if err := config.DB.Create(&room).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create room")
		return
	}

	c.JSON(http.StatusCreated, room)
}

// GetRooms retrieves all rooms for the store
func GetRooms(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var rooms []models.HotelRoom
	if err := config.DB.Where("store_id = ?", identity.StoreID).
		Order("display_order, name").Find(&rooms).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve rooms")
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// UpdateRoom updates an existing room
func UpdateRoom(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid room ID format")
		return
	}

	var input UpdateRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var room models.HotelRoom
	if err := config.DB.Where("store_id = ? AND id = ?", identity.StoreID, roomID).
		First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Room not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		room.Name = *input.Name
	}
	if input.SizeClass != nil {
		room.SizeClass = *input.SizeClass
	}
	if input.Capacity != nil {
		room.Capacity = *input.Capacity
	}
	if input.IsEnabled != nil {
		room.IsEnabled = *input.IsEnabled
	}
	if input.DisplayOrder != nil {
		room.DisplayOrder = *input.DisplayOrder
	}

	if err := config.DB.Save(&room).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update room")
		return
	}

	c.JSON(http.StatusOK, room)
}

// DeleteRoom soft deletes a room
func DeleteRoom(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid room ID format")
		return
	}

	result := config.DB.Where("store_id = ? AND id = ?", identity.StoreID, roomID).
		Delete(&models.HotelRoom{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete room")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Room not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}
