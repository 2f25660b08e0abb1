package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"pawbook-backend/config"
	"pawbook-backend/models"
	"pawbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email        string       `json:"email" binding:"required,email"`
	Phone        string       `json:"phone" binding:"required"`
	Name         string       `json:"name" binding:"required"`
	Password     string       `json:"password" binding:"required,min=8"`
	StoreName    string       `json:"storeName" binding:"required"`
	StoreAddress string       `json:"storeAddress"`
	BusinessType string       `json:"businessType" binding:"omitempty,oneof=daycare grooming hotel"`
	MaxCapacity  int          `json:"maxCapacity" binding:"omitempty,min=1"`
	BusinessHours models.JSONB `json:"businessHours"`
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // Can be email or phone
	Password   string `json:"password" binding:"required"`
}

type LineLoginInput struct {
	// LineUserID is the subject of an already-verified LIFF id token.
	// Verification happens upstream; this handler only reads the claim.
	LineUserID string `json:"lineUserId" binding:"required"`
	StoreID    string `json:"storeId"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
}

// Register creates a store and its first staff account.
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate phone format
	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	var existingUser models.User
	result := config.DB.Where("email = ? OR phone = ?", input.Email, input.Phone).First(&existingUser)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email or phone already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	maxCapacity := input.MaxCapacity
	if maxCapacity == 0 {
		maxCapacity = 10
	}
	businessType := input.BusinessType
	if businessType == "" {
		businessType = "daycare"
	}

	store := models.Store{
		Name:          input.StoreName,
		Address:       input.StoreAddress,
		Phone:         input.Phone,
		BusinessType:  businessType,
		MaxCapacity:   maxCapacity,
		BusinessHours: input.BusinessHours,
		ClosedDays:    models.StringList{},
	}
	if store.BusinessHours == nil {
		store.BusinessHours = models.JSONB{
			"monday":    map[string]interface{}{"open": "09:00", "close": "19:00"},
			"tuesday":   map[string]interface{}{"open": "09:00", "close": "19:00"},
			"wednesday": map[string]interface{}{"open": "09:00", "close": "19:00"},
			"thursday":  map[string]interface{}{"open": "09:00", "close": "19:00"},
			"friday":    map[string]interface{}{"open": "09:00", "close": "19:00"},
			"saturday":  map[string]interface{}{"open": "09:00", "close": "18:00"},
			"sunday":    map[string]interface{}{"open": "10:00", "close": "17:00"},
		}
	}

	newUser := models.User{
		Email:    input.Email,
		Phone:    input.Phone,
		Name:     input.Name,
		Password: input.Password, // Will be hashed in BeforeCreate hook
		Role:     "admin",
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&store).Error; err != nil {
			return err
		}
		newUser.StoreID = store.ID
		return tx.Create(&newUser).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := utils.GenerateToken(newUser.ID.String(), store.ID.String(), utils.RoleStaff)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user": gin.H{
			"id":        newUser.ID,
			"email":     newUser.Email,
			"phone":     newUser.Phone,
			"storeName": store.Name,
			"storeId":   store.ID,
		},
	})
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	identifier := strings.TrimSpace(input.Identifier)

	var user models.User
	result := config.DB.Where("email = ? OR phone = ?", identifier, identifier).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.StoreID.String(), utils.RoleStaff)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":      user.ID,
			"email":   user.Email,
			"name":    user.Name,
			"storeId": user.StoreID,
		},
	})
}

// LineLogin exchanges a verified LINE identity for an owner session token.
// First-time callers are registered against the store they scanned in from.
func LineLogin(c *gin.Context) {
	var input LineLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Phone is optional on first login, but a provided one must be valid
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	var owner models.Owner
	err := config.DB.Where("line_user_id = ?", input.LineUserID).First(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if input.StoreID == "" || input.Name == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "storeId and name required for first login")
			return
		}
		store, parseErr := uuid.Parse(input.StoreID)
		if parseErr != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid store ID format")
			return
		}
		var count int64
		config.DB.Model(&models.Store{}).Where("id = ?", store).Count(&count)
		if count == 0 {
			utils.RespondWithError(c, http.StatusNotFound, "Store not found")
			return
		}
		owner = models.Owner{
			StoreID:    store,
			LineUserID: input.LineUserID,
			Name:       input.Name,
			Phone:      input.Phone,
			IsActive:   true,
		}
		if err := config.DB.Create(&owner).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create owner")
			return
		}
	} else if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	token, err := utils.GenerateToken(owner.ID.String(), owner.StoreID.String(), utils.RoleOwner)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"owner": gin.H{
			"id":      owner.ID,
			"name":    owner.Name,
			"storeId": owner.StoreID,
		},
	})
}

func Me(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	if identity.IsOwner() {
		var owner models.Owner
		if err := config.DB.Preload("Dogs").First(&owner, "id = ?", identity.OwnerID).Error; err != nil {
			utils.RespondWithError(c, http.StatusUnauthorized, "Owner not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"owner": owner})
		return
	}

	var user models.User
	if err := config.DB.Preload("Store").First(&user, "id = ?", identity.UserID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"name":      user.Name,
			"storeName": user.Store.Name,
			"storeId":   user.StoreID,
		},
	})
}
