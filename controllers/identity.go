package controllers

import (
	"errors"
	"net/http"

	"pawbook-backend/config"
	"pawbook-backend/services"
	"pawbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// currentIdentity reads the verified identity claims the auth middleware put
// on the context. Returns false after responding when the claims are broken.
func currentIdentity(c *gin.Context) (services.Identity, bool) {
	storeID := c.GetString("storeId")
	if storeID == "" {
		utils.RespondWithError(c, http.StatusUnauthorized, "Store ID not found in context")
		return services.Identity{}, false
	}
	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid store ID format")
		return services.Identity{}, false
	}

	identity := services.Identity{Role: c.GetString("role"), StoreID: storeUUID}

	switch identity.Role {
	case utils.RoleStaff:
		userID := c.GetString("userId")
		if userID == "" {
			utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
			return services.Identity{}, false
		}
		identity.UserID, err = uuid.Parse(userID)
	case utils.RoleOwner:
		ownerID := c.GetString("ownerId")
		if ownerID == "" {
			utils.RespondWithError(c, http.StatusUnauthorized, "Owner ID not found in context")
			return services.Identity{}, false
		}
		identity.OwnerID, err = uuid.Parse(ownerID)
	default:
		utils.RespondWithError(c, http.StatusUnauthorized, "Unknown role")
		return services.Identity{}, false
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid identity format")
		return services.Identity{}, false
	}
	return identity, true
}

// respondServiceError maps engine errors to structured HTTP responses.
// Expected outcomes become 4xx with the reason; anything else is a 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		utils.RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, services.ErrRoomConflict),
		errors.Is(err, services.ErrInsufficientTicket),
		errors.Is(err, services.ErrInvalidInterval),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrTokenExpired),
		errors.Is(err, services.ErrStoreMismatch),
		errors.Is(err, services.ErrInvalidStateTransition):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		config.GetLogger().Error("Unexpected service error", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
