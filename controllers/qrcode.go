// controllers/qrcode.go
package controllers

import (
	"net/http"

	"pawbook-backend/services"
	"pawbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetQRCode issues the store's static kiosk token. The payload is rendered
// as a printed QR placard, so it stays valid until explicitly regenerated.
func GetQRCode(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	token, err := services.NewQRTokenService().Issue(identity.StoreID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to issue QR code")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"qrCode":  token,
		"storeId": identity.StoreID,
	})
}
