package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-management-app/notifications"
	"github.com/yeremiapane/hotel-management-app/services"
	"github.com/yeremiapane/hotel-management-app/utils"
)

type ReceiptController struct {
	svc *services.ReceiptService
}

func NewReceiptController(db *gorm.DB, receiptsDir string, mailer notifications.Mailer) *ReceiptController {
	return &ReceiptController{svc: services.NewReceiptService(db, receiptsDir, mailer)}
}

// GetReadyReceipts -> paid reservations without a receipt yet.
func (rc *ReceiptController) GetReadyReceipts(c *gin.Context) {
	rows, err := rc.svc.ListReady()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Receipt-ready reservations", rows)
}

// GenerateReceipt -> issue the one-time receipt for a paid reservation.
func (rc *ReceiptController) GenerateReceipt(c *gin.Context) {
	type reqBody struct {
		ReservationID uint `json:"reservation_id" binding:"required"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	receipt, err := rc.svc.Generate(body.ReservationID, operatorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Receipt %s generated for reservation %d", receipt.ReceiptNumber, body.ReservationID)

	utils.RespondJSON(c, http.StatusOK, "Receipt generated", receipt)
}

// SendReceipt -> email the issued receipt to the customer.
func (rc *ReceiptController) SendReceipt(c *gin.Context) {
	type reqBody struct {
		ReservationID uint `json:"reservation_id" binding:"required"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	receipt, err := rc.svc.SendEmail(body.ReservationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Receipt sent", receipt)
}
