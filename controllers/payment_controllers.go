package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-management-app/services"
	"github.com/yeremiapane/hotel-management-app/utils"
)

type PaymentController struct {
	svc *services.PaymentService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{svc: services.NewPaymentService(db)}
}

// GetPendingPayments -> reservations awaiting settlement, earliest
// stays first.
func (pc *PaymentController) GetPendingPayments(c *gin.Context) {
	rows, err := pc.svc.ListPending()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pending payments", rows)
}

// UpdatePaymentStatus -> settle a reservation payment (paid/rejected)
// with an audit record.
func (pc *PaymentController) UpdatePaymentStatus(c *gin.Context) {
	type reqBody struct {
		ReservationID uint   `json:"reservation_id" binding:"required"`
		PaymentStatus string `json:"payment_status" binding:"required"`
		PaymentMethod string `json:"payment_method"`
		TransactionID string `json:"transaction_id"`
		Notes         string `json:"notes"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	payment, err := pc.svc.Settle(services.SettleRequest{
		ReservationID: body.ReservationID,
		PaymentStatus: body.PaymentStatus,
		PaymentMethod: body.PaymentMethod,
		TransactionID: body.TransactionID,
		Notes:         body.Notes,
		ProcessedBy:   operatorID(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Payment for reservation %d settled as %s by user %d",
		body.ReservationID, body.PaymentStatus, operatorID(c))

	utils.RespondJSON(c, http.StatusOK, "Payment updated successfully", payment)
}

// GetPaymentHistory -> full payment audit trail, newest first.
func (pc *PaymentController) GetPaymentHistory(c *gin.Context) {
	payments, err := pc.svc.History()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment history", payments)
}
