package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-management-app/services"
	"github.com/yeremiapane/hotel-management-app/utils"
)

type RefundController struct {
	svc *services.RefundService
}

func NewRefundController(db *gorm.DB) *RefundController {
	return &RefundController{svc: services.NewRefundService(db)}
}

// GetRefundRequests -> every reservation with a refund cycle, with the
// advisory eligibility flag.
func (rc *RefundController) GetRefundRequests(c *gin.Context) {
	rows, err := rc.svc.ListRequests()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Refund requests", rows)
}

// ProcessRefund -> approve or reject a requested refund.
func (rc *RefundController) ProcessRefund(c *gin.Context) {
	type reqBody struct {
		ReservationID   uint   `json:"reservation_id" binding:"required"`
		Action          string `json:"action" binding:"required"`
		RejectionReason string `json:"rejection_reason"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	refund, err := rc.svc.Process(services.ProcessRequest{
		ReservationID:   body.ReservationID,
		Action:          body.Action,
		RejectionReason: body.RejectionReason,
		ProcessedBy:     operatorID(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Refund for reservation %d %s by user %d",
		body.ReservationID, body.Action, operatorID(c))

	utils.RespondJSON(c, http.StatusOK, "Refund processed", refund)
}
