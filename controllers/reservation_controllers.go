package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-management-app/events"
	"github.com/yeremiapane/hotel-management-app/models"
	"github.com/yeremiapane/hotel-management-app/services"
	"github.com/yeremiapane/hotel-management-app/utils"
)

type ReservationController struct {
	DB        *gorm.DB
	refundSvc *services.RefundService
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{DB: db, refundSvc: services.NewRefundService(db)}
}

// CreateReservation books a room for a customer. The amount is derived
// from the price of the room's category times the number of nights; an
// overlapping reservation for the same room is refused.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	type request struct {
		CustomerID uint   `json:"customer_id" binding:"required"`
		RoomID     uint   `json:"room_id" binding:"required"`
		PolicyID   uint   `json:"policy_id" binding:"required"`
		StartDate  string `json:"start_date" binding:"required"`
		EndDate    string `json:"end_date" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid start_date"))
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid end_date"))
		return
	}
	if !end.After(start) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("end_date must be after start_date"))
		return
	}

	var customer models.Customer
	if err := rc.DB.First(&customer, req.CustomerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("customer not found"))
		return
	}
	var room models.Room
	if err := rc.DB.First(&room, req.RoomID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("room not found"))
		return
	}
	var policy models.Policy
	if err := rc.DB.First(&policy, req.PolicyID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("policy not found"))
		return
	}

	var price models.Price
	if err := rc.DB.Where("category = ?", room.Type).First(&price).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("no price defined for category %s", room.Type))
		return
	}

	var overlapping int64
	err = rc.DB.Model(&models.Reservation{}).
		Where("room_id = ? AND start_date < ? AND end_date > ?", room.ID, end, start).
		Count(&overlapping).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if overlapping > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("room already reserved for these dates"))
		return
	}

	nights := int(end.Sub(start).Hours() / 24)
	reservation := models.Reservation{
		CustomerID:    customer.ID,
		RoomID:        room.ID,
		PolicyID:      policy.ID,
		StartDate:     start,
		EndDate:       end,
		PaymentStatus: services.PaymentStatusPending,
		PaymentAmount: price.Amount * float64(nights),
		RefundStatus:  services.RefundStatusNone,
	}
	if err := rc.DB.Create(&reservation).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	events.BroadcastReservationCreated(reservation)

	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}

// GetAllReservations lists reservations with their relations.
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	var reservations []models.Reservation
	err := rc.DB.Preload("Customer").Preload("Room").Preload("Policy").
		Order("start_date ASC").
		Find(&reservations).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// CancelReservation deletes a reservation that has not been settled
// yet. Paid reservations go through the refund cycle instead.
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	idStr := c.Param("reservation_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("reservation not found"))
		return
	}

	if reservation.PaymentStatus == services.PaymentStatusPaid {
		utils.RespondError(c, http.StatusConflict, errors.New("paid reservation must be refunded, not cancelled"))
		return
	}

	if err := rc.DB.Delete(&reservation).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	events.BroadcastReservationCancelled(reservation)

	utils.RespondJSON(c, http.StatusOK, "Reservation cancelled successfully", gin.H{"reservation_id": reservation.ID})
}

// RequestRefund opens the refund cycle on a paid reservation.
func (rc *ReservationController) RequestRefund(c *gin.Context) {
	idStr := c.Param("reservation_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	type request struct {
		Amount float64 `json:"amount"`
		Reason string  `json:"reason"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.refundSvc.Request(uint(id), req.Amount, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Refund requested", reservation)
}
