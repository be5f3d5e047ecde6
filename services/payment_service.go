package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-management-app/events"
	"github.com/yeremiapane/hotel-management-app/models"
)

// Payment status of a reservation. A reservation only ever moves
// pending -> {paid, rejected} and rejected -> {paid, rejected}; it
// never reverts from paid.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRejected = "rejected"
)

// Refund status of a reservation.
const (
	RefundStatusNone      = "none"
	RefundStatusRequested = "requested"
	RefundStatusApproved  = "approved"
	RefundStatusRejected  = "rejected"
)

const DefaultPaymentMethod = "cash"

// PaymentService handles settlement of reservation payments.
type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// PendingPaymentRow is one row of the pending-payments listing, joined
// with the display fields the payment manager screen needs.
type PendingPaymentRow struct {
	ReservationID uint       `json:"reservation_id"`
	CustomerID    uint       `json:"customer_id"`
	RoomID        uint       `json:"room_id"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       time.Time  `json:"end_date"`
	PaymentStatus string     `json:"payment_status"`
	PaymentAmount float64    `json:"payment_amount"`
	PaymentDate   *time.Time `json:"payment_date"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	RoomType      string     `json:"room_type"`
	RoomCode      string     `json:"room_code"`
	PolicyName    string     `json:"policy_name"`
}

// ListPending returns reservations awaiting settlement (pending or
// rejected, the latter open for re-review), earliest stays first.
func (s *PaymentService) ListPending() ([]PendingPaymentRow, error) {
	var rows []PendingPaymentRow
	err := s.db.Table("reservations").
		Select(`reservations.id AS reservation_id, reservations.customer_id, reservations.room_id,
			reservations.start_date, reservations.end_date,
			reservations.payment_status, reservations.payment_amount, reservations.payment_date,
			customers.name AS customer_name, customers.email AS customer_email,
			rooms.type AS room_type, rooms.code AS room_code,
			policies.name AS policy_name`).
		Joins("JOIN customers ON reservations.customer_id = customers.id").
		Joins("JOIN rooms ON reservations.room_id = rooms.id").
		Joins("JOIN policies ON reservations.policy_id = policies.id").
		Where("reservations.payment_status IN ?", []string{PaymentStatusPending, PaymentStatusRejected}).
		Order("reservations.start_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SettleRequest carries one settlement decision by an operator.
type SettleRequest struct {
	ReservationID uint
	PaymentStatus string // must be paid or rejected
	PaymentMethod string // defaults to cash
	TransactionID string
	Notes         string
	ProcessedBy   uint
}

// Settle marks a reservation paid or rejected and appends the Payment
// audit record in the same transaction. The audit trail and the
// reservation status never disagree: any failure after the fetch rolls
// back both writes.
func (s *PaymentService) Settle(req SettleRequest) (*models.Payment, error) {
	if req.PaymentStatus != PaymentStatusPaid && req.PaymentStatus != PaymentStatusRejected {
		return nil, ErrInvalidPaymentStatus
	}

	method := req.PaymentMethod
	if method == "" {
		method = DefaultPaymentMethod
	}
	txnID := req.TransactionID
	if txnID == "" {
		txnID = uuid.New().String()
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var reservation models.Reservation
	if err := lockForUpdate(tx).First(&reservation, req.ReservationID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}

	// Paid is final. The same rule is backed by a database trigger on
	// MySQL, but it must hold on every dialect.
	if reservation.PaymentStatus == PaymentStatusPaid {
		tx.Rollback()
		return nil, ErrPaymentFinal
	}

	now := time.Now()
	updates := map[string]interface{}{
		"payment_status": req.PaymentStatus,
		"payment_date":   now,
	}
	if err := tx.Model(&reservation).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	payment := models.Payment{
		ReservationID: reservation.ID,
		Amount:        reservation.PaymentAmount,
		PaymentMethod: method,
		PaymentStatus: req.PaymentStatus,
		TransactionID: txnID,
		PaymentDate:   now,
		ProcessedBy:   req.ProcessedBy,
		Notes:         req.Notes,
	}
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to insert payment record: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	events.BroadcastPaymentSettled(payment)

	return &payment, nil
}

// History returns the full payment audit trail, newest first.
func (s *PaymentService) History() ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.Order("payment_date DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
