package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-management-app/events"
	"github.com/yeremiapane/hotel-management-app/models"
)

// RefundService handles the refund request/adjudication cycle.
type RefundService struct {
	db *gorm.DB
}

func NewRefundService(db *gorm.DB) *RefundService {
	return &RefundService{db: db}
}

// RefundRequestRow is one row of the refund-requests listing, joined
// with any existing Refund record and the display fields.
type RefundRequestRow struct {
	ReservationID     uint       `json:"reservation_id"`
	StartDate         time.Time  `json:"start_date"`
	EndDate           time.Time  `json:"end_date"`
	RefundStatus      string     `json:"refund_status"`
	RefundAmount      float64    `json:"refund_amount"`
	RefundReason      string     `json:"refund_reason"`
	CustomerName      string     `json:"customer_name"`
	CustomerEmail     string     `json:"customer_email"`
	RoomCode          string     `json:"room_code"`
	PolicyName        string     `json:"policy_name"`
	CancellationHours int        `json:"cancellation_hours"`
	ProcessedDate     *time.Time `json:"processed_date"`
	ProcessedBy       *uint      `json:"processed_by"`
	RejectionReason   string     `json:"rejection_reason"`

	// RefundEligible is advisory only: it reports whether the request
	// falls inside the policy's cancellation window. Approval is always
	// the operator's decision; eligibility is never enforced.
	RefundEligible bool `json:"refund_eligible"`
}

// ListRequests returns every reservation with an open or adjudicated
// refund cycle, ordered by stay date.
func (s *RefundService) ListRequests() ([]RefundRequestRow, error) {
	var rows []RefundRequestRow
	err := s.db.Table("reservations").
		Select(`reservations.id AS reservation_id, reservations.start_date, reservations.end_date,
			reservations.refund_status, reservations.refund_amount, reservations.refund_reason,
			customers.name AS customer_name, customers.email AS customer_email,
			rooms.code AS room_code,
			policies.name AS policy_name, policies.cancellation_hours,
			refunds.processed_date, refunds.processed_by, refunds.rejection_reason`).
		Joins("JOIN customers ON reservations.customer_id = customers.id").
		Joins("JOIN rooms ON reservations.room_id = rooms.id").
		Joins("JOIN policies ON reservations.policy_id = policies.id").
		Joins("LEFT JOIN refunds ON refunds.reservation_id = reservations.id").
		Where("reservations.refund_status IN ?", []string{RefundStatusRequested, RefundStatusApproved, RefundStatusRejected}).
		Order("reservations.start_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range rows {
		rows[i].RefundEligible = RefundEligible(rows[i].StartDate, rows[i].CancellationHours, now)
	}
	return rows, nil
}

// RefundEligible reports whether a cancellation at time now still falls
// inside the policy window, i.e. at least cancellationHours before
// check-in.
func RefundEligible(startDate time.Time, cancellationHours int, now time.Time) bool {
	deadline := startDate.Add(-time.Duration(cancellationHours) * time.Hour)
	return now.Before(deadline)
}

// Request opens a refund cycle on a paid reservation (customer-facing).
// Amount defaults to the full payment amount.
func (s *RefundService) Request(reservationID uint, amount float64, reason string) (*models.Reservation, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var reservation models.Reservation
	err := lockForUpdate(tx).
		Where("id = ? AND payment_status = ?", reservationID, PaymentStatusPaid).
		First(&reservation).Error
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}

	if reservation.RefundStatus != RefundStatusNone {
		tx.Rollback()
		return nil, ErrRefundAlreadyOpen
	}

	if amount <= 0 || amount > reservation.PaymentAmount {
		amount = reservation.PaymentAmount
	}

	updates := map[string]interface{}{
		"refund_status": RefundStatusRequested,
		"refund_amount": amount,
		"refund_reason": reason,
	}
	if err := tx.Model(&reservation).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to open refund request: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	events.BroadcastRefundRequested(reservation)

	return &reservation, nil
}

// ProcessRequest carries one adjudication decision by an operator.
type ProcessRequest struct {
	ReservationID   uint
	Action          string // must be approved or rejected
	RejectionReason string
	ProcessedBy     uint
}

// Process approves or rejects a requested refund. The reservation is
// re-fetched filtered on refund_status = requested with the row locked;
// no match means the refund was already processed (or never requested)
// and nothing is written. The Refund record is upserted: inserted if
// absent, otherwise its status and processed fields are updated, with
// rejection_reason set only on the rejected path.
func (s *RefundService) Process(req ProcessRequest) (*models.Refund, error) {
	if req.Action != RefundStatusApproved && req.Action != RefundStatusRejected {
		return nil, ErrInvalidRefundAction
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var reservation models.Reservation
	err := lockForUpdate(tx).
		Where("id = ? AND refund_status = ?", req.ReservationID, RefundStatusRequested).
		First(&reservation).Error
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}

	if err := tx.Model(&reservation).Update("refund_status", req.Action).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update refund status: %w", err)
	}

	now := time.Now()
	rejectionReason := ""
	if req.Action == RefundStatusRejected {
		rejectionReason = req.RejectionReason
	}

	var refund models.Refund
	err = tx.Where("reservation_id = ?", reservation.ID).First(&refund).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		refund = models.Refund{
			ReservationID:   reservation.ID,
			Amount:          reservation.RefundAmount,
			Reason:          reservation.RefundReason,
			Status:          req.Action,
			RequestedDate:   reservation.UpdatedAt,
			ProcessedDate:   &now,
			ProcessedBy:     &req.ProcessedBy,
			RejectionReason: rejectionReason,
		}
		if err := tx.Create(&refund).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to insert refund record: %w", err)
		}
	case err != nil:
		tx.Rollback()
		return nil, fmt.Errorf("failed to find refund record: %w", err)
	default:
		updates := map[string]interface{}{
			"status":           req.Action,
			"processed_date":   now,
			"processed_by":     req.ProcessedBy,
			"rejection_reason": rejectionReason,
		}
		if err := tx.Model(&refund).Updates(updates).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to update refund record: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	events.BroadcastRefundProcessed(refund)

	return &refund, nil
}
