package models

import "time"

// Refund records one refund cycle for a reservation (upsert, one row
// per reservation). Re-processing an already-adjudicated refund is not
// permitted; the service guards on the reservation's refund_status.
type Refund struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	ReservationID   uint        `gorm:"unique;not null" json:"reservation_id"`
	Reservation     Reservation `gorm:"foreignKey:ReservationID" json:"reservation"`
	Amount          float64     `gorm:"type:decimal(12,2);not null" json:"amount"`
	Reason          string      `gorm:"type:text" json:"reason"`
	Status          string      `gorm:"type:varchar(20);not null" json:"status"` // requested, approved, rejected
	RequestedDate   time.Time   `gorm:"not null" json:"requested_date"`
	ProcessedDate   *time.Time  `json:"processed_date"`
	ProcessedBy     *uint       `json:"processed_by"`
	RejectionReason string      `gorm:"type:text" json:"rejection_reason"`
	CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null" json:"updated_at"`
}
