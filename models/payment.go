package models

import (
	"time"
)

// Payment is an append-only audit record of a settlement action. A
// reservation may accumulate several payment records over its lifetime
// (e.g. rejected then re-reviewed and paid); rows are never updated
// after insert.
type Payment struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	ReservationID uint        `json:"reservation_id" gorm:"not null;index"`
	Reservation   Reservation `json:"reservation" gorm:"foreignKey:ReservationID"`
	Amount        float64     `json:"amount" gorm:"type:decimal(12,2);not null"`
	PaymentMethod string      `json:"payment_method" gorm:"type:varchar(50);not null;default:'cash'"`
	PaymentStatus string      `json:"payment_status" gorm:"type:varchar(20);not null"`
	TransactionID string      `json:"transaction_id" gorm:"type:varchar(100)"`
	PaymentDate   time.Time   `json:"payment_date" gorm:"not null"`
	ProcessedBy   uint        `json:"processed_by"` // operator user id
	Notes         string      `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time   `json:"created_at"`
}
