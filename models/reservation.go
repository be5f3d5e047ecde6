package models

import (
	"time"
)

// Reservation is a booking of one room for a customer over a date range,
// carrying payment and refund sub-state. It is mutated only by the
// settlement, receipt and refund services inside a transaction that
// locks the row first.
type Reservation struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	CustomerID uint     `gorm:"not null;index" json:"customer_id"`
	Customer   Customer `gorm:"foreignKey:CustomerID" json:"customer"`
	RoomID     uint     `gorm:"not null;index" json:"room_id"`
	Room       Room     `gorm:"foreignKey:RoomID" json:"room"`
	PolicyID   uint     `gorm:"not null" json:"policy_id"`
	Policy     Policy   `gorm:"foreignKey:PolicyID" json:"policy"`

	StartDate time.Time `gorm:"not null;index" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`

	PaymentStatus string     `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"` // pending, paid, rejected
	PaymentAmount float64    `gorm:"type:decimal(12,2);not null" json:"payment_amount"`
	PaymentDate   *time.Time `json:"payment_date"`

	ReceiptIssued bool   `gorm:"not null;default:false" json:"receipt_issued"`
	ReceiptPath   string `gorm:"type:varchar(255)" json:"receipt_path"`

	RefundStatus string  `gorm:"type:varchar(20);not null;default:'none'" json:"refund_status"` // none, requested, approved, rejected
	RefundAmount float64 `gorm:"type:decimal(12,2)" json:"refund_amount"`
	RefundReason string  `gorm:"type:text" json:"refund_reason"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
