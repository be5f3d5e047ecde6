package models

import "time"

// Receipt is the one-time proof-of-payment artifact tied 1:1 to a paid
// reservation. FilePath points at the rendered PDF in the content dir;
// ReceiptNumber is the join key back to it.
type Receipt struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	ReservationID uint        `gorm:"unique;not null" json:"reservation_id"`
	Reservation   Reservation `gorm:"foreignKey:ReservationID" json:"reservation"`
	ReceiptNumber string      `gorm:"type:varchar(100);unique;not null" json:"receipt_number"`
	FilePath      string      `gorm:"type:varchar(255);not null" json:"file_path"`
	IssuedDate    time.Time   `gorm:"not null" json:"issued_date"`
	IssuedBy      uint        `json:"issued_by"`
	EmailSent     bool        `gorm:"not null;default:false" json:"email_sent"`
	EmailSentDate *time.Time  `json:"email_sent_date"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}
