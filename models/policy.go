package models

import "time"

// Policy defines the cancellation terms attached to a reservation.
// CancellationHours is the number of hours before check-in after which
// cancellation/refund is disallowed (advisory, see refund service).
type Policy struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"type:varchar(255);not null" json:"name"`
	CancellationHours int       `gorm:"not null" json:"cancellation_hours"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
