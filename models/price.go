package models

import "time"

type Price struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Category  string    `gorm:"type:varchar(100);unique;not null" json:"category"`
	Amount    float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
