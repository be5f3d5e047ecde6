package models

import "time"

type Room struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"type:varchar(100);not null" json:"type"`
	Floor     int       `gorm:"not null" json:"floor"`
	Code      string    `gorm:"type:varchar(50);unique;not null" json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
