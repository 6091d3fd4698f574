package models

import "time"

type SessionType struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	MentorID uint `gorm:"index" json:"mentor_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
	Currency    string  `gorm:"size:10;default:'INR'" json:"currency"`
	IsFree      bool    `gorm:"default:false" json:"is_free"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
