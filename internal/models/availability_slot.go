package models

import "time"

type AvailabilitySlot struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	MentorID uint `gorm:"index" json:"mentor_id"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Booked bool `gorm:"default:false" json:"booked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
