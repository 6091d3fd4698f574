package models

import "time"

type Profile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:100" json:"-"`

	Bio      string `gorm:"size:500" json:"bio"`
	IsMentor bool   `gorm:"default:false" json:"is_mentor"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
