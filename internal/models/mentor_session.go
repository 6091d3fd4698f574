package models

import "time"

type MentorSession struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MentorID uint    `gorm:"index" json:"mentor_id"`
	Mentor   Profile `gorm:"foreignKey:MentorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"mentor"`

	MenteeID uint    `gorm:"index" json:"mentee_id"`
	Mentee   Profile `gorm:"foreignKey:MenteeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"mentee"`

	// At most one session may ever claim a slot.
	SlotID uint `gorm:"uniqueIndex" json:"slot_id"`

	// Snapshot of the session type at booking time. The mentor may edit or
	// delete the type later without rewriting history.
	SessionTypeID      uint   `json:"session_type_id"`
	SessionTypeName    string `gorm:"size:100" json:"session_type_name"`
	SessionDurationMin int    `json:"session_duration_min"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Title        string `gorm:"size:100;not null" json:"title"`
	Description  string `gorm:"size:500" json:"description"`
	SessionNotes string `gorm:"size:2000" json:"session_notes"`
	SessionURL   string `gorm:"size:255" json:"session_url"`

	CancelledBy        *uint  `json:"cancelled_by"`
	CancellationReason string `gorm:"size:255" json:"cancellation_reason"`

	PaymentStatus    string  `gorm:"size:20;default:'pending'" json:"payment_status"`
	PaymentAmount    float64 `json:"payment_amount"`
	PaymentCurrency  string  `gorm:"size:10" json:"payment_currency"`
	PaymentProvider  string  `gorm:"size:20" json:"payment_provider"`
	PaymentReference string  `gorm:"size:100;index" json:"payment_reference"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
