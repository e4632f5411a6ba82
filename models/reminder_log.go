package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderLog records one reminder delivery attempt for a booking.
type ReminderLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BookingID    uint      `gorm:"index;not null" json:"booking_id"`
	Channel      string    `gorm:"type:varchar(20)" json:"channel"` // sms, email
	Status       string    `gorm:"type:varchar(20)" json:"status"`  // sent, failed
	ErrorMessage string    `gorm:"type:text" json:"error_message"`
	SentAt       time.Time `json:"sent_at"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	r.ID = uuid.New()
	return
}
