package models

import "time"

// Customer is created or updated during booking intake. Phone is the soft
// identity key for the upsert-by-phone flow; no uniqueness is enforced.
type Customer struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `gorm:"index;not null" json:"phone"`
	Email       *string   `json:"email"`
	Gender      *string   `json:"gender"`
	Nationality *string   `json:"nationality"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}
