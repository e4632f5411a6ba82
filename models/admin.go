package models

import (
	"time"

	"gorm.io/gorm"

	"joyaspa-backend/utils"
)

// Admin is a back-office principal. Passwords are bcrypt-hashed in the
// BeforeCreate hook.
type Admin struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) (err error) {
	hashed, err := utils.HashPassword(a.Password)
	if err != nil {
		return err
	}
	a.Password = hashed
	return
}
