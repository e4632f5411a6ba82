package models

import "time"

// Service is a catalog entry. It carries no price of its own: price is
// branch-scoped through BranchServicePricing.
type Service struct {
	ID                 uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID         uint             `gorm:"index;not null" json:"category_id"`
	Category           *ServiceCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name               string           `gorm:"not null" json:"name"`
	Description        *string          `json:"description"`
	DefaultDurationMin *int             `gorm:"column:default_duration_min" json:"default_duration_min"`
	ImageURL1          *string          `gorm:"column:image_url_1" json:"image_url_1"`
	ImageURL2          *string          `gorm:"column:image_url_2" json:"image_url_2"`
	ImageURL3          *string          `gorm:"column:image_url_3" json:"image_url_3"`
	ImageURL4          *string          `gorm:"column:image_url_4" json:"image_url_4"`
	IsActive           bool             `gorm:"default:true" json:"is_active"`
	CreatedAt          time.Time        `gorm:"autoCreateTime" json:"created_at"`
}
