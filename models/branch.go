package models

import "time"

// Branch is a spa location. Each branch owns at most one hotel profile,
// deleted together with the branch when nothing else references it.
type Branch struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Slug        string  `gorm:"uniqueIndex;not null" json:"slug"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Country     *string `json:"country"`
	City        *string `json:"city"`
	Region      *string `json:"region"`
	Description *string `json:"description"`
	ImageURL1   *string `gorm:"column:image_url_1" json:"image_url_1"`
	ImageURL2   *string `gorm:"column:image_url_2" json:"image_url_2"`
	ImageURL3   *string `gorm:"column:image_url_3" json:"image_url_3"`
	ImageURL4   *string `gorm:"column:image_url_4" json:"image_url_4"`
	ImageURL5   *string `gorm:"column:image_url_5" json:"image_url_5"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`

	HotelID *uint  `gorm:"index" json:"hotel_id"`
	Hotel   *Hotel `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

// Hotel is the lodging profile owned 1:1 by a branch.
type Hotel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ImageURL1   *string   `gorm:"column:image_url_1" json:"image_url_1"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"-"`
}
