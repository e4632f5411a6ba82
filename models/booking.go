package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is the header row. TotalAmount is stored denormalized: created
// at 0 and corrected once line items are known, never recomputed for
// storage afterwards. After creation only Status may change.
type Booking struct {
	ID          uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference   string        `gorm:"type:varchar(36);uniqueIndex" json:"reference"`
	BranchID    uint          `gorm:"index;not null" json:"branch_id"`
	Branch      *Branch       `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	CustomerID  uint          `gorm:"index;not null" json:"customer_id"`
	Customer    *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Status      BookingStatus `gorm:"type:varchar(20);not null" json:"status"`
	Date        string        `gorm:"type:varchar(10);not null" json:"date"`
	Notes       *string       `json:"notes"`
	TotalAmount float64       `gorm:"type:decimal(10,2);default:0" json:"total_amount"`

	Items []BookingItem `gorm:"foreignKey:BookingID" json:"items,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.Reference == "" {
		b.Reference = uuid.NewString()
	}
	return
}

// BookingItem is one line of a booking. The snapshot columns are copied
// from the price list at booking time and are immutable: later changes to
// the service or its pricing never alter historical bookings.
type BookingItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingID uint `gorm:"index;not null" json:"booking_id"`
	ServiceID uint `gorm:"index;not null" json:"service_id"`

	ServiceNameSnapshot string  `gorm:"column:service_name_snapshot;not null" json:"service_name_snapshot"`
	PriceAmountSnapshot float64 `gorm:"column:price_amount_snapshot;type:decimal(10,2);not null" json:"price_amount_snapshot"`
	CurrencySnapshot    string  `gorm:"column:currency_snapshot;type:varchar(3);not null" json:"currency_snapshot"`
	DurationMinSnapshot int     `gorm:"column:duration_min_snapshot;not null" json:"duration_min_snapshot"`

	Quantity  int       `gorm:"default:1;not null" json:"quantity"`
	SortOrder int       `gorm:"not null" json:"sort_order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
