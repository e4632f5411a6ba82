package models

import "time"

// BranchServicePricing is the price list: the only source of truth for
// whether a service is sellable at a branch and at what price. One row
// per (branch, service) pair.
type BranchServicePricing struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BranchID    uint      `gorm:"not null;uniqueIndex:idx_branch_service,priority:1" json:"branch_id"`
	ServiceID   uint      `gorm:"not null;uniqueIndex:idx_branch_service,priority:2" json:"service_id"`
	Branch      *Branch   `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Service     *Service  `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	PriceAmount float64   `gorm:"type:decimal(10,2);not null" json:"price_amount"`
	Currency    string    `gorm:"type:varchar(3);not null" json:"currency"`
	DurationMin int       `gorm:"not null" json:"duration_min"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (BranchServicePricing) TableName() string {
	return "branch_service_pricing"
}
