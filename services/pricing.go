// services/pricing.go
package services

import (
	"gorm.io/gorm"

	"joyaspa-backend/utils"
)

// ResolvedPrice is the snapshot a booking line is built from: the price
// list row joined with the service's current display name.
type ResolvedPrice struct {
	ServiceID   uint    `json:"service_id"`
	ServiceName string  `json:"service_name"`
	PriceAmount float64 `json:"price_amount"`
	Currency    string  `json:"currency"`
	DurationMin int     `json:"duration_min"`
}

// ResolveBranchPricing looks up the active price list rows for the given
// branch restricted to the requested service ids. Any missing or inactive
// row invalidates the whole batch: either every distinct service resolves
// or the call fails with an unavailable error. Read-only.
func ResolveBranchPricing(db *gorm.DB, branchID uint, serviceIDs []uint) ([]ResolvedPrice, error) {
	distinct := make(map[uint]struct{}, len(serviceIDs))
	for _, id := range serviceIDs {
		distinct[id] = struct{}{}
	}

	var resolved []ResolvedPrice
	err := db.Table("branch_service_pricing").
		Select("branch_service_pricing.service_id, services.name AS service_name, branch_service_pricing.price_amount, branch_service_pricing.currency, branch_service_pricing.duration_min").
		Joins("JOIN services ON services.id = branch_service_pricing.service_id").
		Where("branch_service_pricing.branch_id = ? AND branch_service_pricing.service_id IN ? AND branch_service_pricing.is_active = ?", branchID, serviceIDs, true).
		Scan(&resolved).Error
	if err != nil {
		return nil, err
	}

	if len(resolved) != len(distinct) {
		return nil, utils.NewUnavailableError("One or more services are not available for this branch")
	}

	return resolved, nil
}
