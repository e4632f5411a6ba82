// services/booking.go
package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"joyaspa-backend/models"
	"joyaspa-backend/utils"
)

// ServiceRequest is one requested line of a booking.
type ServiceRequest struct {
	ServiceID uint `json:"service_id"`
	Quantity  int  `json:"quantity"`
}

// CreateBookingInput is the full booking intake payload.
type CreateBookingInput struct {
	BranchID uint             `json:"branch_id"`
	Date     string           `json:"date"`
	Services []ServiceRequest `json:"services"`
	Customer CustomerInput    `json:"customer"`
	Notes    string           `json:"notes"`
}

// LineBreakdown is the per-line response entry.
type LineBreakdown struct {
	ServiceName string  `json:"service_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	ItemTotal   float64 `json:"item_total"`
	Currency    string  `json:"currency"`
}

// BookingResult is returned to the caller after a successful booking.
type BookingResult struct {
	BookingID  uint
	Reference  string
	Items      []LineBreakdown
	GrandTotal float64
	Currency   string
}

// ValidateBookingInput checks the request shape. It runs before any
// storage access so malformed requests never touch the database.
func ValidateBookingInput(input CreateBookingInput) error {
	if input.BranchID == 0 || input.Date == "" || len(input.Services) == 0 {
		return utils.NewValidationError("Invalid booking data")
	}
	for _, s := range input.Services {
		if s.ServiceID == 0 || s.Quantity < 1 {
			return utils.NewValidationError("Each service must have a valid service_id and quantity (>= 1)")
		}
	}
	if input.Customer.Phone == "" {
		return utils.NewValidationError("Customer phone is required")
	}
	return nil
}

// CreateBooking runs the whole intake workflow: register the customer,
// resolve pricing against the branch, persist the booking header with its
// snapshot line items, and correct the stored total. All writes share one
// transaction, so a failure at any step leaves no partial state behind:
// no orphan customer, header, or items. Repeated service ids in one
// request stay separate sort-ordered lines; the read model re-aggregates
// them on display.
//
// The confirmation email is dispatched after commit and is best-effort: a
// notifier failure is logged and never fails the booking.
func CreateBooking(db *gorm.DB, notifier BookingNotifier, input CreateBookingInput) (*BookingResult, error) {
	if err := ValidateBookingInput(input); err != nil {
		return nil, err
	}

	serviceIDs := make([]uint, 0, len(input.Services))
	for _, s := range input.Services {
		serviceIDs = append(serviceIDs, s.ServiceID)
	}

	var (
		result     BookingResult
		branchName string
		registered *RegisteredCustomer
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		var branch models.Branch
		if err := tx.Select("id", "name").First(&branch, input.BranchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFoundError("Branch not found")
			}
			return err
		}
		branchName = branch.Name

		rc, err := RegisterCustomer(tx, input.Customer)
		if err != nil {
			return err
		}
		registered = rc

		resolved, err := ResolveBranchPricing(tx, input.BranchID, serviceIDs)
		if err != nil {
			return err
		}
		priceByService := make(map[uint]ResolvedPrice, len(resolved))
		for _, p := range resolved {
			priceByService[p.ServiceID] = p
		}

		booking := models.Booking{
			BranchID:    input.BranchID,
			CustomerID:  rc.ID,
			Status:      models.BookingStatusConfirmed,
			Date:        input.Date,
			Notes:       nullableString(input.Notes),
			TotalAmount: 0,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		var grandTotal float64
		items := make([]models.BookingItem, 0, len(input.Services))
		breakdown := make([]LineBreakdown, 0, len(input.Services))

		for i, req := range input.Services {
			p := priceByService[req.ServiceID]
			itemTotal := p.PriceAmount * float64(req.Quantity)
			grandTotal += itemTotal

			items = append(items, models.BookingItem{
				BookingID:           booking.ID,
				ServiceID:           req.ServiceID,
				ServiceNameSnapshot: p.ServiceName,
				PriceAmountSnapshot: p.PriceAmount,
				CurrencySnapshot:    p.Currency,
				DurationMinSnapshot: p.DurationMin,
				Quantity:            req.Quantity,
				SortOrder:           i + 1,
			})
			breakdown = append(breakdown, LineBreakdown{
				ServiceName: p.ServiceName,
				UnitPrice:   p.PriceAmount,
				Quantity:    req.Quantity,
				ItemTotal:   itemTotal,
				Currency:    p.Currency,
			})
		}

		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Booking{}).Where("id = ?", booking.ID).
			Update("total_amount", grandTotal).Error; err != nil {
			return err
		}

		result = BookingResult{
			BookingID:  booking.ID,
			Reference:  booking.Reference,
			Items:      breakdown,
			GrandTotal: grandTotal,
			Currency:   breakdown[0].Currency,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if notifier != nil && registered.Email != nil {
		payload := BookingNotification{
			BookingID:  result.BookingID,
			Date:       input.Date,
			BranchName: branchName,
			Notes:      input.Notes,
			Customer:   NotificationCustomer{Name: registered.Name, Email: *registered.Email},
			Items:      result.Items,
			GrandTotal: result.GrandTotal,
			Currency:   result.Currency,
		}
		go func() {
			if err := notifier.SendBookingConfirmation(payload); err != nil {
				log.Printf("booking %d: confirmation email failed: %v", result.BookingID, err)
			}
		}()
	}

	return &result, nil
}

// UpdateBookingStatus moves a booking through the status state machine.
// Unknown targets are validation errors, illegal transitions are conflicts
// naming both states, and only the status column is written.
func UpdateBookingStatus(db *gorm.DB, bookingID uint, target models.BookingStatus) (*models.Booking, error) {
	if !target.IsValid() {
		return nil, utils.NewValidationError("Invalid status")
	}

	var booking models.Booking
	if err := db.Select("id", "status").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Booking not found")
		}
		return nil, err
	}

	if !booking.Status.CanTransitionTo(target) {
		return nil, utils.NewConflictError(
			fmt.Sprintf("Invalid status transition from %s to %s", booking.Status, target))
	}

	if err := db.Model(&models.Booking{}).Where("id = ?", bookingID).
		Update("status", target).Error; err != nil {
		return nil, err
	}

	booking.Status = target
	return &booking, nil
}
