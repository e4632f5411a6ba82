// services/customer.go
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"joyaspa-backend/models"
)

// CustomerInput carries the customer block of a booking request.
type CustomerInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone" binding:"required"`
	Email       string `json:"email"`
	Gender      string `json:"gender"`
	Nationality string `json:"nationality"`
}

// RegisteredCustomer is the outcome of a registration. Created records
// whether a new row was inserted, which is what decides if a compensating
// rollback may delete it.
type RegisteredCustomer struct {
	ID      uint
	Email   *string
	Name    string
	Created bool
}

// nullableString stores blank optional fields as absent, not as empty strings.
func nullableString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// RegisterCustomer upserts a customer by exact phone match: an existing
// row gets its mutable fields refreshed (phone untouched), otherwise a new
// row is inserted. Storage errors propagate verbatim; no retries.
func RegisterCustomer(db *gorm.DB, input CustomerInput) (*RegisteredCustomer, error) {
	var existing models.Customer
	err := db.Where("phone = ?", input.Phone).First(&existing).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer := models.Customer{
			FirstName:   input.FirstName,
			LastName:    input.LastName,
			Phone:       input.Phone,
			Email:       nullableString(input.Email),
			Gender:      nullableString(input.Gender),
			Nationality: nullableString(input.Nationality),
		}
		if err := db.Create(&customer).Error; err != nil {
			return nil, err
		}
		return &RegisteredCustomer{
			ID:      customer.ID,
			Email:   customer.Email,
			Name:    customerDisplayName(customer.FirstName, customer.LastName),
			Created: true,
		}, nil
	}

	// Blank name parts mean "not provided" on a repeat registration and
	// never overwrite the stored name.
	updates := map[string]interface{}{
		"email":       nullableString(input.Email),
		"gender":      nullableString(input.Gender),
		"nationality": nullableString(input.Nationality),
	}
	first, last := existing.FirstName, existing.LastName
	if strings.TrimSpace(input.FirstName) != "" {
		first = input.FirstName
		updates["first_name"] = input.FirstName
	}
	if strings.TrimSpace(input.LastName) != "" {
		last = input.LastName
		updates["last_name"] = input.LastName
	}
	if err := db.Model(&models.Customer{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &RegisteredCustomer{
		ID:      existing.ID,
		Email:   nullableString(input.Email),
		Name:    customerDisplayName(first, last),
		Created: false,
	}, nil
}

// RollbackCustomer is the compensating action for callers that register a
// customer outside a surrounding transaction: it deletes the row only when
// this registration inserted it, so pre-existing customers survive a
// failed booking.
func RollbackCustomer(db *gorm.DB, rc *RegisteredCustomer) error {
	if rc == nil || !rc.Created {
		return nil
	}
	return db.Delete(&models.Customer{}, rc.ID).Error
}

func customerDisplayName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
