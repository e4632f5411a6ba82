package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joyaspa-backend/models"
	"joyaspa-backend/utils"
)

// stubNotifier records dispatched confirmations and can be told to fail.
type stubNotifier struct {
	sent chan BookingNotification
	err  error
}

func newStubNotifier(err error) *stubNotifier {
	return &stubNotifier{sent: make(chan BookingNotification, 1), err: err}
}

func (s *stubNotifier) SendBookingConfirmation(n BookingNotification) error {
	s.sent <- n
	return s.err
}

func (s *stubNotifier) wait(t *testing.T) BookingNotification {
	t.Helper()
	select {
	case n := <-s.sent:
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("no confirmation dispatched")
		return BookingNotification{}
	}
}

func validCustomer() CustomerInput {
	return CustomerInput{
		FirstName: "Layla",
		LastName:  "Hassan",
		Phone:     "+201001234567",
		Email:     "layla@example.com",
	}
}

func TestCreateBookingComputesSnapshotTotals(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "Downtown")
	massage := seedService(t, db, "Swedish Massage")
	facial := seedService(t, db, "Deep Cleansing Facial")
	seedPricing(t, db, branch.ID, massage.ID, 100, 30)
	seedPricing(t, db, branch.ID, facial.ID, 50, 45)

	result, err := CreateBooking(db, nil, CreateBookingInput{
		BranchID: branch.ID,
		Date:     "2026-09-15",
		Services: []ServiceRequest{
			{ServiceID: massage.ID, Quantity: 2},
			{ServiceID: facial.ID, Quantity: 1},
		},
		Customer: validCustomer(),
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 250.0, result.GrandTotal)
	assert.Equal(t, "USD", result.Currency)
	assert.NotEmpty(t, result.Reference)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Swedish Massage", result.Items[0].ServiceName)
	assert.Equal(t, 200.0, result.Items[0].ItemTotal)
	assert.Equal(t, 50.0, result.Items[1].ItemTotal)

	var stored models.Booking
	require.NoError(t, db.First(&stored, result.BookingID).Error)
	assert.Equal(t, models.BookingStatusConfirmed, stored.Status)
	assert.Equal(t, 250.0, stored.TotalAmount)

	detail, err := GetBookingDetail(db, result.BookingID)
	require.NoError(t, err)
	assert.Equal(t, 3, detail.Totals.ItemsCount)
	assert.Equal(t, 105, detail.Totals.TotalDurationMin)
}

func TestCreateBookingItemsKeepSortOrder(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "Marina")
	first := seedService(t, db, "Hot Stone")
	second := seedService(t, db, "Aromatherapy")
	seedPricing(t, db, branch.ID, first.ID, 80, 60)
	seedPricing(t, db, branch.ID, second.ID, 70, 50)

	result, err := CreateBooking(db, nil, CreateBookingInput{
		BranchID: branch.ID,
		Date:     "2026-09-20",
		Services: []ServiceRequest{
			{ServiceID: second.ID, Quantity: 1},
			{ServiceID: first.ID, Quantity: 1},
		},
		Customer: validCustomer(),
	})
	require.NoError(t, err)

	var items []models.BookingItem
	require.NoError(t, db.Where("booking_id = ?", result.BookingID).Order("sort_order asc").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].SortOrder)
	assert.Equal(t, second.ID, items[0].ServiceID)
	assert.Equal(t, 2, items[1].SortOrder)
	assert.Equal(t, first.ID, items[1].ServiceID)
}

func TestCreateBookingDuplicateServiceStaysSeparateLines(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "Palm")
	massage := seedService(t, db, "Thai Massage")
	seedPricing(t, db, branch.ID, massage.ID, 60, 45)

	result, err := CreateBooking(db, nil, CreateBookingInput{
		BranchID: branch.ID,
		Date:     "2026-10-01",
		Services: []ServiceRequest{
			{ServiceID: massage.ID, Quantity: 1},
			{ServiceID: massage.ID, Quantity: 2},
		},
		Customer: validCustomer(),
	})
	require.NoError(t, err)
	assert.Equal(t, 180.0, result.GrandTotal)

	var items []models.BookingItem
	require.NoError(t, db.Where("booking_id = ?", result.BookingID).Order("sort_order asc").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 2, items[1].Quantity)

	// The read model folds the duplicate lines back into one service.
	detail, err := GetBookingDetail(db, result.BookingID)
	require.NoError(t, err)
	require.Len(t, detail.Services, 1)
	assert.Equal(t, 3, detail.Services[0].Quantity)
	assert.Equal(t, 180.0, detail.Services[0].TotalPrice)
}

func TestCreateBookingUnavailableServiceLeavesNothingBehind(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "Oasis")
	massage := seedService(t, db, "Swedish Massage")
	seedPricing(t, db, branch.ID, massage.ID, 100, 30)

	_, err := CreateBooking(db, nil, CreateBookingInput{
		BranchID: branch.ID,
		Date:     "2026-10-05",
		Services: []ServiceRequest{
			{ServiceID: massage.ID, Quantity: 1},
			{ServiceID: 99, Quantity: 1},
		},
		Customer: validCustomer(),
	})
	require.Error(t, err)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode)
	assert.Contains(t, appErr.Message, "not available for this branch")

	var bookings, items, customers int64
	db.Model(&models.Booking{}).Count(&bookings)
	db.Model(&models.BookingItem{}).Count(&items)
	db.Model(&models.Customer{}).Count(&customers)
	assert.Zero(t, bookings)
	assert.Zero(t, items)
	assert.Zero(t, customers)
}

func TestCreateBookingInactivePricingIsUnavailable(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "Cove")
	massage := seedService(t, db, "Swedish Massage")
	row := seedPricing(t, db, branch.ID, massage.ID, 100, 30)
	require.NoError(t, db.Model(&row).Update("is_active", false).Error)

	_, err := CreateBooking(db, nil, CreateBookingInput{
		BranchID: branch.ID,
		Date:     "2026-10-06",
		Services: []ServiceRequest{{ServiceID: massage.ID, Quantity: 1}},
		Customer: validCustomer(),
	})
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestCreateBookingUnknownBranch(t *testing.T) {
	db := newTestDB(t)

	_, err := CreateBooking(db, nil, CreateBookingInput{
		BranchID: 42,
		Date:     "2026-10-07",
		Services: []ServiceRequest{{ServiceID: 1, Quantity: 1}},
		Customer: validCustomer(),
	})
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)
	assert.Equal(t, "Branch not found", appErr.Message)
}

func TestCreateBookingSnapshotsSurviveCatalogChanges(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "Heights")
	massage := seedService(t, db, "Swedish Massage")
	pricing := seedPricing(t, db, branch.ID, massage.ID, 100, 30)

	result, err := CreateBooking(db, nil, CreateBookingInput{
		BranchID: branch.ID,
		Date:     "2026-10-10",
		Services: []ServiceRequest{{ServiceID: massage.ID, Quantity: 1}},
		Customer: validCustomer(),
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Service{}).Where("id = ?", massage.ID).Update("name", "Renamed Massage").Error)
	require.NoError(t, db.Model(&pricing).Updates(map[string]interface{}{"price_amount": 999, "duration_min": 5}).Error)

	detail, err := GetBookingDetail(db, result.BookingID)
	require.NoError(t, err)
	require.Len(t, detail.Services, 1)
	assert.Equal(t, "Swedish Massage", detail.Services[0].ServiceName)
	assert.Equal(t, 100.0, detail.Services[0].UnitPrice)
	assert.Equal(t, 30, detail.Services[0].TotalDurationMin)
	assert.Equal(t, 100.0, detail.Totals.TotalAmount)
}

func TestCreateBookingDispatchesConfirmation(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "Lagoon")
	massage := seedService(t, db, "Swedish Massage")
	seedPricing(t, db, branch.ID, massage.ID, 100, 30)

	notifier := newStubNotifier(nil)
	result, err := CreateBooking(db, notifier, CreateBookingInput{
		BranchID: branch.ID,
		Date:     "2026-10-12",
		Services: []ServiceRequest{{ServiceID: massage.ID, Quantity: 2}},
		Customer: validCustomer(),
		Notes:    "sea view",
	})
	require.NoError(t, err)

	n := notifier.wait(t)
	assert.Equal(t, result.BookingID, n.BookingID)
	assert.Equal(t, "Lagoon", n.BranchName)
	assert.Equal(t, "layla@example.com", n.Customer.Email)
	assert.Equal(t, 200.0, n.GrandTotal)
	require.Len(t, n.Items, 1)
	assert.Equal(t, "Swedish Massage", n.Items[0].ServiceName)
	assert.Equal(t, 2, n.Items[0].Quantity)
}

func TestCreateBookingNotifierFailureNeverFailsBooking(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "Lagoon")
	massage := seedService(t, db, "Swedish Massage")
	seedPricing(t, db, branch.ID, massage.ID, 100, 30)

	notifier := newStubNotifier(errors.New("smtp: connection refused"))
	result, err := CreateBooking(db, notifier, CreateBookingInput{
		BranchID: branch.ID,
		Date:     "2026-10-13",
		Services: []ServiceRequest{{ServiceID: massage.ID, Quantity: 1}},
		Customer: validCustomer(),
	})
	require.NoError(t, err)
	notifier.wait(t)

	// The booking and its items stay committed.
	var stored models.Booking
	require.NoError(t, db.Preload("Items").First(&stored, result.BookingID).Error)
	assert.Equal(t, models.BookingStatusConfirmed, stored.Status)
	assert.Equal(t, 100.0, stored.TotalAmount)
	assert.Len(t, stored.Items, 1)
}

func TestCreateBookingSkipsConfirmationWithoutEmail(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "Lagoon")
	massage := seedService(t, db, "Swedish Massage")
	seedPricing(t, db, branch.ID, massage.ID, 100, 30)

	notifier := newStubNotifier(nil)
	customer := validCustomer()
	customer.Email = ""
	_, err := CreateBooking(db, notifier, CreateBookingInput{
		BranchID: branch.ID,
		Date:     "2026-10-14",
		Services: []ServiceRequest{{ServiceID: massage.ID, Quantity: 1}},
		Customer: customer,
	})
	require.NoError(t, err)

	select {
	case <-notifier.sent:
		t.Fatal("confirmation dispatched without a recipient email")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestValidateBookingInputRejectsBadShapes(t *testing.T) {
	valid := CreateBookingInput{
		BranchID: 1,
		Date:     "2026-09-15",
		Services: []ServiceRequest{{ServiceID: 1, Quantity: 1}},
		Customer: validCustomer(),
	}

	cases := []struct {
		name    string
		mutate  func(*CreateBookingInput)
		message string
	}{
		{"missing branch", func(in *CreateBookingInput) { in.BranchID = 0 }, "Invalid booking data"},
		{"missing date", func(in *CreateBookingInput) { in.Date = "" }, "Invalid booking data"},
		{"empty services", func(in *CreateBookingInput) { in.Services = nil }, "Invalid booking data"},
		{"zero quantity", func(in *CreateBookingInput) { in.Services[0].Quantity = 0 }, "quantity"},
		{"negative quantity", func(in *CreateBookingInput) { in.Services[0].Quantity = -1 }, "quantity"},
		{"zero service id", func(in *CreateBookingInput) { in.Services[0].ServiceID = 0 }, "service_id"},
		{"missing phone", func(in *CreateBookingInput) { in.Customer.Phone = "" }, "phone is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			input.Services = append([]ServiceRequest{}, valid.Services...)
			tc.mutate(&input)

			err := ValidateBookingInput(input)
			var appErr *utils.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, 400, appErr.StatusCode)
			assert.Contains(t, appErr.Message, tc.message)
		})
	}

	assert.NoError(t, ValidateBookingInput(valid))

	// Local formats with a leading zero are accepted at intake; only
	// presence is required.
	local := valid
	local.Customer.Phone = "0101234567"
	assert.NoError(t, ValidateBookingInput(local))
}

func TestUpdateBookingStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "Bay")
	massage := seedService(t, db, "Swedish Massage")
	seedPricing(t, db, branch.ID, massage.ID, 100, 30)

	newBooking := func(status models.BookingStatus) models.Booking {
		booking := models.Booking{
			BranchID:   branch.ID,
			CustomerID: 1,
			Status:     status,
			Date:       "2026-11-01",
		}
		require.NoError(t, db.Create(&booking).Error)
		return booking
	}

	t.Run("pending to confirmed", func(t *testing.T) {
		booking := newBooking(models.BookingStatusPending)
		updated, err := UpdateBookingStatus(db, booking.ID, models.BookingStatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusConfirmed, updated.Status)
	})

	t.Run("confirmed to completed", func(t *testing.T) {
		booking := newBooking(models.BookingStatusConfirmed)
		updated, err := UpdateBookingStatus(db, booking.ID, models.BookingStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCompleted, updated.Status)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		booking := newBooking(models.BookingStatusCompleted)
		_, err := UpdateBookingStatus(db, booking.ID, models.BookingStatusCancelled)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.StatusCode)
		assert.Contains(t, appErr.Message, "completed")
		assert.Contains(t, appErr.Message, "cancelled")
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		booking := newBooking(models.BookingStatusCancelled)
		_, err := UpdateBookingStatus(db, booking.ID, models.BookingStatusConfirmed)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.StatusCode)
	})

	t.Run("unknown target is a validation error", func(t *testing.T) {
		booking := newBooking(models.BookingStatusPending)
		_, err := UpdateBookingStatus(db, booking.ID, "archived")
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.StatusCode)
	})

	t.Run("missing booking", func(t *testing.T) {
		_, err := UpdateBookingStatus(db, 9999, models.BookingStatusConfirmed)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.StatusCode)
	})

	t.Run("only the status column changes", func(t *testing.T) {
		booking := newBooking(models.BookingStatusConfirmed)
		require.NoError(t, db.Model(&booking).Update("total_amount", 123.45).Error)

		_, err := UpdateBookingStatus(db, booking.ID, models.BookingStatusCompleted)
		require.NoError(t, err)

		var stored models.Booking
		require.NoError(t, db.First(&stored, booking.ID).Error)
		assert.Equal(t, 123.45, stored.TotalAmount)
		assert.Equal(t, "2026-11-01", stored.Date)
	})
}
