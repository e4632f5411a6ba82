package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joyaspa-backend/models"
	"joyaspa-backend/utils"
)

func TestGetBookingDetailAggregatesItems(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "Downtown")
	massage := seedService(t, db, "Swedish Massage")
	facial := seedService(t, db, "Facial")
	seedPricing(t, db, branch.ID, massage.ID, 100, 30)
	seedPricing(t, db, branch.ID, facial.ID, 50, 45)

	result, err := CreateBooking(db, nil, CreateBookingInput{
		BranchID: branch.ID,
		Date:     "2026-09-15",
		Services: []ServiceRequest{
			{ServiceID: massage.ID, Quantity: 1},
			{ServiceID: facial.ID, Quantity: 1},
			{ServiceID: massage.ID, Quantity: 1},
		},
		Customer: validCustomer(),
		Notes:    "window seat please",
	})
	require.NoError(t, err)

	detail, err := GetBookingDetail(db, result.BookingID)
	require.NoError(t, err)

	assert.Equal(t, result.Reference, detail.Reference)
	assert.Equal(t, models.BookingStatusConfirmed, detail.Status)
	assert.Equal(t, branch.Name, detail.Branch.Name)
	assert.Equal(t, "Layla Hassan", detail.Customer.Name)
	require.NotNil(t, detail.Notes)
	assert.Equal(t, "window seat please", *detail.Notes)

	// Three item rows fold into two services, first-seen order preserved.
	require.Len(t, detail.Services, 2)
	assert.Equal(t, massage.ID, detail.Services[0].ServiceID)
	assert.Equal(t, 2, detail.Services[0].Quantity)
	assert.Equal(t, 200.0, detail.Services[0].TotalPrice)
	assert.Equal(t, 60, detail.Services[0].TotalDurationMin)
	assert.Equal(t, facial.ID, detail.Services[1].ServiceID)

	assert.Equal(t, 3, detail.Totals.ItemsCount)
	assert.Equal(t, 105, detail.Totals.TotalDurationMin)
	assert.Equal(t, 250.0, detail.Totals.TotalAmount)
}

func TestGetBookingDetailMissing(t *testing.T) {
	db := newTestDB(t)

	_, err := GetBookingDetail(db, 77)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestListBookingsPaginatesAndEnriches(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "Downtown")
	massage := seedService(t, db, "Swedish Massage")
	seedPricing(t, db, branch.ID, massage.ID, 100, 30)

	for i := 0; i < 25; i++ {
		_, err := CreateBooking(db, nil, CreateBookingInput{
			BranchID: branch.ID,
			Date:     fmt.Sprintf("2026-09-%02d", i%28+1),
			Services: []ServiceRequest{{ServiceID: massage.ID, Quantity: 1}},
			Customer: CustomerInput{FirstName: "Guest", Phone: fmt.Sprintf("+2010000000%02d", i)},
		})
		require.NoError(t, err)
	}

	page := utils.Pagination{Page: 2, Limit: 10, SortBy: "id", Ascending: true}
	summaries, total, err := ListBookings(db, BookingFilters{}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	require.Len(t, summaries, 10)
	assert.EqualValues(t, 11, summaries[0].ID)

	for _, s := range summaries {
		assert.Equal(t, 1, s.ItemsCount)
		assert.Equal(t, 30, s.TotalDuration)
		assert.Equal(t, branch.Name, s.Branch.Name)
		assert.NotEmpty(t, s.Customer.Phone)
	}
}

func TestListBookingsFilters(t *testing.T) {
	db := newTestDB(t)
	downtown := seedBranch(t, db, "Downtown")
	marina := seedBranch(t, db, "Marina")
	massage := seedService(t, db, "Swedish Massage")
	seedPricing(t, db, downtown.ID, massage.ID, 100, 30)
	seedPricing(t, db, marina.ID, massage.ID, 120, 30)

	mkBooking := func(branchID uint, date, phone string) *BookingResult {
		result, err := CreateBooking(db, nil, CreateBookingInput{
			BranchID: branchID,
			Date:     date,
			Services: []ServiceRequest{{ServiceID: massage.ID, Quantity: 1}},
			Customer: CustomerInput{FirstName: "Guest", Phone: phone},
		})
		require.NoError(t, err)
		return result
	}

	mkBooking(downtown.ID, "2026-09-01", "+201000000001")
	mkBooking(marina.ID, "2026-09-10", "+201000000002")
	cancelled := mkBooking(downtown.ID, "2026-09-20", "+201000000003")
	_, err := UpdateBookingStatus(db, cancelled.BookingID, models.BookingStatusCancelled)
	require.NoError(t, err)

	page := utils.Pagination{Page: 1, Limit: 10, SortBy: "id", Ascending: true}

	byBranch, total, err := ListBookings(db, BookingFilters{BranchID: downtown.ID}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, byBranch, 2)

	byStatus, total, err := ListBookings(db, BookingFilters{Status: models.BookingStatusCancelled}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, cancelled.BookingID, byStatus[0].ID)

	byDate, total, err := ListBookings(db, BookingFilters{From: "2026-09-05", To: "2026-09-15"}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "2026-09-10", byDate[0].Date)

	_, _, err = ListBookings(db, BookingFilters{Status: "archived"}, page)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestRecentBookingsClampsLimit(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "Downtown")
	massage := seedService(t, db, "Swedish Massage")
	seedPricing(t, db, branch.ID, massage.ID, 100, 30)

	for i := 0; i < 5; i++ {
		_, err := CreateBooking(db, nil, CreateBookingInput{
			BranchID: branch.ID,
			Date:     "2026-09-01",
			Services: []ServiceRequest{{ServiceID: massage.ID, Quantity: 1}},
			Customer: CustomerInput{FirstName: "Guest", Phone: fmt.Sprintf("+20100000010%d", i)},
		})
		require.NoError(t, err)
	}

	recent, err := RecentBookings(db, 3)
	require.NoError(t, err)
	assert.Len(t, recent, 3)

	recent, err = RecentBookings(db, -1)
	require.NoError(t, err)
	assert.Len(t, recent, 5)

	recent, err = RecentBookings(db, 500)
	require.NoError(t, err)
	assert.Len(t, recent, 5)
}
