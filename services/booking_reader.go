// services/booking_reader.go
package services

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"joyaspa-backend/models"
	"joyaspa-backend/utils"
)

// AggregatedService is one deduplicated service line in a detail view.
// Repeated item rows for the same service are merged: quantities, line
// totals and durations sum, unit price reflects the last-seen row.
type AggregatedService struct {
	ServiceID        uint    `json:"service_id"`
	ServiceName      string  `json:"service_name"`
	Currency         string  `json:"currency"`
	Quantity         int     `json:"quantity"`
	UnitPrice        float64 `json:"unit_price"`
	TotalPrice       float64 `json:"total_price"`
	TotalDurationMin int     `json:"total_duration_min"`
}

// BookingTotals are booking-level rollups. TotalAmount is the stored
// header total, not recomputed from items.
type BookingTotals struct {
	ItemsCount       int     `json:"items_count"`
	TotalDurationMin int     `json:"total_duration_min"`
	TotalAmount      float64 `json:"total_amount"`
}

type BookingBranch struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type BookingCustomer struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Email       *string `json:"email"`
	Gender      *string `json:"gender"`
	Nationality *string `json:"nationality"`
}

// BookingDetail is the aggregated detail view of one booking.
type BookingDetail struct {
	ID        uint                `json:"id"`
	Reference string              `json:"reference"`
	Status    models.BookingStatus `json:"status"`
	Date      string              `json:"date"`
	Notes     *string             `json:"notes"`
	CreatedAt time.Time           `json:"created_at"`
	Branch    BookingBranch       `json:"branch"`
	Customer  BookingCustomer     `json:"customer"`
	Services  []AggregatedService `json:"services"`
	Totals    BookingTotals       `json:"totals"`
}

// GetBookingDetail loads a booking with branch, customer and items, then
// folds the items into the aggregated per-service view.
func GetBookingDetail(db *gorm.DB, id uint) (*BookingDetail, error) {
	var booking models.Booking
	err := db.Preload("Branch").Preload("Customer").
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("sort_order asc, id asc")
		}).
		First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Booking not found")
		}
		return nil, err
	}

	services, itemsCount, totalDuration := aggregateItems(booking.Items)

	detail := &BookingDetail{
		ID:        booking.ID,
		Reference: booking.Reference,
		Status:    booking.Status,
		Date:      booking.Date,
		Notes:     booking.Notes,
		CreatedAt: booking.CreatedAt,
		Services:  services,
		Totals: BookingTotals{
			ItemsCount:       itemsCount,
			TotalDurationMin: totalDuration,
			TotalAmount:      booking.TotalAmount,
		},
	}

	detail.Branch = BookingBranch{ID: booking.BranchID}
	if booking.Branch != nil {
		detail.Branch.Name = booking.Branch.Name
	}

	detail.Customer = BookingCustomer{ID: booking.CustomerID}
	if booking.Customer != nil {
		detail.Customer = BookingCustomer{
			ID:          booking.Customer.ID,
			Name:        customerDisplayName(booking.Customer.FirstName, booking.Customer.LastName),
			Phone:       booking.Customer.Phone,
			Email:       booking.Customer.Email,
			Gender:      booking.Customer.Gender,
			Nationality: booking.Customer.Nationality,
		}
	}

	return detail, nil
}

// aggregateItems groups item rows by service id, preserving first-seen
// order of the sorted input.
func aggregateItems(items []models.BookingItem) ([]AggregatedService, int, int) {
	byService := make(map[uint]*AggregatedService)
	order := make([]uint, 0, len(items))
	itemsCount := 0

	for _, it := range items {
		itemsCount += it.Quantity

		agg, ok := byService[it.ServiceID]
		if !ok {
			agg = &AggregatedService{
				ServiceID:   it.ServiceID,
				ServiceName: it.ServiceNameSnapshot,
				Currency:    it.CurrencySnapshot,
			}
			byService[it.ServiceID] = agg
			order = append(order, it.ServiceID)
		}

		agg.Quantity += it.Quantity
		agg.TotalPrice += it.PriceAmountSnapshot * float64(it.Quantity)
		agg.TotalDurationMin += it.DurationMinSnapshot * it.Quantity
		agg.UnitPrice = it.PriceAmountSnapshot
	}

	services := make([]AggregatedService, 0, len(order))
	totalDuration := 0
	for _, id := range order {
		services = append(services, *byService[id])
		totalDuration += byService[id].TotalDurationMin
	}

	return services, itemsCount, totalDuration
}

// BookingFilters narrow the admin list view.
type BookingFilters struct {
	BranchID uint
	Status   models.BookingStatus
	From     string
	To       string
}

// BookingSummary is one row of the admin list view.
type BookingSummary struct {
	ID            uint                 `json:"id"`
	Reference     string               `json:"reference"`
	BranchID      uint                 `json:"branch_id"`
	CustomerID    uint                 `json:"customer_id"`
	Status        models.BookingStatus `json:"status"`
	Date          string               `json:"date"`
	TotalAmount   float64              `json:"total_amount"`
	Notes         *string              `json:"notes"`
	CreatedAt     time.Time            `json:"created_at"`
	Branch        BookingBranch        `json:"branch"`
	Customer      ListCustomer         `json:"customer"`
	ItemsCount    int                  `json:"items_count"`
	TotalDuration int                  `json:"total_duration"`
}

type ListCustomer struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// ListBookings paginates bookings with filters and an allow-listed sort,
// then enriches the page with item counts and durations through one bulk
// query keyed by the page's booking ids.
func ListBookings(db *gorm.DB, filters BookingFilters, page utils.Pagination) ([]BookingSummary, int64, error) {
	if filters.Status != "" && !filters.Status.IsValid() {
		return nil, 0, utils.NewValidationError("Invalid status filter")
	}

	query := db.Model(&models.Booking{})
	if filters.BranchID != 0 {
		query = query.Where("branch_id = ?", filters.BranchID)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.From != "" {
		query = query.Where("date >= ?", filters.From)
	}
	if filters.To != "" {
		query = query.Where("date <= ?", filters.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []models.Booking
	err := query.Preload("Branch").Preload("Customer").
		Order(page.OrderClause()).
		Offset(page.Offset()).Limit(page.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}

	meta, err := itemsMetaForBookings(db, bookings)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]BookingSummary, 0, len(bookings))
	for _, b := range bookings {
		s := BookingSummary{
			ID:          b.ID,
			Reference:   b.Reference,
			BranchID:    b.BranchID,
			CustomerID:  b.CustomerID,
			Status:      b.Status,
			Date:        b.Date,
			TotalAmount: b.TotalAmount,
			Notes:       b.Notes,
			CreatedAt:   b.CreatedAt,
			Branch:      BookingBranch{ID: b.BranchID},
			Customer:    ListCustomer{ID: b.CustomerID},
		}
		if b.Branch != nil {
			s.Branch.Name = b.Branch.Name
		}
		if b.Customer != nil {
			s.Customer = ListCustomer{
				ID:        b.Customer.ID,
				FirstName: b.Customer.FirstName,
				LastName:  b.Customer.LastName,
				Phone:     b.Customer.Phone,
			}
		}
		if m, ok := meta[b.ID]; ok {
			s.ItemsCount = m.itemsCount
			s.TotalDuration = m.totalDuration
		}
		summaries = append(summaries, s)
	}

	return summaries, total, nil
}

type bookingItemsMeta struct {
	itemsCount    int
	totalDuration int
}

// itemsMetaForBookings fetches item rollups for a page of bookings in a
// single query, avoiding an N+1 per row.
func itemsMetaForBookings(db *gorm.DB, bookings []models.Booking) (map[uint]bookingItemsMeta, error) {
	meta := make(map[uint]bookingItemsMeta, len(bookings))
	if len(bookings) == 0 {
		return meta, nil
	}

	ids := make([]uint, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var rows []models.BookingItem
	err := db.Select("booking_id", "duration_min_snapshot").
		Where("booking_id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		m := meta[row.BookingID]
		m.itemsCount++
		m.totalDuration += row.DurationMinSnapshot
		meta[row.BookingID] = m
	}
	return meta, nil
}

// RecentBookings returns the newest bookings with the same item rollups
// as the list view, for the dashboard.
func RecentBookings(db *gorm.DB, limit int) ([]BookingSummary, error) {
	if limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	page := utils.Pagination{Page: 1, Limit: limit, SortBy: "created_at", Ascending: false}
	summaries, _, err := ListBookings(db, BookingFilters{}, page)
	return summaries, err
}
