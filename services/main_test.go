package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"joyaspa-backend/models"
)

// newTestDB opens a fresh in-memory database with the full schema. The
// database is named after the test so pooled connections share it while
// tests stay isolated from each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Admin{},
		&models.Hotel{},
		&models.Branch{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.BranchServicePricing{},
		&models.Customer{},
		&models.Booking{},
		&models.BookingItem{},
		&models.ReminderLog{},
	)
	require.NoError(t, err)

	return db
}

// seedBranch inserts a branch and returns it.
func seedBranch(t *testing.T, db *gorm.DB, name string) models.Branch {
	t.Helper()
	branch := models.Branch{Name: name, Slug: name + "-slug", IsActive: true}
	require.NoError(t, db.Create(&branch).Error)
	return branch
}

// seedService inserts a category (if needed) plus a service.
func seedService(t *testing.T, db *gorm.DB, name string) models.Service {
	t.Helper()
	category := models.ServiceCategory{Name: "Massages", IsActive: true}
	require.NoError(t, db.FirstOrCreate(&category, models.ServiceCategory{Name: "Massages"}).Error)

	service := models.Service{CategoryID: category.ID, Name: name, IsActive: true}
	require.NoError(t, db.Create(&service).Error)
	return service
}

// seedPricing attaches an active price list row to a branch/service pair.
func seedPricing(t *testing.T, db *gorm.DB, branchID, serviceID uint, price float64, duration int) models.BranchServicePricing {
	t.Helper()
	row := models.BranchServicePricing{
		BranchID:    branchID,
		ServiceID:   serviceID,
		PriceAmount: price,
		Currency:    "USD",
		DurationMin: duration,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&row).Error)
	return row
}
