// controllers/dashboard.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/now"

	"joyaspa-backend/config"
	"joyaspa-backend/models"
	"joyaspa-backend/services"
	"joyaspa-backend/utils"
)

// GetStatistics returns the headline admin dashboard numbers. Booking counts
// and revenue honor the optional branch_id, service_id, from and to filters;
// from/to default to the current month.
func GetStatistics(c *gin.Context) {
	var branchCount int64
	if err := config.DB.Model(&models.Branch{}).Count(&branchCount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch statistics")
		return
	}

	var activeServices, inactiveServices int64
	if err := config.DB.Model(&models.Service{}).Where("is_active = ?", true).Count(&activeServices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch statistics")
		return
	}
	if err := config.DB.Model(&models.Service{}).Where("is_active = ?", false).Count(&inactiveServices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch statistics")
		return
	}

	from := c.Query("from")
	to := c.Query("to")
	if from == "" && to == "" {
		from = now.BeginningOfMonth().Format("2006-01-02")
		to = now.EndOfMonth().Format("2006-01-02")
	}
	if from != "" {
		if _, err := time.Parse("2006-01-02", from); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "from must be a YYYY-MM-DD date")
			return
		}
	}
	if to != "" {
		if _, err := time.Parse("2006-01-02", to); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "to must be a YYYY-MM-DD date")
			return
		}
	}

	bookings := config.DB.Model(&models.Booking{})
	if raw := c.Query("branch_id"); raw != "" {
		branchID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "branch_id must be a number")
			return
		}
		bookings = bookings.Where("branch_id = ?", branchID)
	}
	if raw := c.Query("service_id"); raw != "" {
		serviceID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "service_id must be a number")
			return
		}
		var bookingIDs []uint
		err = config.DB.Model(&models.BookingItem{}).
			Where("service_id = ?", serviceID).
			Distinct("booking_id").
			Pluck("booking_id", &bookingIDs).Error
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch statistics")
			return
		}
		if len(bookingIDs) == 0 {
			bookingIDs = []uint{0}
		}
		bookings = bookings.Where("id IN ?", bookingIDs)
	}
	if from != "" {
		bookings = bookings.Where("date >= ?", from)
	}
	if to != "" {
		bookings = bookings.Where("date <= ?", to)
	}

	var bookingCount int64
	if err := bookings.Count(&bookingCount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch statistics")
		return
	}

	var totalRevenue float64
	err := bookings.Where("status <> ?", models.BookingStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch statistics")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"branches":          branchCount,
			"active_services":   activeServices,
			"inactive_services": inactiveServices,
			"bookings":          bookingCount,
			"total_revenue":     totalRevenue,
			"from":              from,
			"to":                to,
		},
	})
}

// GetRecentBookings returns the newest bookings for the dashboard feed.
func GetRecentBookings(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "limit must be a number")
			return
		}
		limit = parsed
	}

	recent, err := services.RecentBookings(config.DB, limit)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": recent})
}
