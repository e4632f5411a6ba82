// controllers/booking.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"joyaspa-backend/config"
	"joyaspa-backend/models"
	"joyaspa-backend/services"
	"joyaspa-backend/utils"
)

var bookingSortFields = utils.NewStringSet("created_at", "date", "total_amount", "id")

// GetBookings lists bookings for admins with filters, pagination and sort.
func GetBookings(c *gin.Context) {
	page := utils.ParsePagination(c, bookingSortFields, "created_at", false)

	filters := services.BookingFilters{
		Status: models.BookingStatus(c.Query("status")),
		From:   c.Query("from"),
		To:     c.Query("to"),
	}
	if raw := c.Query("branch_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "branch_id must be a number")
			return
		}
		filters.BranchID = uint(id)
	}

	bookings, total, err := services.ListBookings(config.DB, filters, page)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"page":    page.Page,
		"limit":   page.Limit,
		"total":   total,
		"data":    bookings,
	})
}

// GetBooking returns the aggregated detail view of one booking.
func GetBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking id")
		return
	}

	detail, err := services.GetBookingDetail(config.DB, uint(id))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": detail})
}

type UpdateBookingStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateBookingStatus applies a status transition to an existing booking.
func UpdateBookingStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking id")
		return
	}

	var input UpdateBookingStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "status is required")
		return
	}

	booking, err := services.UpdateBookingStatus(config.DB, uint(id), models.BookingStatus(input.Status))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"id": booking.ID, "status": booking.Status},
	})
}
