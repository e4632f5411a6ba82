// controllers/customer_booking.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"joyaspa-backend/config"
	"joyaspa-backend/services"
	"joyaspa-backend/utils"
)

// Notifier delivers booking confirmations; wired once at startup. A nil
// notifier disables email without touching the booking flow.
var Notifier services.BookingNotifier

// CreateCustomerBooking is the public booking intake endpoint.
func CreateCustomerBooking(c *gin.Context) {
	var input services.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking data")
		return
	}

	result, err := services.CreateBooking(config.DB, Notifier, input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"booking_id":  result.BookingID,
		"reference":   result.Reference,
		"items":       result.Items,
		"grand_total": result.GrandTotal,
	})
}
