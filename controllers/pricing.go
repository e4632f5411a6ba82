// controllers/pricing.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"joyaspa-backend/config"
	"joyaspa-backend/models"
	"joyaspa-backend/utils"
)

var pricingSortFields = utils.NewStringSet("id", "created_at", "price_amount", "duration_min", "is_active", "branch_id", "service_id")

// allowedCurrencies is the injected currency allow-list for the price list.
var allowedCurrencies = utils.NewStringSet("EGP", "USD", "EUR", "SAR", "AED")

type CreatePricingInput struct {
	BranchID    uint     `json:"branch_id" binding:"required"`
	ServiceID   uint     `json:"service_id" binding:"required"`
	PriceAmount *float64 `json:"price_amount" binding:"required"`
	Currency    string   `json:"currency"`
	DurationMin *int     `json:"duration_min" binding:"required"`
	IsActive    *bool    `json:"is_active"`
}

type UpdatePricingInput struct {
	PriceAmount *float64 `json:"price_amount"`
	Currency    *string  `json:"currency"`
	DurationMin *int     `json:"duration_min"`
	IsActive    *bool    `json:"is_active"`
}

// GetPricings lists the price list with filters and pagination.
func GetPricings(c *gin.Context) {
	page := utils.ParsePagination(c, pricingSortFields, "created_at", false)

	query := config.DB.Model(&models.BranchServicePricing{})
	if raw := c.Query("branch_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "branch_id must be a number")
			return
		}
		query = query.Where("branch_id = ?", uint(id))
	}
	if raw := c.Query("service_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "service_id must be a number")
			return
		}
		query = query.Where("service_id = ?", uint(id))
	}
	if raw := c.Query("is_active"); raw != "" {
		query = query.Where("is_active = ?", raw == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch branch service pricing")
		return
	}

	var pricings []models.BranchServicePricing
	err := query.Preload("Branch").Preload("Service").
		Order(page.OrderClause()).
		Offset(page.Offset()).Limit(page.Limit).
		Find(&pricings).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch branch service pricing")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"pagination": paginationEnvelope(page, total),
		"data":       gin.H{"pricings": pricings},
	})
}

// GetPricing retrieves one price list row.
func GetPricing(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pricing id")
		return
	}

	var pricing models.BranchServicePricing
	if err := config.DB.Preload("Branch").Preload("Service").First(&pricing, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pricing not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"pricing": pricing}})
}

// CreatePricing adds a price list row. One row per (branch, service):
// duplicates are rejected at creation and by the unique index.
func CreatePricing(c *gin.Context) {
	var input CreatePricingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "branch_id, service_id, price_amount and duration_min are required")
		return
	}

	if *input.PriceAmount < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "price_amount must be >= 0")
		return
	}
	if *input.DurationMin <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "duration_min must be > 0")
		return
	}

	currency := strings.ToUpper(input.Currency)
	if currency == "" {
		currency = "EGP"
	}
	if !allowedCurrencies.Contains(currency) {
		utils.RespondWithError(c, http.StatusBadRequest, "currency must be one of: EGP, USD, EUR, SAR, AED")
		return
	}

	var branch models.Branch
	if err := config.DB.First(&branch, input.BranchID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Branch not found")
		return
	}
	var service models.Service
	if err := config.DB.First(&service, input.ServiceID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	var existing models.BranchServicePricing
	err := config.DB.Where("branch_id = ? AND service_id = ?", input.BranchID, input.ServiceID).
		First(&existing).Error
	if err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Pricing already exists for this branch and service")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to validate pricing uniqueness")
		return
	}

	pricing := models.BranchServicePricing{
		BranchID:    input.BranchID,
		ServiceID:   input.ServiceID,
		PriceAmount: *input.PriceAmount,
		Currency:    currency,
		DurationMin: *input.DurationMin,
		IsActive:    true,
	}
	if input.IsActive != nil {
		pricing.IsActive = *input.IsActive
	}

	if err := config.DB.Create(&pricing).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create pricing")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": gin.H{"pricing": pricing}})
}

// UpdatePricing patches the provided fields only. Branch and service
// references are immutable; delete and recreate to move a row.
func UpdatePricing(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pricing id")
		return
	}

	var input UpdatePricingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if input.PriceAmount != nil {
		if *input.PriceAmount < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "price_amount must be a number >= 0")
			return
		}
		updates["price_amount"] = *input.PriceAmount
	}
	if input.DurationMin != nil {
		if *input.DurationMin <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "duration_min must be a number > 0")
			return
		}
		updates["duration_min"] = *input.DurationMin
	}
	if input.Currency != nil {
		currency := strings.ToUpper(*input.Currency)
		if !allowedCurrencies.Contains(currency) {
			utils.RespondWithError(c, http.StatusBadRequest, "currency must be one of: EGP, USD, EUR, SAR, AED")
			return
		}
		updates["currency"] = currency
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if len(updates) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "No fields to update")
		return
	}

	var pricing models.BranchServicePricing
	if err := config.DB.First(&pricing, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pricing not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Model(&pricing).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update pricing")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"pricing": pricing}})
}

// DeletePricing hard-deletes a price list row.
func DeletePricing(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pricing id")
		return
	}

	result := config.DB.Delete(&models.BranchServicePricing{}, uint(id))
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete pricing")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Pricing not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Pricing deleted"})
}

// TogglePricing flips the active flag of a price list row.
func TogglePricing(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pricing id")
		return
	}

	var pricing models.BranchServicePricing
	if err := config.DB.First(&pricing, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pricing not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Model(&pricing).Update("is_active", !pricing.IsActive).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to toggle pricing")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"pricing": pricing}})
}
