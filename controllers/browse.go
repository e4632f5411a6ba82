// controllers/browse.go
package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"joyaspa-backend/config"
	"joyaspa-backend/models"
	"joyaspa-backend/services"
	"joyaspa-backend/utils"
)

// BrowseBranches returns active branches for the public site, optionally
// narrowed by city or country.
func BrowseBranches(c *gin.Context) {
	query := config.DB.Model(&models.Branch{}).Where("is_active = ?", true)
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		query = query.Where("city ILIKE ?", city)
	}
	if country := strings.TrimSpace(c.Query("country")); country != "" {
		query = query.Where("country ILIKE ?", country)
	}

	var branches []models.Branch
	if err := query.Order("name asc").Find(&branches).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch branches")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "branches": branches})
}

// BrowseService is one bookable service at a branch: the active pricing row
// joined with the service catalog entry.
type BrowseService struct {
	ServiceID    uint    `json:"service_id"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	PriceAmount  float64 `json:"price_amount"`
	Currency     string  `json:"currency"`
	DurationMin  *int    `json:"duration_min"`
	ImageURL1    *string `json:"image_url_1"`
	ImageURL2    *string `json:"image_url_2"`
	ImageURL3    *string `json:"image_url_3"`
	ImageURL4    *string `json:"image_url_4"`
}

// BrowseBranchServices lists the bookable services of one branch, resolved
// by numeric id or slug. Inactive branches are hidden from the public site.
func BrowseBranchServices(c *gin.Context) {
	branch, err := services.ResolveBranch(config.DB, c.Param("branchId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if branch == nil || !branch.IsActive {
		utils.RespondWithError(c, http.StatusNotFound, "Branch not found")
		return
	}

	query := config.DB.Table("branch_service_pricing")
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		id, convErr := strconv.ParseUint(raw, 10, 64)
		if convErr != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "category_id must be a number")
			return
		}
		query = query.Where("services.category_id = ?", uint(id))
	}

	var rows []BrowseService
	err = query.
		Select(`services.id as service_id,
			services.name,
			services.description,
			services.category_id,
			service_categories.name as category_name,
			branch_service_pricing.price_amount,
			branch_service_pricing.currency,
			services.default_duration_min as duration_min,
			services.image_url_1,
			services.image_url_2,
			services.image_url_3,
			services.image_url_4`).
		Joins("JOIN services ON services.id = branch_service_pricing.service_id").
		Joins("JOIN service_categories ON service_categories.id = services.category_id").
		Where("branch_service_pricing.branch_id = ?", branch.ID).
		Where("branch_service_pricing.is_active = ?", true).
		Where("services.is_active = ?", true).
		Order("service_categories.sort_order asc, services.name asc").
		Scan(&rows).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch branch services")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"branch":   gin.H{"id": branch.ID, "name": branch.Name, "slug": branch.Slug},
		"services": rows,
	})
}

// BrowseBranchHotel returns the hotel profile attached to a branch.
func BrowseBranchHotel(c *gin.Context) {
	branch, err := services.ResolveBranch(config.DB, c.Param("branchId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if branch == nil || !branch.IsActive {
		utils.RespondWithError(c, http.StatusNotFound, "Branch not found")
		return
	}
	if branch.HotelID == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Hotel not found")
		return
	}

	var hotel models.Hotel
	if err := config.DB.First(&hotel, *branch.HotelID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Hotel not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "hotel": hotel})
}

// BrowseCategories lists active categories for the public site.
func BrowseCategories(c *gin.Context) {
	type categoryRow struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	var rows []categoryRow
	err := config.DB.Model(&models.ServiceCategory{}).
		Where("is_active = ?", true).
		Order("name asc").
		Select("id", "name").
		Scan(&rows).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "categories": rows})
}

// BrowseCountries lists the distinct countries of active branches.
func BrowseCountries(c *gin.Context) {
	var countries []string
	err := config.DB.Model(&models.Branch{}).
		Where("is_active = ? AND country IS NOT NULL AND country <> ''", true).
		Distinct("country").
		Order("country asc").
		Pluck("country", &countries).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch countries")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "countries": countries})
}

// BrowseCities lists the distinct cities of active branches, optionally
// within one country.
func BrowseCities(c *gin.Context) {
	query := config.DB.Model(&models.Branch{}).
		Where("is_active = ? AND city IS NOT NULL AND city <> ''", true)
	if country := strings.TrimSpace(c.Query("country")); country != "" {
		query = query.Where("country ILIKE ?", country)
	}

	var cities []string
	if err := query.Distinct("city").Order("city asc").Pluck("city", &cities).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch cities")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cities": cities})
}
