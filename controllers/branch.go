// controllers/branch.go
package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"joyaspa-backend/config"
	"joyaspa-backend/models"
	"joyaspa-backend/services"
	"joyaspa-backend/utils"
)

var branchSortFields = utils.NewStringSet("id", "name", "created_at", "is_active", "slug")

type CreateBranchInput struct {
	Name        string  `json:"name" binding:"required"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Country     *string `json:"country"`
	City        *string `json:"city"`
	Region      *string `json:"region"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	ImageURL1   *string `json:"image_url_1"`
	ImageURL2   *string `json:"image_url_2"`
	ImageURL3   *string `json:"image_url_3"`
	ImageURL4   *string `json:"image_url_4"`
	ImageURL5   *string `json:"image_url_5"`
	IsActive    *bool   `json:"is_active"`

	HotelName        *string `json:"hotel_name"`
	HotelTitle       *string `json:"hotel_title"`
	HotelDescription *string `json:"hotel_description"`
	HotelImageURL1   *string `json:"hotel_image_url_1"`
}

type UpdateBranchInput struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Country     *string `json:"country"`
	City        *string `json:"city"`
	Region      *string `json:"region"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	ImageURL1   *string `json:"image_url_1"`
	ImageURL2   *string `json:"image_url_2"`
	ImageURL3   *string `json:"image_url_3"`
	ImageURL4   *string `json:"image_url_4"`
	ImageURL5   *string `json:"image_url_5"`
	IsActive    *bool   `json:"is_active"`

	HotelName        *string `json:"hotel_name"`
	HotelTitle       *string `json:"hotel_title"`
	HotelDescription *string `json:"hotel_description"`
	HotelImageURL1   *string `json:"hotel_image_url_1"`
}

// GetBranches lists branches with active filter, name/address search and
// pagination.
func GetBranches(c *gin.Context) {
	page := utils.ParsePagination(c, branchSortFields, "created_at", false)

	query := config.DB.Model(&models.Branch{})
	if raw := c.Query("is_active"); raw != "" {
		query = query.Where("is_active = ?", raw == "true")
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR address ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch branches")
		return
	}

	var branches []models.Branch
	err := query.Order(page.OrderClause()).
		Offset(page.Offset()).Limit(page.Limit).
		Find(&branches).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch branches")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"pagination": paginationEnvelope(page, total),
		"data":       gin.H{"branches": branches},
	})
}

// GetBranch retrieves a branch by numeric id or slug, with its hotel.
func GetBranch(c *gin.Context) {
	branch, err := services.ResolveBranch(config.DB, c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if branch == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Branch not found")
		return
	}

	data := gin.H{"branch": branch}
	if branch.HotelID != nil {
		var hotel models.Hotel
		if err := config.DB.First(&hotel, *branch.HotelID).Error; err == nil {
			data["hotel"] = hotel
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
}

// CreateBranch creates a branch together with its owned hotel profile.
func CreateBranch(c *gin.Context) {
	var input CreateBranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "name is required")
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "name is required")
		return
	}

	slug := utils.Slugify(input.Name)
	if input.Slug != nil && strings.TrimSpace(*input.Slug) != "" {
		slug = utils.Slugify(*input.Slug)
	}

	hotel := models.Hotel{
		Name:        "Hotel",
		Description: input.HotelDescription,
		ImageURL1:   input.HotelImageURL1,
	}
	if input.HotelName != nil && strings.TrimSpace(*input.HotelName) != "" {
		hotel.Name = strings.TrimSpace(*input.HotelName)
	}
	if input.HotelTitle != nil {
		hotel.Title = strings.TrimSpace(*input.HotelTitle)
	}

	branch := models.Branch{
		Name:        strings.TrimSpace(input.Name),
		Slug:        slug,
		Address:     input.Address,
		Phone:       input.Phone,
		Country:     input.Country,
		City:        input.City,
		Region:      input.Region,
		Description: input.Description,
		ImageURL1:   input.ImageURL1,
		ImageURL2:   input.ImageURL2,
		ImageURL3:   input.ImageURL3,
		ImageURL4:   input.ImageURL4,
		ImageURL5:   input.ImageURL5,
		IsActive:    true,
	}
	if input.IsActive != nil {
		branch.IsActive = *input.IsActive
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&hotel).Error; err != nil {
			return err
		}
		branch.HotelID = &hotel.ID
		return tx.Create(&branch).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create branch")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"branch": branch, "hotel": hotel},
	})
}

// UpdateBranch patches branch and hotel fields; absent fields stay put.
func UpdateBranch(c *gin.Context) {
	branch, err := services.ResolveBranch(config.DB, c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if branch == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Branch not found")
		return
	}

	var input UpdateBranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	branchUpdates := map[string]interface{}{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "name must be a non-empty string")
			return
		}
		branchUpdates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		branchUpdates["address"] = input.Address
	}
	if input.Phone != nil {
		branchUpdates["phone"] = input.Phone
	}
	if input.Country != nil {
		branchUpdates["country"] = input.Country
	}
	if input.City != nil {
		branchUpdates["city"] = input.City
	}
	if input.Region != nil {
		branchUpdates["region"] = input.Region
	}
	if input.Description != nil {
		branchUpdates["description"] = input.Description
	}
	if input.Slug != nil && strings.TrimSpace(*input.Slug) != "" {
		branchUpdates["slug"] = utils.Slugify(*input.Slug)
	} else if input.Name != nil {
		branchUpdates["slug"] = utils.Slugify(*input.Name)
	}
	if input.ImageURL1 != nil {
		branchUpdates["image_url_1"] = input.ImageURL1
	}
	if input.ImageURL2 != nil {
		branchUpdates["image_url_2"] = input.ImageURL2
	}
	if input.ImageURL3 != nil {
		branchUpdates["image_url_3"] = input.ImageURL3
	}
	if input.ImageURL4 != nil {
		branchUpdates["image_url_4"] = input.ImageURL4
	}
	if input.ImageURL5 != nil {
		branchUpdates["image_url_5"] = input.ImageURL5
	}
	if input.IsActive != nil {
		branchUpdates["is_active"] = *input.IsActive
	}

	hotelUpdates := map[string]interface{}{}
	if input.HotelName != nil {
		if strings.TrimSpace(*input.HotelName) == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "hotel_name must be a non-empty string")
			return
		}
		hotelUpdates["name"] = strings.TrimSpace(*input.HotelName)
	}
	if input.HotelTitle != nil {
		hotelUpdates["title"] = strings.TrimSpace(*input.HotelTitle)
	}
	if input.HotelDescription != nil {
		hotelUpdates["description"] = input.HotelDescription
	}
	if input.HotelImageURL1 != nil {
		hotelUpdates["image_url_1"] = input.HotelImageURL1
	}

	if len(branchUpdates) == 0 && len(hotelUpdates) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "No fields to update")
		return
	}

	if len(branchUpdates) > 0 {
		if err := config.DB.Model(branch).Updates(branchUpdates).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update branch")
			return
		}
	}

	data := gin.H{"branch": branch}
	if len(hotelUpdates) > 0 && branch.HotelID != nil {
		var hotel models.Hotel
		if err := config.DB.First(&hotel, *branch.HotelID).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update hotel")
			return
		}
		if err := config.DB.Model(&hotel).Updates(hotelUpdates).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update hotel")
			return
		}
		data["hotel"] = hotel
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
}

// DeleteBranch removes a branch and its hotel. Deletion is refused with a
// conflict while pricing rows or bookings still reference the branch.
func DeleteBranch(c *gin.Context) {
	branch, err := services.ResolveBranch(config.DB, c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if branch == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Branch not found")
		return
	}

	var pricingUsage int64
	if err := config.DB.Model(&models.BranchServicePricing{}).Where("branch_id = ?", branch.ID).Count(&pricingUsage).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to check branch pricing usage")
		return
	}
	if pricingUsage > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Branch is used in branch pricing and cannot be deleted")
		return
	}

	var bookingUsage int64
	if err := config.DB.Model(&models.Booking{}).Where("branch_id = ?", branch.ID).Count(&bookingUsage).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to check branch bookings usage")
		return
	}
	if bookingUsage > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Branch is used in bookings and cannot be deleted")
		return
	}

	hotelID := branch.HotelID
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Branch{}, branch.ID).Error; err != nil {
			return err
		}
		if hotelID != nil {
			return tx.Delete(&models.Hotel{}, *hotelID).Error
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete branch")
		return
	}

	message := "Branch deleted successfully"
	if hotelID != nil {
		message = "Branch and hotel deleted successfully"
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": message})
}
