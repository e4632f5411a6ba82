// controllers/service.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"joyaspa-backend/config"
	"joyaspa-backend/models"
	"joyaspa-backend/utils"
)

var serviceSortFields = utils.NewStringSet("id", "name", "created_at", "default_duration_min", "is_active", "category_id")

type CreateServiceInput struct {
	CategoryID         uint    `json:"category_id" binding:"required"`
	Name               string  `json:"name" binding:"required"`
	Description        *string `json:"description"`
	DefaultDurationMin *int    `json:"default_duration_min"`
	ImageURL1          *string `json:"image_url_1"`
	ImageURL2          *string `json:"image_url_2"`
	ImageURL3          *string `json:"image_url_3"`
	ImageURL4          *string `json:"image_url_4"`
	IsActive           *bool   `json:"is_active"`
}

type UpdateServiceInput struct {
	CategoryID         *uint   `json:"category_id"`
	Name               *string `json:"name"`
	Description        *string `json:"description"`
	DefaultDurationMin *int    `json:"default_duration_min"`
	ImageURL1          *string `json:"image_url_1"`
	ImageURL2          *string `json:"image_url_2"`
	ImageURL3          *string `json:"image_url_3"`
	ImageURL4          *string `json:"image_url_4"`
	IsActive           *bool   `json:"is_active"`
}

// GetServices lists services with category join, filters and pagination.
func GetServices(c *gin.Context) {
	page := utils.ParsePagination(c, serviceSortFields, "created_at", false)

	query := config.DB.Model(&models.Service{})
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "category_id must be a number")
			return
		}
		query = query.Where("category_id = ?", uint(id))
	}
	if raw := c.Query("is_active"); raw != "" {
		query = query.Where("is_active = ?", raw == "true")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch services")
		return
	}

	var servicesList []models.Service
	err := query.Preload("Category").
		Order(page.OrderClause()).
		Offset(page.Offset()).Limit(page.Limit).
		Find(&servicesList).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch services")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"pagination": paginationEnvelope(page, total),
		"data":       gin.H{"services": servicesList},
	})
}

// GetServicesList returns bare id/name pairs for admin dropdowns.
func GetServicesList(c *gin.Context) {
	type servicePair struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}

	var list []servicePair
	if err := config.DB.Model(&models.Service{}).Select("id", "name").Scan(&list).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch servicesList")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"servicesList": list}})
}

// GetService retrieves one service by id.
func GetService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service id")
		return
	}

	var service models.Service
	if err := config.DB.Preload("Category").First(&service, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"service": service}})
}

// CreateService adds a new service under an existing category.
func CreateService(c *gin.Context) {
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "category_id and name are required")
		return
	}

	var category models.ServiceCategory
	if err := config.DB.First(&category, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	service := models.Service{
		CategoryID:         input.CategoryID,
		Name:               input.Name,
		Description:        input.Description,
		DefaultDurationMin: input.DefaultDurationMin,
		ImageURL1:          input.ImageURL1,
		ImageURL2:          input.ImageURL2,
		ImageURL3:          input.ImageURL3,
		ImageURL4:          input.ImageURL4,
		IsActive:           true,
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": gin.H{"service": service}})
}

// UpdateService patches the provided fields only.
func UpdateService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service id")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.First(&service, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.CategoryID != nil {
		var category models.ServiceCategory
		if err := config.DB.First(&category, *input.CategoryID).Error; err != nil {
			utils.RespondWithError(c, http.StatusNotFound, "Category not found")
			return
		}
		service.CategoryID = *input.CategoryID
	}
	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = input.Description
	}
	if input.DefaultDurationMin != nil {
		service.DefaultDurationMin = input.DefaultDurationMin
	}
	if input.ImageURL1 != nil {
		service.ImageURL1 = input.ImageURL1
	}
	if input.ImageURL2 != nil {
		service.ImageURL2 = input.ImageURL2
	}
	if input.ImageURL3 != nil {
		service.ImageURL3 = input.ImageURL3
	}
	if input.ImageURL4 != nil {
		service.ImageURL4 = input.ImageURL4
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"service": service}})
}

// DeleteService removes a service unless the price list references it.
func DeleteService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service id")
		return
	}

	var inUse int64
	if err := config.DB.Model(&models.BranchServicePricing{}).Where("service_id = ?", uint(id)).Count(&inUse).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to check service usage")
		return
	}
	if inUse > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Service is used in branch pricing and cannot be deleted")
		return
	}

	result := config.DB.Delete(&models.Service{}, uint(id))
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Service deleted"})
}
