// controllers/category.go
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

var categorySortFields = utils.NewStringSet("sort_order", "created_at", "name", "is_active", "id")

type CreateCategoryInput struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	SortOrder   int     `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

type UpdateCategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

// GetCategories lists categories with pagination and sort.
func GetCategories(c *gin.Context) {
	page := utils.ParsePagination(c, categorySortFields, "sort_order", true)

	var total int64
	if err := config.DB.Model(&models.ServiceCategory{}).Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	var categories []models.ServiceCategory
	err := config.DB.Order(page.OrderClause()).
		Offset(page.Offset()).Limit(page.Limit).
		Find(&categories).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"pagination": paginationEnvelope(page, total),
		"data":       gin.H{"categories": categories},
	})
}

// GetCategory retrieves one category by id.
func GetCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid category id")
		return
	}

	var category models.ServiceCategory
	if err := config.DB.First(&category, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"category": category}})
}

// CreateCategory adds a new service category.
func CreateCategory(c *gin.Context) {
	var input CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "name is required")
		return
	}

	category := models.ServiceCategory{
		Name:        input.Name,
		Description: input.Description,
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := config.DB.Create(&category).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": gin.H{"category": category}})
}

// UpdateCategory patches the provided fields only.
func UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid category id")
		return
	}

	var input UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var category models.ServiceCategory
	if err := config.DB.First(&category, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&category).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"category": category}})
}

// DeleteCategory removes a category unless services still reference it.
func DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid category id")
		return
	}

	var inUse int64
	if err := config.DB.Model(&models.Service{}).Where("category_id = ?", uint(id)).Count(&inUse).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to check category usage")
		return
	}
	if inUse > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Category is used by services and cannot be deleted")
		return
	}

	result := config.DB.Delete(&models.ServiceCategory{}, uint(id))
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Category not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Category deleted"})
}

func paginationEnvelope(page utils.Pagination, total int64) gin.H {
	totalPages := int64(0)
	if total > 0 {
		totalPages = (total + int64(page.Limit) - 1) / int64(page.Limit)
	}
	return gin.H{
		"page":       page.Page,
		"limit":      page.Limit,
		"total":      total,
		"totalPages": totalPages,
	}
}
