package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"joyaspa-backend/config"
	"joyaspa-backend/models"
	"joyaspa-backend/utils"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an admin and issues a bearer token.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	var admin models.Admin
	if err := config.DB.Where("email = ?", input.Email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !admin.IsActive {
		utils.RespondWithError(c, http.StatusForbidden, "Admin account disabled")
		return
	}

	if !utils.CheckPasswordHash(input.Password, admin.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := utils.GenerateAdminToken(admin.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to sign token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  token,
		"data": gin.H{
			"admin": gin.H{"id": admin.ID, "name": admin.Name, "email": admin.Email},
		},
	})
}

// Me returns the authenticated admin's profile.
func Me(c *gin.Context) {
	adminID, exists := c.Get("adminId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Admin not logged in")
		return
	}

	var admin models.Admin
	if err := config.DB.First(&admin, adminID.(uint)).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Admin not found")
		return
	}
	if !admin.IsActive {
		utils.RespondWithError(c, http.StatusForbidden, "Admin account disabled")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"admin": admin},
	})
}
