package utils

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// RespondWithError writes the fixed error envelope and aborts the request.
func RespondWithError(c *gin.Context, statusCode int, message string) {
	status := "error"
	if statusCode >= 400 && statusCode < 500 {
		status = "fail"
	}
	c.AbortWithStatusJSON(statusCode, gin.H{
		"status":  status,
		"message": message,
	})
}

// RespondWithAppError maps a service error onto the HTTP envelope. AppError
// messages pass through; anything else is hidden outside development mode.
func RespondWithAppError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondWithError(c, appErr.StatusCode, appErr.Message)
		return
	}
	if os.Getenv("APP_ENV") == "development" {
		RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	RespondWithError(c, http.StatusInternalServerError, "Something went wrong")
}
