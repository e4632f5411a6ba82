package main

import (
	"fmt"
	"log"
	"os"

	"joyaspa-backend/config"
	"joyaspa-backend/controllers"
	"joyaspa-backend/models"
	"joyaspa-backend/routes"
	"joyaspa-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Admin{},
		&models.Hotel{},
		&models.Branch{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.BranchServicePricing{},
		&models.Customer{},
		&models.Booking{},
		&models.BookingItem{},
		&models.ReminderLog{},
	)
}

func main() {
	if notifier := services.NewSMTPNotifierFromEnv(); notifier != nil {
		controllers.Notifier = notifier
	} else {
		log.Println("SMTP not configured, booking confirmation emails disabled")
	}

	reminders := services.NewReminderService(config.DB)
	reminders.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
