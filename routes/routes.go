package routes

import (
	"joyaspa-backend/config"
	"joyaspa-backend/controllers"
	"joyaspa-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://joyaspa.net",
			"https://admin.joyaspa.net",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			return origin == "https://joyaspa.net" ||
				origin == "https://admin.joyaspa.net" ||
				origin == "http://localhost:3000"
		},
	}))

	r.Use(config.PerformanceLogger())

	// Public customer-facing routes, no auth.
	customer := r.Group("/api/customer")
	{
		customer.POST("/bookings", controllers.CreateCustomerBooking)

		browse := customer.Group("/browse")
		{
			browse.GET("/branches", controllers.BrowseBranches)
			browse.GET("/branches/:branchId/services", controllers.BrowseBranchServices)
			browse.GET("/branches/:branchId/hotel", controllers.BrowseBranchHotel)
			browse.GET("/categories", controllers.BrowseCategories)
			browse.GET("/countries", controllers.BrowseCountries)
			browse.GET("/cities", controllers.BrowseCities)
		}
	}

	admin := r.Group("/api/admin")
	{
		admin.POST("/auth/login", controllers.Login)

		admin.Use(utils.AuthMiddleware())
		admin.GET("/auth/me", controllers.Me)

		categories := admin.Group("/categories")
		{
			categories.GET("", controllers.GetCategories)
			categories.GET("/:id", controllers.GetCategory)
			categories.POST("", controllers.CreateCategory)
			categories.PUT("/:id", controllers.UpdateCategory)
			categories.DELETE("/:id", controllers.DeleteCategory)
		}

		services := admin.Group("/services")
		{
			services.GET("", controllers.GetServices)
			services.GET("/servicesList", controllers.GetServicesList)
			services.GET("/:id", controllers.GetService)
			services.POST("", controllers.CreateService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		pricing := admin.Group("/pricing")
		{
			pricing.GET("", controllers.GetPricings)
			pricing.GET("/:id", controllers.GetPricing)
			pricing.POST("", controllers.CreatePricing)
			pricing.PUT("/:id", controllers.UpdatePricing)
			pricing.DELETE("/:id", controllers.DeletePricing)
			pricing.PATCH("/:id/toggle", controllers.TogglePricing)
		}

		branches := admin.Group("/branches")
		{
			branches.GET("", controllers.GetBranches)
			branches.GET("/:id", controllers.GetBranch)
			branches.POST("", controllers.CreateBranch)
			branches.PUT("/:id", controllers.UpdateBranch)
			branches.DELETE("/:id", controllers.DeleteBranch)
		}

		bookings := admin.Group("/bookings")
		{
			bookings.GET("", controllers.GetBookings)
			bookings.GET("/:id", controllers.GetBooking)
			bookings.PATCH("/:id/status", controllers.UpdateBookingStatus)
		}

		dashboard := admin.Group("/dashboard")
		{
			dashboard.GET("/statistics", controllers.GetStatistics)
			dashboard.GET("/recent-bookings", controllers.GetRecentBookings)
		}
	}

	return r
}
