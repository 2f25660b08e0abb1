package routes

import (
	"pawbook-backend/config"
	"pawbook-backend/controllers"
	promx "pawbook-backend/prometheus"
	"pawbook-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://liff.line.me",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())
	r.Use(promx.MetricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/line", controllers.LineLogin)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Reservation routes (owner mini-app and staff console)
		reservations := api.Group("/reservations")
		{
			reservations.POST("", controllers.CreateReservation)
			reservations.GET("", controllers.GetReservations)
			reservations.PUT("/:id", controllers.UpdateReservation)
			reservations.PUT("/:id/cancel", controllers.CancelReservation)
			reservations.POST("/:id/pre-visit", controllers.AttachPreVisitInput)
		}

		// QR kiosk check-in/check-out
		api.POST("/check-in", controllers.CheckIn)
		api.POST("/check-out", controllers.CheckOut)

		// Availability routes (backs the booking calendar)
		api.GET("/availability", controllers.GetAvailability)
		api.GET("/hotel-availability", controllers.GetHotelAvailability)

		// Dog registry
		dogs := api.Group("/dogs")
		{
			dogs.POST("", controllers.CreateDog)
			dogs.GET("", controllers.GetDogs)
		}

		// Staff console routes
		staff := api.Group("")
		staff.Use(utils.StaffOnly())
		{
			staff.GET("/qr-code", controllers.GetQRCode)
			staff.GET("/dashboard", controllers.GetDashboardOverview)

			staff.GET("/store", controllers.GetStore)
			staff.PUT("/store", controllers.UpdateStore)

			rooms := staff.Group("/rooms")
			{
				rooms.POST("", controllers.CreateRoom)
				rooms.GET("", controllers.GetRooms)
				rooms.PUT("/:id", controllers.UpdateRoom)
				rooms.DELETE("/:id", controllers.DeleteRoom)
			}

			contracts := staff.Group("/contracts")
			{
				contracts.POST("", controllers.CreateContract)
				contracts.GET("", controllers.GetContracts)
				contracts.PUT("/:id", controllers.UpdateContract)
			}
		}
	}

	return r
}
