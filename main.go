package main

import (
	"fmt"
	"os"
	"pawbook-backend/config"
	"pawbook-backend/models"
	promx "pawbook-backend/prometheus"
	"pawbook-backend/routes"
	"pawbook-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found")
	}
	config.InitLogger()
	promx.InitMetrics("pawbook")
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Store{},
		&models.User{},
		&models.Owner{},
		&models.Dog{},
		&models.HotelRoom{},
		&models.Reservation{},
		&models.Contract{},
		&models.TicketConsumption{},
		&models.PreVisitInput{},
		&models.NotificationLog{},
	)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	services.NewReminderService(config.DB).StartScheduler()

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
