package main

import (
	"log"
	"os"

	"moderation-api/internal/config"
	"moderation-api/internal/handlers"
	"moderation-api/internal/routes"
	"moderation-api/internal/services"
	"moderation-api/internal/validator"
	"moderation-api/pkg/database"

	"github.com/gofiber/fiber/v2"
)

func init() {
	// Load all configs (including .env)
	if err := config.LoadConfig(); err != nil {
		log.Fatal("Error loading configs:", err)
	}

	// Initialize validator
	validator.InitValidator()

	// Connect to database
	if err := database.ConnectDB(); err != nil {
		log.Fatal("Error connecting to database:", err)
	}

	// Connect the moderation event publisher
	if config.Moderation.Events.Enabled {
		handlers.Events = services.NewEventsService()
	}
}

func main() {
	app := fiber.New(fiber.Config{})

	routes.SetupRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	log.Fatal(app.Listen(":" + port))
}
