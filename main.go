package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/abdaljehan03-maker/clinic-project/internal/appointments"
	"github.com/abdaljehan03-maker/clinic-project/internal/billstore"
	"github.com/abdaljehan03-maker/clinic-project/internal/clinic"
	"github.com/abdaljehan03-maker/clinic-project/internal/config"
	"github.com/abdaljehan03-maker/clinic-project/internal/routes"
	"github.com/abdaljehan03-maker/clinic-project/internal/sse"
)

func main() {
	// Load environment variables; every setting has a default
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment and defaults")
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// The flat-file stores all live under the data directory
	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		log.Fatalf("Error creating data directory: %v", err)
	}

	// Build the core: treatment catalog, bill store, appointment book
	catalog := clinic.NewCatalog()
	store := billstore.New(cfg.Storage.CombinedLogPath, cfg.Storage.BillsDir)
	book, err := appointments.Open(cfg.Storage.AppointmentsPath)
	if err != nil {
		// A broken store file must not stop the clinic; start with an
		// empty book and tell the operator.
		slog.Error("appointment store could not be read, starting empty",
			"path", cfg.Storage.AppointmentsPath, "error", err)
	}
	events := sse.NewBroadcaster()

	// Initialize Gin router
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes - handlers are created inside routes.go
	routes.SetupRoutes(router, catalog, store, book, events, cfg)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	fmt.Printf("%s server running on port %s\n", cfg.ClinicName, cfg.Port)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
