package routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/abdaljehan03-maker/clinic-project/internal/appointments"
	"github.com/abdaljehan03-maker/clinic-project/internal/billstore"
	"github.com/abdaljehan03-maker/clinic-project/internal/clinic"
	"github.com/abdaljehan03-maker/clinic-project/internal/config"
	"github.com/abdaljehan03-maker/clinic-project/internal/handlers"
	"github.com/abdaljehan03-maker/clinic-project/internal/middleware"
	"github.com/abdaljehan03-maker/clinic-project/internal/sse"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, catalog *clinic.Catalog, store *billstore.Store, book *appointments.Book, events *sse.Broadcaster, cfg *config.Config) {
	router.Use(gzip.Gzip(gzip.BestSpeed))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg)
	treatmentHandler := handlers.NewTreatmentHandler(catalog, events)
	billHandler := handlers.NewBillHandler(catalog, store, cfg)
	appointmentHandler := handlers.NewAppointmentHandler(book, catalog, events)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		// Treatment catalog routes; whole-catalog edits are admin only
		treatmentRoutes := private.Group("/treatments")
		{
			treatmentRoutes.GET("", treatmentHandler.ListTreatments)

			adminTreatmentRoutes := treatmentRoutes.Group("")
			adminTreatmentRoutes.Use(middleware.RoleAuthMiddleware(config.RoleAdmin))
			{
				adminTreatmentRoutes.PUT("", treatmentHandler.ReplaceNames)
				adminTreatmentRoutes.PUT("/prices", treatmentHandler.ReplacePrices)
			}
		}

		// Billing routes
		billRoutes := private.Group("/bills")
		{
			billRoutes.POST("", billHandler.GenerateBill)
			billRoutes.GET("/search", billHandler.SearchBills)
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("/upcoming", appointmentHandler.GetUpcomingAppointments)
			appointmentRoutes.GET("/export", appointmentHandler.ExportAppointments)
			appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
			appointmentRoutes.DELETE("/:id", appointmentHandler.DeleteAppointment)
		}

		// Refresh stream so a second desk sees changes without polling
		private.GET("/events", events.Stream)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
