package routes

import (
	"DentaBill/cache"
	"DentaBill/config"
	"DentaBill/controllers"
	"DentaBill/handlers"
	"DentaBill/middlewares"
	"DentaBill/repositories"
	"DentaBill/services"
	"DentaBill/sms"
	"DentaBill/storage"
	"DentaBill/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes initializes the routes and middleware for the server.
func SetupRoutes(cacheInstance *cache.Cache, cfg *config.AppConfig) http.Handler {
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()
	// Wrong-method requests to a known path must report 405, not 404.
	router.HandleMethodNotAllowed = true

	// CORS configuration for the clinic dashboard origins
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://dentabill.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	router.Use(middlewares.LoggingMiddleware())

	// External clients
	smsClient := sms.NewFromConfig(cfg.Twilio)
	storageClient, err := storage.NewFromConfig(cfg.S3)
	if err != nil {
		log.Fatalf("Failed to initialize asset storage: %v", err)
	}

	// Repositories
	dentistRepo := repositories.NewDentistRepository(cacheInstance)
	patientRepo := repositories.NewPatientRepository(cacheInstance)
	appointmentRepo := repositories.NewAppointmentRepository(cacheInstance)
	billRepo := repositories.NewBillRepository(cacheInstance)
	clinicRepo := repositories.NewClinicProfileRepository(cacheInstance)

	// Services
	authService := services.NewAuthService(dentistRepo, clinicRepo, cacheInstance, cfg.Admin, cfg.SMTP)
	patientService := services.NewPatientService(patientRepo, appointmentRepo, billRepo, storageClient)
	appointmentService := services.NewAppointmentService(appointmentRepo)
	billService := services.NewBillService(billRepo, patientRepo, clinicRepo, smsClient)
	clinicService := services.NewClinicService(clinicRepo, storageClient)
	analyticsService := services.NewAnalyticsService(billRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	patientHandler := handlers.NewPatientHandler(patientService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	billHandler := handlers.NewBillHandler(billService)
	clinicHandler := handlers.NewClinicHandler(clinicService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	smsHandler := handlers.NewSMSHandler(smsClient)
	adminHandler := handlers.NewAdminHandler(authService, billService)

	// Public serverless-compatible surface (bill links, admin dashboard)
	controllers.SetupPublicAPIRoutes(router, billHandler, smsHandler, adminHandler)

	// Authenticated per-clinic surface. The gateway bearer token guards
	// only the dashboard routes; /api stays open because the SMS download
	// link must work from a plain browser.
	clinicGroup := router.Group("/").Use(
		middlewares.ValidateBearerToken(cfg.GetBearerToken()),
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(utils.RoleDentist),
	)
	controllers.SetupClinicRoutes(
		clinicGroup,
		patientHandler,
		appointmentHandler,
		billHandler,
		clinicHandler,
		analyticsHandler,
	)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
