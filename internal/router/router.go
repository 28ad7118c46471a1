package router

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"sports_complex_backend/internal/handlers"
	"sports_complex_backend/internal/repositories"
	"sports_complex_backend/internal/services"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	clientRepo := repositories.NewClientRepository(db)
	facilityRepo := repositories.NewFacilityRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	scheduleRepo := repositories.NewScheduleRepository(db)

	// Initialize Services
	clientService := services.NewClientService(clientRepo, db)
	facilityService := services.NewFacilityService(facilityRepo, db)
	membershipService := services.NewMembershipService(membershipRepo, paymentRepo, facilityRepo, db)
	paymentService := services.NewPaymentService(paymentRepo, clientRepo, membershipRepo, db)
	bookingService := services.NewBookingService(bookingRepo, membershipService, db)
	scheduleService := services.NewScheduleService(scheduleRepo, membershipService, db)

	// Initialize Handlers
	clientHandler := handlers.NewClientHandler(clientService)
	facilityHandler := handlers.NewFacilityHandler(facilityService)
	membershipHandler := handlers.NewMembershipHandler(membershipService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)

	apiV1 := engine.Group("/api/v1")
	{
		SetupClientRoutes(apiV1, clientHandler, membershipHandler)
		SetupFacilityRoutes(apiV1, facilityHandler)
		SetupMembershipRoutes(apiV1, membershipHandler)
		SetupPaymentRoutes(apiV1, paymentHandler)
		SetupBookingRoutes(apiV1, bookingHandler)
		SetupScheduleRoutes(apiV1, scheduleHandler)
	}
}
