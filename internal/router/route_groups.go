package router

import (
	"github.com/gin-gonic/gin"

	"sports_complex_backend/internal/handlers"
)

// SetupClientRoutes sets up the client routes, including the derived
// active-membership lookup.
func SetupClientRoutes(apiGroup *gin.RouterGroup, clientHandler *handlers.ClientHandler, membershipHandler *handlers.MembershipHandler) {
	clientRoutes := apiGroup.Group("/clients")
	{
		clientRoutes.POST("", clientHandler.CreateClient)
		clientRoutes.GET("", clientHandler.GetClients)
		clientRoutes.GET("/:id", clientHandler.GetClientByID)
		clientRoutes.PUT("/:id", clientHandler.UpdateClient)
		clientRoutes.DELETE("/:id", clientHandler.DeleteClient)
		clientRoutes.GET("/:id/active-membership", membershipHandler.GetClientActiveMembership)
	}
}

// SetupFacilityRoutes sets up the facility routes.
func SetupFacilityRoutes(apiGroup *gin.RouterGroup, facilityHandler *handlers.FacilityHandler) {
	facilityRoutes := apiGroup.Group("/facilities")
	{
		facilityRoutes.POST("", facilityHandler.CreateFacility)
		facilityRoutes.GET("", facilityHandler.GetFacilities)
		facilityRoutes.GET("/:id", facilityHandler.GetFacilityByID)
		facilityRoutes.PUT("/:id", facilityHandler.UpdateFacility)
		facilityRoutes.DELETE("/:id", facilityHandler.DeleteFacility)
	}
}

// SetupMembershipRoutes sets up the membership plan routes.
func SetupMembershipRoutes(apiGroup *gin.RouterGroup, membershipHandler *handlers.MembershipHandler) {
	membershipRoutes := apiGroup.Group("/memberships")
	{
		membershipRoutes.POST("", membershipHandler.CreatePlan)
		membershipRoutes.GET("", membershipHandler.GetPlans)
		membershipRoutes.GET("/:id", membershipHandler.GetPlanByID)
		membershipRoutes.PUT("/:id", membershipHandler.UpdatePlan)
		membershipRoutes.DELETE("/:id", membershipHandler.DeletePlan)
	}
}

// SetupPaymentRoutes sets up the payment routes, including the CSV export.
func SetupPaymentRoutes(apiGroup *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	paymentRoutes := apiGroup.Group("/payments")
	{
		paymentRoutes.POST("", paymentHandler.CreatePayment)
		paymentRoutes.GET("", paymentHandler.GetPayments)
		paymentRoutes.GET("/export", paymentHandler.ExportPayments)
		paymentRoutes.DELETE("/:id", paymentHandler.DeletePayment)
	}
}

// SetupBookingRoutes sets up the booking routes.
func SetupBookingRoutes(apiGroup *gin.RouterGroup, bookingHandler *handlers.BookingHandler) {
	bookingRoutes := apiGroup.Group("/bookings")
	{
		bookingRoutes.POST("", bookingHandler.CreateBooking)
		bookingRoutes.GET("", bookingHandler.GetBookings)
		bookingRoutes.GET("/:id", bookingHandler.GetBookingByID)
		bookingRoutes.PUT("/:id", bookingHandler.UpdateBooking)
		bookingRoutes.DELETE("/:id", bookingHandler.DeleteBooking)
	}
}

// SetupScheduleRoutes sets up the activity schedule routes.
func SetupScheduleRoutes(apiGroup *gin.RouterGroup, scheduleHandler *handlers.ScheduleHandler) {
	scheduleRoutes := apiGroup.Group("/schedule")
	{
		scheduleRoutes.POST("", scheduleHandler.CreateEntry)
		scheduleRoutes.GET("", scheduleHandler.GetEntries)
		scheduleRoutes.GET("/:id", scheduleHandler.GetEntryByID)
		scheduleRoutes.PUT("/:id", scheduleHandler.UpdateEntry)
		scheduleRoutes.DELETE("/:id", scheduleHandler.DeleteEntry)
	}
}
