package routes

import (
	"net/http"
	"time"

	"praxis/handlers"
	"praxis/middleware"
	"praxis/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterProviderRoutes registers provider account, availability, and
// configuration endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.POST("/register", hb.Provider.RegisterHandler)
		api.POST("/login", hb.Provider.LoginHandler)

		protected := api.Group("")
		protected.Use(middleware.ProviderAuthMiddleware(hb.ProviderRepo))
		protected.GET("/me", hb.Provider.MeHandler)
		protected.PATCH("/me", hb.Provider.UpdateProfileHandler)
		protected.DELETE("/me", hb.Provider.DeleteHandler)
		protected.POST("/logout", hb.Provider.RevokeTokenHandler)
		protected.PUT("/fcm-token", hb.Provider.UpdateFCMTokenHandler)

		protected.GET("/config", hb.Provider.GetConfigHandler)
		protected.PUT("/config", hb.Provider.UpdateConfigHandler)

		protected.GET("/availability", hb.Availability.ListRulesHandler)
		protected.PUT("/availability", hb.Availability.UpsertRuleHandler)
		protected.DELETE("/availability/:id", hb.Availability.DeleteRuleHandler)

		protected.GET("/blocked", hb.Availability.ListBlockedHandler)
		protected.POST("/blocked", hb.Availability.CreateBlockedHandler)
		protected.DELETE("/blocked/:id", hb.Availability.DeleteBlockedHandler)

		protected.GET("/slots", hb.Schedule.MySlotsHandler)
		protected.GET("/days", hb.Schedule.MyDaysHandler)
	}
}

// RegisterAppointmentRoutes registers the provider-side agenda.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	api.Use(middleware.ProviderAuthMiddleware(hb.ProviderRepo))
	{
		api.GET("", hb.Appointment.ListHandler)
		api.POST("", hb.Appointment.BookHandler)
		api.GET("/:id", hb.Appointment.GetHandler)
		api.PUT("/:id/reschedule", hb.Appointment.RescheduleHandler)
		api.PUT("/:id/status", hb.Appointment.StatusHandler)
		api.DELETE("/:id", hb.Appointment.CancelHandler)
	}
}

// RegisterPatientRoutes registers provider-side patient management, clinical
// records, invoices, messaging, and documents.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patients")
	api.Use(middleware.ProviderAuthMiddleware(hb.ProviderRepo))
	{
		api.GET("", hb.Patient.ListHandler)
		api.POST("", hb.Patient.CreateHandler)
		api.GET("/:id", hb.Patient.GetHandler)
		api.PUT("/:id", hb.Patient.UpdateHandler)
		api.PUT("/:id/archive", hb.Patient.ArchiveHandler)
		api.PUT("/:id/portal", hb.Patient.EnablePortalHandler)
		api.DELETE("/:id", hb.Patient.DeleteHandler)
	}

	records := r.Group("/api/records")
	records.Use(middleware.ProviderAuthMiddleware(hb.ProviderRepo))
	{
		records.POST("", hb.Record.CreateHandler)
		records.GET("/:id", hb.Record.GetHandler)
		records.PUT("/:id", hb.Record.UpdateHandler)
		records.DELETE("/:id", hb.Record.DeleteHandler)
		records.GET("/patient/:patientID", hb.Record.ListByPatientHandler)
	}

	invoices := r.Group("/api/invoices")
	invoices.Use(middleware.ProviderAuthMiddleware(hb.ProviderRepo))
	{
		invoices.GET("", hb.Billing.ListInvoicesHandler)
		invoices.POST("", hb.Billing.CreateInvoiceHandler)
		invoices.GET("/:id", hb.Billing.GetInvoiceHandler)
		invoices.PUT("/:id/void", hb.Billing.VoidInvoiceHandler)
		invoices.PUT("/:id/paid", hb.Billing.MarkPaidHandler)
	}

	messages := r.Group("/api/messages")
	messages.Use(middleware.ProviderAuthMiddleware(hb.ProviderRepo))
	{
		messages.GET("/threads", hb.Messaging.ListThreadsHandler)
		messages.POST("", hb.Messaging.SendHandler)
		messages.GET("/threads/:threadID", hb.Messaging.ListMessagesHandler)
		messages.GET("/threads/:threadID/unread", hb.Messaging.UnreadCountHandler)
	}

	documents := r.Group("/api/documents")
	documents.Use(middleware.ProviderAuthMiddleware(hb.ProviderRepo))
	{
		documents.POST("/patient/:patientID", hb.Document.UploadHandler)
		documents.GET("/patient/:patientID", hb.Document.ListByPatientHandler)
		documents.GET("/:id/url", hb.Document.DownloadURLHandler)
		documents.DELETE("/:id", hb.Document.DeleteHandler)
	}
}

// RegisterPortalRoutes registers the authenticated patient portal.
func RegisterPortalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/portal")
	{
		api.POST("/login", hb.Portal.LoginHandler)

		protected := api.Group("")
		protected.Use(middleware.PatientAuthMiddleware(hb.PatientRepo))
		protected.GET("/me", hb.Portal.MeHandler)
		protected.POST("/logout", hb.Portal.LogoutHandler)
		protected.PUT("/fcm-token", hb.Portal.UpdateFCMTokenHandler)

		protected.GET("/schedule/:providerID/days", hb.Schedule.DaysHandler)
		protected.GET("/schedule/:providerID/slots", hb.Schedule.SlotsHandler)

		protected.GET("/appointments", hb.Portal.ListAppointmentsHandler)
		protected.POST("/appointments", hb.Portal.BookHandler)
		protected.DELETE("/appointments/:id", hb.Portal.CancelAppointmentHandler)

		protected.GET("/invoices", hb.Portal.ListInvoicesHandler)
		protected.POST("/invoices/:id/pay", hb.Portal.PayInvoiceHandler)

		protected.GET("/messages/threads", hb.Portal.ListThreadsHandler)
		protected.GET("/messages/threads/:threadID", hb.Portal.ListMessagesHandler)
		protected.POST("/messages", hb.Portal.SendMessageHandler)
	}
}

// RegisterPublicRoutes registers the unauthenticated booking page.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/public")
	{
		api.GET("/:providerID/days", hb.Schedule.DaysHandler)
		api.GET("/:providerID/slots", hb.Schedule.SlotsHandler)
		api.POST("/:providerID/book", hb.Schedule.PublicBookHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	api.Use(middleware.AdminAuthMiddleware())
	{
		api.GET("/stats", hb.Admin.StatsHandler)
		api.GET("/providers", hb.Admin.ListProvidersHandler)
		api.GET("/providers/:id", hb.Admin.GetProviderHandler)
		api.GET("/providers/:id/patients", hb.Admin.ListProviderPatientsHandler)
		api.PUT("/providers/:id/status", hb.Admin.SetProviderStatusHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Admin-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterProviderRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterPatientRoutes(r, hb)
	RegisterPortalRoutes(r, hb)
	RegisterPublicRoutes(r, hb)
	RegisterAdminRoutes(r, hb)

	// Stripe calls this directly; signature verification is the auth.
	r.POST("/api/webhooks/stripe", hb.Billing.StripeWebhookHandler)
}
