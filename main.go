package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"praxis/config"
	"praxis/cron"
	"praxis/database"
	appointmentRepoPkg "praxis/database/repository/appointment"
	availabilityRepoPkg "praxis/database/repository/availability"
	documentRepoPkg "praxis/database/repository/document"
	invoiceRepoPkg "praxis/database/repository/invoice"
	messageRepoPkg "praxis/database/repository/message"
	patientRepoPkg "praxis/database/repository/patient"
	providerRepoPkg "praxis/database/repository/provider"
	recordsRepoPkg "praxis/database/repository/records"
	"praxis/handlers"
	"praxis/middleware"
	"praxis/routes"
	"praxis/services/admin"
	"praxis/services/availability"
	"praxis/services/billing"
	"praxis/services/booking"
	"praxis/services/documents"
	"praxis/services/messaging"
	"praxis/services/notification"
	"praxis/services/patient"
	"praxis/services/provider"
	"praxis/services/records"
	"praxis/services/storage"
	"praxis/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	storageService, err := storage.NewCloudinaryStorageService()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	patRepo := patientRepoPkg.NewMongoPatientRepo()
	availRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()
	apptRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	recRepo := recordsRepoPkg.NewMongoRecordRepo()
	invRepo := invoiceRepoPkg.NewMongoInvoiceRepo()
	msgRepo := messageRepoPkg.NewMongoMessageRepo()
	docRepo := documentRepoPkg.NewMongoDocumentRepo()

	// Services.
	providerService := provider.NewDefaultProviderService(provRepo)
	patientService := patient.NewDefaultPatientService(patRepo)
	availabilityService := availability.NewDefaultAvailabilityService(availRepo)

	notificationService, err := notification.NewDefaultNotificationService(provRepo, patRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	reminderClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer reminderClient.Close()

	bookingService := booking.NewDefaultBookingService(
		apptRepo, availRepo, provRepo, patRepo, notificationService, reminderClient)
	recordService := records.NewDefaultRecordService(recRepo, patRepo)
	billingService := billing.NewDefaultBillingService(invRepo, provRepo, patRepo)
	messagingService := messaging.NewDefaultMessagingService(msgRepo, patRepo, notificationService)
	adminService := admin.NewDefaultAdminService(provRepo, patRepo, apptRepo)

	documentService := documents.NewDefaultDocumentService(docRepo, patRepo, storageService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ProviderRepo: provRepo,
		PatientRepo:  patRepo,

		Provider:     handlers.NewProviderHandler(providerService),
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		Schedule:     handlers.NewScheduleHandler(bookingService),
		Appointment:  handlers.NewAppointmentHandler(bookingService),
		Patient:      handlers.NewPatientHandler(patientService),
		Portal:       handlers.NewPortalHandler(patientService, bookingService, billingService, messagingService),
		Record:       handlers.NewRecordHandler(recordService),
		Billing:      handlers.NewBillingHandler(billingService),
		Messaging:    handlers.NewMessagingHandler(messagingService),
		Document:     handlers.NewDocumentHandler(documentService),
		Admin:        handlers.NewAdminHandler(adminService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder worker and health monitor.
	cron.InitReminderWorker(notificationService)
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
