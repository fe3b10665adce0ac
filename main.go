package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kleanzilla/config"
	"kleanzilla/database"
	bookingRepoPkg "kleanzilla/database/repository/booking"
	customerRepoPkg "kleanzilla/database/repository/customer"
	tokenRepoPkg "kleanzilla/database/repository/token"
	"kleanzilla/handlers"
	"kleanzilla/middleware"
	"kleanzilla/routes"
	"kleanzilla/services/booking"
	"kleanzilla/services/notification"
	"kleanzilla/services/payfast"
	"kleanzilla/services/storage"
	"kleanzilla/services/token"
	"kleanzilla/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()

	ensureCtx, ensureCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := database.EnsureCollections(ensureCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure collections: %v", err)
	}
	ensureCancel()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	customerRepo := customerRepoPkg.NewMongoCustomerRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	tokenRepo := tokenRepoPkg.NewMongoTokenRepo()

	// services.
	tokenService := &token.DefaultTokenService{Repo: tokenRepo}

	mailer := notification.NewSendGridMailer(
		config.AppConfig.SendGridAPIKey,
		config.AppConfig.SendGridFrom,
	)
	notifyEmail := config.AppConfig.NotifyEmail
	if notifyEmail == "" {
		notifyEmail = config.AppConfig.SendGridFrom
	}

	signer := storage.NewSigner(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
		config.AppConfig.StorageContainer,
		logger,
	)

	bookingService := &booking.DefaultBookingService{
		Customers: customerRepo,
		Bookings:  bookingRepo,
		Tokens:    tokenService,
		Mailer:    mailer,
		Logger:    logger,
		Links: booking.Links{
			MagicBaseURL: config.AppConfig.MagicLinkBaseURL,
			AdminBaseURL: config.AppConfig.AdminLinkBaseURL,
		},
		TokenTTL:    time.Duration(config.AppConfig.MagicLinkTTLHours) * time.Hour,
		NotifyEmail: notifyEmail,
		AdminEmails: config.AdminEmailList(),
	}

	reconciler := &payfast.Reconciler{
		Cfg: payfast.Config{
			MerchantID:  config.AppConfig.PayfastMerchantID,
			MerchantKey: config.AppConfig.PayfastMerchantKey,
			Passphrase:  config.AppConfig.PayfastPassphrase,
			ValidateURL: config.AppConfig.PayfastValidateURL,
			IPWhitelist: config.PayfastIPList(),
			Sandbox:     config.AppConfig.PayfastSandbox,
			ReturnURL:   config.AppConfig.PayfastReturnURL,
			CancelURL:   config.AppConfig.PayfastCancelURL,
			NotifyURL:   config.AppConfig.PayfastNotifyURL,
		},
		Bookings:    bookingRepo,
		Customers:   customerRepo,
		Mailer:      mailer,
		Client:      &http.Client{Timeout: 10 * time.Second},
		Logger:      logger,
		NotifyEmail: notifyEmail,
	}

	quoteHandler := handlers.NewQuoteHandler(bookingService)
	uploadHandler := handlers.NewUploadHandler(tokenService, signer, bookingRepo, config.AppConfig.AdminUploadKey)
	paymentHandler := handlers.NewPaymentHandler(reconciler)
	contactHandler := handlers.NewContactHandler(mailer, config.AppConfig.ContactEmail, notifyEmail)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		CreateQuoteHandler:      quoteHandler.CreateQuoteHandler,
		RequestMagicLinkHandler: quoteHandler.RequestMagicLinkHandler,
		RequestAdminLinkHandler: quoteHandler.RequestAdminLinkHandler,
		SubmitDisputeHandler:    quoteHandler.SubmitDisputeHandler,

		GetUploadSASHandler:        uploadHandler.GetUploadSASHandler,
		GetDisputeUploadSASHandler: uploadHandler.GetDisputeUploadSASHandler,
		GetAdminUploadSASHandler:   uploadHandler.GetAdminUploadSASHandler,
		GetGalleryHandler:          uploadHandler.GetGalleryHandler,

		PayfastPrepareHandler: paymentHandler.PrepareHandler,
		PayfastITNHandler:     paymentHandler.ITNHandler,

		SendContactHandler:     contactHandler.SendContactHandler,
		SendUploadEmailHandler: contactHandler.SendUploadEmailHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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
