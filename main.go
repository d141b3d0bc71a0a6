package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"handyhelp/config"
	"handyhelp/cron"
	"handyhelp/database"
	"handyhelp/database/repository"
	"handyhelp/handlers"
	"handyhelp/middleware"
	"handyhelp/routes"
	"handyhelp/services/booking"
	"handyhelp/services/handyman"
	"handyhelp/services/messaging"
	"handyhelp/services/notification"
	"handyhelp/services/tasks"
	"handyhelp/services/user"
	"handyhelp/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	cache := utils.GetCacheClient()

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, cache, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	if err := router.SetTrustedProxies(config.AppConfig.TrustedProxies); err != nil {
		logger.Fatal("Invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(middleware.RequestLogger())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	repos := repository.NewMongoRepositories(database.DB())

	// services.
	userService := &user.DefaultUserService{
		Repo:     repos.Users,
		TokenTTL: config.AppConfig.TokenTTL,
	}
	handymanService := &handyman.DefaultHandymanService{
		Repo:     repos.Handymen,
		Cache:    handyman.NewRedisProfileCache(cache, config.AppConfig.ProfileCacheTTL),
		TokenTTL: config.AppConfig.TokenTTL,
	}
	notificationService := notification.NewDefaultNotificationService(repos.Notifications, repos.Handymen)

	resumes := tasks.NewAsynqResumeEnqueuer(cron.QueueRedisOpt())
	defer resumes.Close()

	bookingService := &booking.DefaultBookingService{
		Bookings:      repos.Bookings,
		Users:         repos.Users,
		Chats:         repos.Chats,
		Notifications: notificationService,
		Workflows:     repos.Workflows,
		Resumes:       resumes,
		EnforceAuth:   config.AppConfig.EnforceAuth,
	}
	messagingService := &messaging.DefaultMessagingService{
		Chats:       repos.Chats,
		Users:       repos.Users,
		Handymen:    repos.Handymen,
		EnforceAuth: config.AppConfig.EnforceAuth,
	}

	worker := cron.InitWorkflowWorker(bookingService)

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewUserHandler(userService),
		handlers.NewHandymanHandler(handymanService),
		handlers.NewBookingHandler(bookingService),
		handlers.NewMessagingHandler(messagingService),
		handlers.NewNotificationHandler(notificationService),
		handlers.NewAdminHandler(userService, handymanService),
	)

	routes.RegisterRoutes(router, handlerBundle, routes.Options{
		EnforceAuth: config.AppConfig.EnforceAuth,
		AdminToken:  config.AppConfig.AdminToken,
		BodyLimitMB: config.AppConfig.BodyLimitMB,
	})

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.Bool("enforceAuth", config.AppConfig.EnforceAuth))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	worker.Shutdown()
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
