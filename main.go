// File: medledger/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medledger/config"
	"medledger/cron"
	"medledger/database"
	appointmentRepo "medledger/database/repository/appointment"
	doctorRepo "medledger/database/repository/doctor"
	financeRepo "medledger/database/repository/finance"
	prescriptionRepo "medledger/database/repository/prescription"
	"medledger/handlers"
	"medledger/middleware"
	"medledger/routes"
	"medledger/services/notification"
	"medledger/services/reconcile"
	"medledger/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSnapshotCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	docRepo := doctorRepo.NewMongoDoctorRepo()
	rxRepo := prescriptionRepo.NewMongoPrescriptionRepo()
	finRepo := financeRepo.NewMongoFinanceRepo()

	// services.
	notificationService, err := notification.NewDefaultNotificationService(docRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	noticeQueue := notification.NewAsynqNoticeQueue()
	defer noticeQueue.Close()

	reconcileService := reconcile.NewDefaultReconcileService(
		apptRepo,
		docRepo,
		rxRepo,
		finRepo,
		noticeQueue,
		utils.GetSnapshotCacheClient(),
	)

	// Build the initial revenue view before serving; a degraded snapshot is fine, a
	// missing one is not.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := reconcileService.Refresh(startupCtx); err != nil {
		logger.Sugar().Warnf("main: initial refresh degraded: %v", err)
	}
	cancelStartup()

	// Background worker: settlement notices + periodic refresh.
	cron.InitReconcileWorker(notificationService, reconcileService)

	reconcileHandler := handlers.NewReconcileHandler(reconcileService)
	routes.RegisterRoutes(router, reconcileHandler)

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
