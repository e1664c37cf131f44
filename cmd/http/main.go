package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ehrbridge-service/internal/app/config"
	"ehrbridge-service/internal/app/delivery/http/middlewares"
	"ehrbridge-service/internal/app/delivery/http/routers"
	"ehrbridge-service/internal/app/drivers/database"
	"ehrbridge-service/internal/app/drivers/logger"
	"ehrbridge-service/internal/app/services/auth"
	"ehrbridge-service/internal/app/services/ehr"
	"ehrbridge-service/internal/app/services/session"
	"ehrbridge-service/internal/app/services/shared/ratelimiter"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	redisClient := database.NewRedisClient(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		Redis:          redisClient,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	bootstrapTheApp(bootstrap)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", internalConfig.App.Address, internalConfig.App.Port),
		Handler: chiRouter,
	}

	go func() {
		log.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Info("shutting down, waiting for in-flight requests")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}

	log.Info("server exiting")
}

func bootstrapTheApp(bootstrap *config.Bootstrap) {
	log := bootstrap.Logger
	internalConfig := bootstrap.InternalConfig

	mw := middlewares.NewMiddlewares(log, internalConfig)

	var settingsStore session.SettingsStore
	if bootstrap.Redis != nil {
		settingsStore = session.NewRedisSettingsStore(bootstrap.Redis, internalConfig.EHR.SettingsSecret)
	} else {
		log.Warn("no Redis configured, connection config will not survive restarts")
		settingsStore = session.NewMemorySettingsStore()
	}

	// Session
	sessionUsecase := session.NewSessionUsecase(log, settingsStore)
	sessionController := session.NewSessionController(log, sessionUsecase)

	restoreCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sessionUsecase.Restore(restoreCtx); err != nil {
		log.Warn("could not restore persisted EHR connection", zap.Error(err))
	}

	// Auth
	authUsecase := auth.NewAuthUsecase(log, internalConfig)
	authController := auth.NewAuthController(log, authUsecase)

	// Record proxy
	recordController := ehr.NewRecordController(
		log,
		sessionUsecase,
		ratelimiter.NewRateLimiter(),
		internalConfig.EHR.ProxyMaxRequests,
		time.Duration(internalConfig.EHR.ProxyWindowInSeconds)*time.Second,
	)

	routers.SetupRoutes(bootstrap.Router, internalConfig, mw, sessionController, authController, recordController)
}
