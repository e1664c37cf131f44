package routers

import (
	"fmt"
	"time"

	"ehrbridge-service/internal/app/config"
	"ehrbridge-service/internal/app/delivery/http/middlewares"
	"ehrbridge-service/internal/app/services/auth"
	"ehrbridge-service/internal/app/services/ehr"
	"ehrbridge-service/internal/app/services/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	mw *middlewares.Middlewares,
	sessionController *session.SessionController,
	authController *auth.AuthController,
	recordController *ehr.RecordController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link", "Retry-After", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	// Coarse per-IP limiting at the edge; the record proxy applies its own
	// per-operation sliding window on top.
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Duration(internalConfig.App.MaxTimeRequestsPerSeconds)*time.Second)
	router.Use(rateLimiter)

	router.Use(mw.RequestIDMiddleware)
	router.Use(mw.Logging(mw.Log))

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/session", func(r chi.Router) {
				attachSessionRoutes(r, sessionController)
			})

			r.Route("/auth", func(r chi.Router) {
				attachAuthRoutes(r, authController)
			})

			r.Route("/ehr", func(r chi.Router) {
				attachRecordRoutes(r, recordController)
			})
		})
	})
}
