package routers

import (
	"ehrbridge-service/internal/app/services/auth"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, authController *auth.AuthController) {
	router.Post("/token", authController.ExchangeToken)
}
