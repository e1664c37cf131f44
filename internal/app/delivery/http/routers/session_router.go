package routers

import (
	"ehrbridge-service/internal/app/services/session"

	"github.com/go-chi/chi/v5"
)

func attachSessionRoutes(router chi.Router, sessionController *session.SessionController) {
	router.Post("/connect", sessionController.Connect)
	router.Post("/disconnect", sessionController.Disconnect)
	router.Post("/test", sessionController.TestConnection)
	router.Post("/demo", sessionController.SwitchToDemo)
	router.Get("/status", sessionController.Status)
}
