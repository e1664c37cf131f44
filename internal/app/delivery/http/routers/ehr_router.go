package routers

import (
	"ehrbridge-service/internal/app/services/ehr"

	"github.com/go-chi/chi/v5"
)

func attachRecordRoutes(router chi.Router, recordController *ehr.RecordController) {
	router.Route("/patients", func(r chi.Router) {
		r.Get("/", recordController.SearchPatients)
		r.Post("/", recordController.CreatePatient)
		r.Route("/{patientID}", func(r chi.Router) {
			r.Get("/", recordController.GetPatient)
			r.Put("/", recordController.UpdatePatient)
			r.Delete("/", recordController.DeletePatient)

			r.Get("/observations", recordController.ListObservations)
			r.Get("/conditions", recordController.ListConditions)
			r.Get("/medication-requests", recordController.ListMedicationRequests)
			r.Get("/diagnostic-reports", recordController.ListDiagnosticReports)
			r.Get("/allergies", recordController.ListAllergies)
			r.Get("/immunizations", recordController.ListImmunizations)
			r.Get("/coverages", recordController.ListCoverages)
			r.Get("/claims", recordController.ListClaims)
		})
	})

	router.Route("/appointments", func(r chi.Router) {
		r.Get("/", recordController.SearchAppointments)
		r.Post("/", recordController.CreateAppointment)
		r.Route("/{appointmentID}", func(r chi.Router) {
			r.Get("/", recordController.GetAppointment)
			r.Put("/", recordController.UpdateAppointment)
			r.Delete("/", recordController.DeleteAppointment)
		})
	})

	router.Post("/observations", recordController.CreateObservation)
	router.Post("/conditions", recordController.CreateCondition)
	router.Post("/medication-requests", recordController.CreateMedicationRequest)
	router.Post("/allergies", recordController.CreateAllergy)

	router.Get("/practitioners", recordController.SearchPractitioners)
}
