package ehr

import (
	"net/http"
	"strconv"
	"time"

	"ehrbridge-service/internal/app/services/shared/ratelimiter"
	"ehrbridge-service/internal/pkg/constvars"
	"ehrbridge-service/internal/pkg/exceptions"
	"ehrbridge-service/internal/pkg/fhir_dto"
	"ehrbridge-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// ClientProvider hands out the currently active record client. The session
// usecase implements it; keeping the dependency this narrow avoids coupling
// the proxy to session state management.
type ClientProvider interface {
	Client() (RecordClient, error)
}

type RecordController struct {
	Log     *zap.Logger
	Clients ClientProvider
	Limiter *ratelimiter.RateLimiter
	MaxHits int
	Window  time.Duration
}

func NewRecordController(logger *zap.Logger, clients ClientProvider, limiter *ratelimiter.RateLimiter, maxHits int, window time.Duration) *RecordController {
	return &RecordController{
		Log:     logger,
		Clients: clients,
		Limiter: limiter,
		MaxHits: maxHits,
		Window:  window,
	}
}

// admit applies per-operation sliding-window admission. Rejections carry a
// Retry-After header so well-behaved callers can back off.
func (ctrl *RecordController) admit(w http.ResponseWriter, operation string) bool {
	if ctrl.Limiter.IsAllowed(operation, ctrl.MaxHits, ctrl.Window) {
		return true
	}

	retryAfter := ctrl.Limiter.RetryAfter(operation, ctrl.MaxHits, ctrl.Window)
	seconds := int(retryAfter.Round(time.Second).Seconds())
	if seconds < 1 {
		seconds = 1
	}
	w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(seconds))

	ctrl.Log.Warn("proxy operation rate limited",
		zap.String("operation", operation),
		zap.Duration("retry_after", retryAfter),
	)
	utils.BuildErrorResponse(ctrl.Log, w, exceptions.NewAPIError(constvars.ErrMsgTooManyRequests, constvars.StatusTooManyRequests, ""))
	return false
}

func (ctrl *RecordController) client(w http.ResponseWriter) (RecordClient, bool) {
	client, err := ctrl.Clients.Client()
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return nil, false
	}
	return client, true
}

func patientSearchParams(r *http.Request) *fhir_dto.PatientSearchParams {
	query := r.URL.Query()
	count, _ := strconv.Atoi(query.Get(constvars.SearchParamCount))
	offset, _ := strconv.Atoi(query.Get(constvars.SearchParamOffset))
	return &fhir_dto.PatientSearchParams{
		Name:       query.Get(constvars.SearchParamName),
		Identifier: query.Get(constvars.SearchParamIdentifier),
		Gender:     query.Get(constvars.SearchParamGender),
		Birthdate:  query.Get(constvars.SearchParamBirthdate),
		Count:      count,
		Offset:     offset,
	}
}

func appointmentSearchParams(r *http.Request) *fhir_dto.AppointmentSearchParams {
	query := r.URL.Query()
	count, _ := strconv.Atoi(query.Get(constvars.SearchParamCount))
	offset, _ := strconv.Atoi(query.Get(constvars.SearchParamOffset))
	return &fhir_dto.AppointmentSearchParams{
		Date:         query.Get(constvars.SearchParamDate),
		Patient:      query.Get(constvars.SearchParamPatient),
		Practitioner: query.Get(constvars.SearchParamPractition),
		Status:       query.Get(constvars.SearchParamStatus),
		Count:        count,
		Offset:       offset,
	}
}

func (ctrl *RecordController) validateSearch(w http.ResponseWriter, r *http.Request) bool {
	if result := utils.ValidateSearchParams(r.URL.Query()); !result.Valid {
		first := result.Errors[0]
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.NewValidationError(utils.FormatValidationErrors(result.Errors), first.Field))
		return false
	}
	return true
}

func (ctrl *RecordController) SearchPatients(w http.ResponseWriter, r *http.Request) {
	if !ctrl.admit(w, "patients.search") {
		return
	}
	if !ctrl.validateSearch(w, r) {
		return
	}
	client, ok := ctrl.client(w)
	if !ok {
		return
	}

	patients, total, err := client.SearchPatients(r.Context(), patientSearchParams(r))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponseWithTotal(w, constvars.StatusOK, "", total, patients)
}

func (ctrl *RecordController) GetPatient(w http.ResponseWriter, r *http.Request) {
	if !ctrl.admit(w, "patients.get") {
		return
	}
	client, ok := ctrl.client(w)
	if !ok {
		return
	}

	patient, err := client.GetPatient(r.Context(), chi.URLParam(r, "patientID"))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, "", patient)
}

func (ctrl *RecordController) CreatePatient(w http.ResponseWriter, r *http.Request) {
	if !ctrl.admit(w, "patients.create") {
		return
	}
	request := new(fhir_dto.Patient)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.NewAPIError(constvars.ErrMsgBadRequest, constvars.StatusBadRequest, ""))
		return
	}
	if result := utils.ValidatePatient(request); !result.Valid {
		first := result.Errors[0]
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.NewValidationError(utils.FormatValidationErrors(result.Errors), first.Field))
		return
	}
	client, ok := ctrl.client(w)
	if !ok {
		return
	}

	created, err := client.CreatePatient(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, "", created)
}

func (ctrl *RecordController) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	if !ctrl.admit(w, "patients.update") {
		return
	}
	request := new(fhir_dto.Patient)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.NewAPIError(constvars.ErrMsgBadRequest, constvars.StatusBadRequest, ""))
		return
	}
	if result := utils.ValidatePatient(request); !result.Valid {
		first := result.Errors[0]
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.NewValidationError(utils.FormatValidationErrors(result.Errors), first.Field))
		return
	}
	client, ok := ctrl.client(w)
	if !ok {
		return
	}

	updated, err := client.UpdatePatient(r.Context(), chi.URLParam(r, "patientID"), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, "", updated)
}

func (ctrl *RecordController) DeletePatient(w http.ResponseWriter, r *http.Request) {
	if !ctrl.admit(w, "patients.delete") {
		return
	}
	client, ok := ctrl.client(w)
	if !ok {
		return
	}

	if err := client.DeletePatient(r.Context(), chi.URLParam(r, "patientID")); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, "", nil)
}

func (ctrl *RecordController) SearchAppointments(w http.ResponseWriter, r *http.Request) {
	if !ctrl.admit(w, "appointments.search") {
		return
	}
	if !ctrl.validateSearch(w, r) {
		return
	}
	client, ok := ctrl.client(w)
	if !ok {
		return
	}

	appointments, total, err := client.SearchAppointments(r.Context(), appointmentSearchParams(r))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponseWithTotal(w, constvars.StatusOK, "", total, appointments)
}

func (ctrl *RecordController) GetAppointment(w http.ResponseWriter, r *http.Request) {
	if !ctrl.admit(w, "appointments.get") {
		return
	}
	client, ok := ctrl.client(w)
	if !ok {
		return
	}

	appointment, err := client.GetAppointment(r.Context(), chi.URLParam(r, "appointmentID"))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, "", appointment)
}

func (ctrl *RecordController) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	if !ctrl.admit(w, "appointments.create") {
		return
	}
	request := new(fhir_dto.Appointment)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.NewAPIError(constvars.ErrMsgBadRequest, constvars.StatusBadRequest, ""))
		return
	}
	client, ok := ctrl.client(w)
	if !ok {
		return
	}

	created, err := client.CreateAppointment(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, "", created)
}

func (ctrl *RecordController) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	if !ctrl.admit(w, "appointments.update") {
		return
	}
	request := new(fhir_dto.Appointment)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.NewAPIError(constvars.ErrMsgBadRequest, constvars.StatusBadRequest, ""))
		return
	}
	client, ok := ctrl.client(w)
	if !ok {
		return
	}

	updated, err := client.UpdateAppointment(r.Context(), chi.URLParam(r, "appointmentID"), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, "", updated)
}

func (ctrl *RecordController) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	if !ctrl.admit(w, "appointments.delete") {
		return
	}
	client, ok := ctrl.client(w)
	if !ok {
		return
	}

	if err := client.DeleteAppointment(r.Context(), chi.URLParam(r, "appointmentID")); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, "", nil)
}

// listForPatient factors the shared shape of the per-patient clinical and
// billing list endpoints.
func listForPatient[T any](ctrl *RecordController, w http.ResponseWriter, r *http.Request, operation string,
	list func(RecordClient, string) ([]T, int, error)) {
	if !ctrl.admit(w, operation) {
		return
	}
	client, ok := ctrl.client(w)
	if !ok {
		return
	}

	items, total, err := list(client, chi.URLParam(r, "patientID"))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponseWithTotal(w, constvars.StatusOK, "", total, items)
}

func (ctrl *RecordController) ListObservations(w http.ResponseWriter, r *http.Request) {
	listForPatient(ctrl, w, r, "observations.list", func(c RecordClient, patientID string) ([]fhir_dto.Observation, int, error) {
		return c.ListObservations(r.Context(), patientID)
	})
}

func (ctrl *RecordController) CreateObservation(w http.ResponseWriter, r *http.Request) {
	if !ctrl.admit(w, "observations.create") {
		return
	}
	request := new(fhir_dto.Observation)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.NewAPIError(constvars.ErrMsgBadRequest, constvars.StatusBadRequest, ""))
		return
	}
	client, ok := ctrl.client(w)
	if !ok {
		return
	}

	created, err := client.CreateObservation(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, "", created)
}

func (ctrl *RecordController) ListConditions(w http.ResponseWriter, r *http.Request) {
	listForPatient(ctrl, w, r, "conditions.list", func(c RecordClient, patientID string) ([]fhir_dto.Condition, int, error) {
		return c.ListConditions(r.Context(), patientID)
	})
}

func (ctrl *RecordController) CreateCondition(w http.ResponseWriter, r *http.Request) {
	if !ctrl.admit(w, "conditions.create") {
		return
	}
	request := new(fhir_dto.Condition)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.NewAPIError(constvars.ErrMsgBadRequest, constvars.StatusBadRequest, ""))
		return
	}
	client, ok := ctrl.client(w)
	if !ok {
		return
	}

	created, err := client.CreateCondition(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, "", created)
}

func (ctrl *RecordController) ListMedicationRequests(w http.ResponseWriter, r *http.Request) {
	listForPatient(ctrl, w, r, "medication-requests.list", func(c RecordClient, patientID string) ([]fhir_dto.MedicationRequest, int, error) {
		return c.ListMedicationRequests(r.Context(), patientID)
	})
}

func (ctrl *RecordController) CreateMedicationRequest(w http.ResponseWriter, r *http.Request) {
	if !ctrl.admit(w, "medication-requests.create") {
		return
	}
	request := new(fhir_dto.MedicationRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.NewAPIError(constvars.ErrMsgBadRequest, constvars.StatusBadRequest, ""))
		return
	}
	client, ok := ctrl.client(w)
	if !ok {
		return
	}

	created, err := client.CreateMedicationRequest(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, "", created)
}

func (ctrl *RecordController) ListDiagnosticReports(w http.ResponseWriter, r *http.Request) {
	listForPatient(ctrl, w, r, "diagnostic-reports.list", func(c RecordClient, patientID string) ([]fhir_dto.DiagnosticReport, int, error) {
		return c.ListDiagnosticReports(r.Context(), patientID)
	})
}

func (ctrl *RecordController) ListAllergies(w http.ResponseWriter, r *http.Request) {
	listForPatient(ctrl, w, r, "allergies.list", func(c RecordClient, patientID string) ([]fhir_dto.AllergyIntolerance, int, error) {
		return c.ListAllergies(r.Context(), patientID)
	})
}

func (ctrl *RecordController) CreateAllergy(w http.ResponseWriter, r *http.Request) {
	if !ctrl.admit(w, "allergies.create") {
		return
	}
	request := new(fhir_dto.AllergyIntolerance)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.NewAPIError(constvars.ErrMsgBadRequest, constvars.StatusBadRequest, ""))
		return
	}
	client, ok := ctrl.client(w)
	if !ok {
		return
	}

	created, err := client.CreateAllergy(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, "", created)
}

func (ctrl *RecordController) ListImmunizations(w http.ResponseWriter, r *http.Request) {
	listForPatient(ctrl, w, r, "immunizations.list", func(c RecordClient, patientID string) ([]fhir_dto.Immunization, int, error) {
		return c.ListImmunizations(r.Context(), patientID)
	})
}

func (ctrl *RecordController) ListCoverages(w http.ResponseWriter, r *http.Request) {
	listForPatient(ctrl, w, r, "coverages.list", func(c RecordClient, patientID string) ([]fhir_dto.Coverage, int, error) {
		return c.ListCoverages(r.Context(), patientID)
	})
}

func (ctrl *RecordController) ListClaims(w http.ResponseWriter, r *http.Request) {
	listForPatient(ctrl, w, r, "claims.list", func(c RecordClient, patientID string) ([]fhir_dto.Claim, int, error) {
		return c.ListClaims(r.Context(), patientID)
	})
}

func (ctrl *RecordController) SearchPractitioners(w http.ResponseWriter, r *http.Request) {
	if !ctrl.admit(w, "practitioners.search") {
		return
	}
	client, ok := ctrl.client(w)
	if !ok {
		return
	}

	practitioners, total, err := client.SearchPractitioners(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponseWithTotal(w, constvars.StatusOK, "", total, practitioners)
}
