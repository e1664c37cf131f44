package ehr

import (
	"context"

	"ehrbridge-service/internal/pkg/fhir_dto"
)

// RecordClient is the single operation contract shared by the live FHIR client
// and the in-memory demo client. Search operations return the matched page and
// the total match count before pagination. Implementations never panic; every
// failure comes back as a classified *exceptions.EHRError.
type RecordClient interface {
	// Tokens returns a snapshot of the access/refresh token pair the client
	// currently holds. The live client mutates its pair on refresh, so callers
	// must read through this accessor rather than the config they connected
	// with. The demo client holds no tokens and returns empty strings.
	Tokens() (accessToken, refreshToken string)

	SearchPatients(ctx context.Context, params *fhir_dto.PatientSearchParams) ([]fhir_dto.Patient, int, error)
	GetPatient(ctx context.Context, patientID string) (*fhir_dto.Patient, error)
	CreatePatient(ctx context.Context, patient *fhir_dto.Patient) (*fhir_dto.Patient, error)
	UpdatePatient(ctx context.Context, patientID string, patient *fhir_dto.Patient) (*fhir_dto.Patient, error)
	DeletePatient(ctx context.Context, patientID string) error

	SearchAppointments(ctx context.Context, params *fhir_dto.AppointmentSearchParams) ([]fhir_dto.Appointment, int, error)
	GetAppointment(ctx context.Context, appointmentID string) (*fhir_dto.Appointment, error)
	CreateAppointment(ctx context.Context, appointment *fhir_dto.Appointment) (*fhir_dto.Appointment, error)
	UpdateAppointment(ctx context.Context, appointmentID string, appointment *fhir_dto.Appointment) (*fhir_dto.Appointment, error)
	DeleteAppointment(ctx context.Context, appointmentID string) error

	ListObservations(ctx context.Context, patientID string) ([]fhir_dto.Observation, int, error)
	CreateObservation(ctx context.Context, observation *fhir_dto.Observation) (*fhir_dto.Observation, error)
	ListConditions(ctx context.Context, patientID string) ([]fhir_dto.Condition, int, error)
	CreateCondition(ctx context.Context, condition *fhir_dto.Condition) (*fhir_dto.Condition, error)
	ListMedicationRequests(ctx context.Context, patientID string) ([]fhir_dto.MedicationRequest, int, error)
	CreateMedicationRequest(ctx context.Context, medicationRequest *fhir_dto.MedicationRequest) (*fhir_dto.MedicationRequest, error)
	ListDiagnosticReports(ctx context.Context, patientID string) ([]fhir_dto.DiagnosticReport, int, error)
	ListAllergies(ctx context.Context, patientID string) ([]fhir_dto.AllergyIntolerance, int, error)
	CreateAllergy(ctx context.Context, allergy *fhir_dto.AllergyIntolerance) (*fhir_dto.AllergyIntolerance, error)
	ListImmunizations(ctx context.Context, patientID string) ([]fhir_dto.Immunization, int, error)

	ListCoverages(ctx context.Context, patientID string) ([]fhir_dto.Coverage, int, error)
	ListClaims(ctx context.Context, patientID string) ([]fhir_dto.Claim, int, error)
	SearchPractitioners(ctx context.Context) ([]fhir_dto.Practitioner, int, error)
}
