package ehr

import (
	"context"
	"strings"
	"sync"
	"time"

	"ehrbridge-service/internal/pkg/constvars"
	"ehrbridge-service/internal/pkg/exceptions"
	"ehrbridge-service/internal/pkg/fhir_dto"

	"github.com/google/uuid"
)

// mockRecordClient serves the demo session from in-memory collections seeded
// with fixed records. It honors the same filter, pagination, and error
// semantics as the live client so callers cannot tell the two apart.
type mockRecordClient struct {
	// mu guards the mutable collections. Read-only seed lists are rebuilt per
	// call and need no guard.
	mu           sync.Mutex
	patients     []fhir_dto.Patient
	appointments []fhir_dto.Appointment

	delay time.Duration
}

// NewMockRecordClient returns a demo client with the default simulated
// latency applied to every operation.
func NewMockRecordClient() RecordClient {
	return NewMockRecordClientWithDelay(constvars.DefaultMockDelay * time.Millisecond)
}

// NewMockRecordClientWithDelay allows tests to drop the simulated latency.
func NewMockRecordClientWithDelay(delay time.Duration) RecordClient {
	return &mockRecordClient{
		patients:     seedPatients(),
		appointments: seedAppointments(),
		delay:        delay,
	}
}

// wait simulates network latency while still honoring cancellation.
// Tokens is always empty: the demo client never authenticates.
func (c *mockRecordClient) Tokens() (string, string) {
	return "", ""
}

func (c *mockRecordClient) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(c.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *mockRecordClient) generateID() string {
	return constvars.MockIDPrefix + uuid.NewString()
}

func matchesName(patient *fhir_dto.Patient, search string) bool {
	name := patient.PrimaryName()
	if name == nil {
		return false
	}
	fullName := strings.ToLower(strings.Join(name.Given, " ") + " " + name.Family)
	return strings.Contains(fullName, strings.ToLower(search))
}

func paginate[T any](items []T, count, offset int) []T {
	if count <= 0 {
		count = constvars.SearchDefaultCount
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + count
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (c *mockRecordClient) SearchPatients(ctx context.Context, params *fhir_dto.PatientSearchParams) ([]fhir_dto.Patient, int, error) {
	if err := c.wait(ctx); err != nil {
		return nil, 0, exceptions.HandleAPIError(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := make([]fhir_dto.Patient, 0, len(c.patients))
	for _, patient := range c.patients {
		if params.Name != "" && !matchesName(&patient, params.Name) {
			continue
		}
		if params.Identifier != "" && !strings.Contains(patient.ID, params.Identifier) {
			continue
		}
		if params.Gender != "" && patient.Gender != params.Gender {
			continue
		}
		if params.Birthdate != "" && patient.BirthDate != params.Birthdate {
			continue
		}
		filtered = append(filtered, patient)
	}

	return paginate(filtered, params.Count, params.Offset), len(filtered), nil
}

func (c *mockRecordClient) GetPatient(ctx context.Context, patientID string) (*fhir_dto.Patient, error) {
	if err := c.wait(ctx); err != nil {
		return nil, exceptions.HandleAPIError(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.patients {
		if c.patients[i].ID == patientID {
			patient := c.patients[i]
			return &patient, nil
		}
	}
	return nil, exceptions.NotFound(constvars.ResourcePatient)
}

func (c *mockRecordClient) CreatePatient(ctx context.Context, patient *fhir_dto.Patient) (*fhir_dto.Patient, error) {
	if err := c.wait(ctx); err != nil {
		return nil, exceptions.HandleAPIError(err)
	}

	created := *patient
	created.ID = c.generateID()
	created.ResourceType = constvars.ResourcePatient

	c.mu.Lock()
	c.patients = append(c.patients, created)
	c.mu.Unlock()

	return &created, nil
}

func (c *mockRecordClient) UpdatePatient(ctx context.Context, patientID string, patient *fhir_dto.Patient) (*fhir_dto.Patient, error) {
	if err := c.wait(ctx); err != nil {
		return nil, exceptions.HandleAPIError(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.patients {
		if c.patients[i].ID == patientID {
			updated := *patient
			updated.ID = patientID
			updated.ResourceType = constvars.ResourcePatient
			c.patients[i] = updated
			return &updated, nil
		}
	}
	return nil, exceptions.NotFound(constvars.ResourcePatient)
}

func (c *mockRecordClient) DeletePatient(ctx context.Context, patientID string) error {
	if err := c.wait(ctx); err != nil {
		return exceptions.HandleAPIError(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.patients {
		if c.patients[i].ID == patientID {
			c.patients = append(c.patients[:i], c.patients[i+1:]...)
			return nil
		}
	}
	return exceptions.NotFound(constvars.ResourcePatient)
}

func (c *mockRecordClient) SearchAppointments(ctx context.Context, params *fhir_dto.AppointmentSearchParams) ([]fhir_dto.Appointment, int, error) {
	if err := c.wait(ctx); err != nil {
		return nil, 0, exceptions.HandleAPIError(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := make([]fhir_dto.Appointment, 0, len(c.appointments))
	for _, appointment := range c.appointments {
		if params.Date != "" && !strings.HasPrefix(appointment.Start, params.Date) {
			continue
		}
		if params.Patient != "" && !appointmentHasParticipant(&appointment, params.Patient) {
			continue
		}
		if params.Status != "" && appointment.Status != params.Status {
			continue
		}
		filtered = append(filtered, appointment)
	}

	return paginate(filtered, params.Count, params.Offset), len(filtered), nil
}

func appointmentHasParticipant(appointment *fhir_dto.Appointment, participantID string) bool {
	for _, participant := range appointment.Participant {
		if strings.Contains(participant.Actor.Reference, participantID) {
			return true
		}
	}
	return false
}

func (c *mockRecordClient) GetAppointment(ctx context.Context, appointmentID string) (*fhir_dto.Appointment, error) {
	if err := c.wait(ctx); err != nil {
		return nil, exceptions.HandleAPIError(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.appointments {
		if c.appointments[i].ID == appointmentID {
			appointment := c.appointments[i]
			return &appointment, nil
		}
	}
	return nil, exceptions.NotFound(constvars.ResourceAppointment)
}

func (c *mockRecordClient) CreateAppointment(ctx context.Context, appointment *fhir_dto.Appointment) (*fhir_dto.Appointment, error) {
	if err := c.wait(ctx); err != nil {
		return nil, exceptions.HandleAPIError(err)
	}

	created := *appointment
	created.ID = c.generateID()
	created.ResourceType = constvars.ResourceAppointment

	c.mu.Lock()
	c.appointments = append(c.appointments, created)
	c.mu.Unlock()

	return &created, nil
}

func (c *mockRecordClient) UpdateAppointment(ctx context.Context, appointmentID string, appointment *fhir_dto.Appointment) (*fhir_dto.Appointment, error) {
	if err := c.wait(ctx); err != nil {
		return nil, exceptions.HandleAPIError(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.appointments {
		if c.appointments[i].ID == appointmentID {
			updated := *appointment
			updated.ID = appointmentID
			updated.ResourceType = constvars.ResourceAppointment
			c.appointments[i] = updated
			return &updated, nil
		}
	}
	return nil, exceptions.NotFound(constvars.ResourceAppointment)
}

func (c *mockRecordClient) DeleteAppointment(ctx context.Context, appointmentID string) error {
	if err := c.wait(ctx); err != nil {
		return exceptions.HandleAPIError(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.appointments {
		if c.appointments[i].ID == appointmentID {
			c.appointments = append(c.appointments[:i], c.appointments[i+1:]...)
			return nil
		}
	}
	return exceptions.NotFound(constvars.ResourceAppointment)
}

func (c *mockRecordClient) ListObservations(ctx context.Context, patientID string) ([]fhir_dto.Observation, int, error) {
	if err := c.wait(ctx); err != nil {
		return nil, 0, exceptions.HandleAPIError(err)
	}

	ref := "Patient/" + patientID
	matched := make([]fhir_dto.Observation, 0)
	for _, observation := range seedObservations() {
		if observation.Subject.Reference == ref {
			matched = append(matched, observation)
		}
	}
	return matched, len(matched), nil
}

func (c *mockRecordClient) CreateObservation(ctx context.Context, observation *fhir_dto.Observation) (*fhir_dto.Observation, error) {
	if err := c.wait(ctx); err != nil {
		return nil, exceptions.HandleAPIError(err)
	}

	created := *observation
	created.ID = c.generateID()
	created.ResourceType = constvars.ResourceObservation
	return &created, nil
}

func (c *mockRecordClient) ListConditions(ctx context.Context, patientID string) ([]fhir_dto.Condition, int, error) {
	if err := c.wait(ctx); err != nil {
		return nil, 0, exceptions.HandleAPIError(err)
	}

	ref := "Patient/" + patientID
	matched := make([]fhir_dto.Condition, 0)
	for _, condition := range seedConditions() {
		if condition.Subject.Reference == ref {
			matched = append(matched, condition)
		}
	}
	return matched, len(matched), nil
}

func (c *mockRecordClient) CreateCondition(ctx context.Context, condition *fhir_dto.Condition) (*fhir_dto.Condition, error) {
	if err := c.wait(ctx); err != nil {
		return nil, exceptions.HandleAPIError(err)
	}

	created := *condition
	created.ID = c.generateID()
	created.ResourceType = constvars.ResourceCondition
	return &created, nil
}

func (c *mockRecordClient) ListMedicationRequests(ctx context.Context, patientID string) ([]fhir_dto.MedicationRequest, int, error) {
	if err := c.wait(ctx); err != nil {
		return nil, 0, exceptions.HandleAPIError(err)
	}

	ref := "Patient/" + patientID
	matched := make([]fhir_dto.MedicationRequest, 0)
	for _, medicationRequest := range seedMedicationRequests() {
		if medicationRequest.Subject.Reference == ref {
			matched = append(matched, medicationRequest)
		}
	}
	return matched, len(matched), nil
}

func (c *mockRecordClient) CreateMedicationRequest(ctx context.Context, medicationRequest *fhir_dto.MedicationRequest) (*fhir_dto.MedicationRequest, error) {
	if err := c.wait(ctx); err != nil {
		return nil, exceptions.HandleAPIError(err)
	}

	created := *medicationRequest
	created.ID = c.generateID()
	created.ResourceType = constvars.ResourceMedicationRequest
	return &created, nil
}

func (c *mockRecordClient) ListDiagnosticReports(ctx context.Context, patientID string) ([]fhir_dto.DiagnosticReport, int, error) {
	if err := c.wait(ctx); err != nil {
		return nil, 0, exceptions.HandleAPIError(err)
	}

	reports := seedDiagnosticReports(patientID)
	return reports, len(reports), nil
}

func (c *mockRecordClient) ListAllergies(ctx context.Context, patientID string) ([]fhir_dto.AllergyIntolerance, int, error) {
	if err := c.wait(ctx); err != nil {
		return nil, 0, exceptions.HandleAPIError(err)
	}

	ref := "Patient/" + patientID
	matched := make([]fhir_dto.AllergyIntolerance, 0)
	for _, allergy := range seedAllergies() {
		if allergy.Patient.Reference == ref {
			matched = append(matched, allergy)
		}
	}
	return matched, len(matched), nil
}

func (c *mockRecordClient) CreateAllergy(ctx context.Context, allergy *fhir_dto.AllergyIntolerance) (*fhir_dto.AllergyIntolerance, error) {
	if err := c.wait(ctx); err != nil {
		return nil, exceptions.HandleAPIError(err)
	}

	created := *allergy
	created.ID = c.generateID()
	created.ResourceType = constvars.ResourceAllergyIntolerance
	return &created, nil
}

func (c *mockRecordClient) ListImmunizations(ctx context.Context, patientID string) ([]fhir_dto.Immunization, int, error) {
	if err := c.wait(ctx); err != nil {
		return nil, 0, exceptions.HandleAPIError(err)
	}

	ref := "Patient/" + patientID
	matched := make([]fhir_dto.Immunization, 0)
	for _, immunization := range seedImmunizations() {
		if immunization.Patient.Reference == ref {
			matched = append(matched, immunization)
		}
	}
	return matched, len(matched), nil
}

func (c *mockRecordClient) ListCoverages(ctx context.Context, patientID string) ([]fhir_dto.Coverage, int, error) {
	if err := c.wait(ctx); err != nil {
		return nil, 0, exceptions.HandleAPIError(err)
	}

	coverages := seedCoverages(patientID)
	return coverages, len(coverages), nil
}

func (c *mockRecordClient) ListClaims(ctx context.Context, patientID string) ([]fhir_dto.Claim, int, error) {
	if err := c.wait(ctx); err != nil {
		return nil, 0, exceptions.HandleAPIError(err)
	}

	claims := seedClaims(patientID)
	return claims, len(claims), nil
}

func (c *mockRecordClient) SearchPractitioners(ctx context.Context) ([]fhir_dto.Practitioner, int, error) {
	if err := c.wait(ctx); err != nil {
		return nil, 0, exceptions.HandleAPIError(err)
	}

	practitioners := seedPractitioners()
	return practitioners, len(practitioners), nil
}
