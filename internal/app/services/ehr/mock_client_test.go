package ehr

import (
	"context"
	"strings"
	"testing"
	"time"

	"ehrbridge-service/internal/pkg/constvars"
	"ehrbridge-service/internal/pkg/exceptions"
	"ehrbridge-service/internal/pkg/fhir_dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMockClient() RecordClient {
	return NewMockRecordClientWithDelay(0)
}

func TestMockRecordClient_SearchPatients(t *testing.T) {
	ctx := context.Background()

	t.Run("name filter matches given and family names case-insensitively", func(t *testing.T) {
		client := newTestMockClient()

		patients, total, err := client.SearchPatients(ctx, &fhir_dto.PatientSearchParams{Name: "john"})
		require.NoError(t, err)

		// "john" appears in John Doe's given name and Robert Johnson's family name.
		assert.Equal(t, 2, total)
		require.Len(t, patients, 2)
		assert.Equal(t, "patient-001", patients[0].ID)
		assert.Equal(t, "patient-003", patients[1].ID)
	})

	t.Run("gender and birthdate filters are exact", func(t *testing.T) {
		client := newTestMockClient()

		patients, total, err := client.SearchPatients(ctx, &fhir_dto.PatientSearchParams{Gender: constvars.GenderFemale})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, patients, 1)
		assert.Equal(t, "patient-002", patients[0].ID)

		patients, total, err = client.SearchPatients(ctx, &fhir_dto.PatientSearchParams{Birthdate: "1978-12-03"})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, patients, 1)
		assert.Equal(t, "patient-003", patients[0].ID)
	})

	t.Run("total reports matches before pagination", func(t *testing.T) {
		client := newTestMockClient()

		patients, total, err := client.SearchPatients(ctx, &fhir_dto.PatientSearchParams{Count: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, patients, 2)

		patients, total, err = client.SearchPatients(ctx, &fhir_dto.PatientSearchParams{Count: 2, Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, patients, 1)
		assert.Equal(t, "patient-003", patients[0].ID)
	})

	t.Run("offset past the end yields an empty page", func(t *testing.T) {
		client := newTestMockClient()

		patients, total, err := client.SearchPatients(ctx, &fhir_dto.PatientSearchParams{Offset: 10})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Empty(t, patients)
	})
}

func TestMockRecordClient_PatientLifecycle(t *testing.T) {
	ctx := context.Background()
	client := newTestMockClient()

	created, err := client.CreatePatient(ctx, &fhir_dto.Patient{
		Name:   []fhir_dto.HumanName{{Family: "Nguyen", Given: []string{"Linh"}}},
		Gender: constvars.GenderFemale,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.ID, constvars.MockIDPrefix))
	assert.Equal(t, constvars.ResourcePatient, created.ResourceType)

	fetched, err := client.GetPatient(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nguyen", fetched.Name[0].Family)

	fetched.BirthDate = "1992-03-10"
	updated, err := client.UpdatePatient(ctx, created.ID, fetched)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "1992-03-10", updated.BirthDate)

	require.NoError(t, client.DeletePatient(ctx, created.ID))

	_, err = client.GetPatient(ctx, created.ID)
	var ehrErr *exceptions.EHRError
	require.ErrorAs(t, err, &ehrErr)
	assert.Equal(t, "Patient not found", ehrErr.Message)
	assert.Equal(t, constvars.StatusNotFound, ehrErr.Status)
}

func TestMockRecordClient_DeleteAbsentPatient(t *testing.T) {
	ctx := context.Background()
	client := newTestMockClient()

	err := client.DeletePatient(ctx, "no-such-patient")
	var ehrErr *exceptions.EHRError
	require.ErrorAs(t, err, &ehrErr)
	assert.Equal(t, exceptions.KindAPI, ehrErr.Kind)
	assert.Equal(t, constvars.StatusNotFound, ehrErr.Status)

	// The collection is unchanged after the failed delete.
	_, total, searchErr := client.SearchPatients(ctx, &fhir_dto.PatientSearchParams{})
	require.NoError(t, searchErr)
	assert.Equal(t, 3, total)
}

func TestMockRecordClient_SearchAppointments(t *testing.T) {
	ctx := context.Background()

	t.Run("date filter matches the start prefix", func(t *testing.T) {
		client := newTestMockClient()

		appointments, total, err := client.SearchAppointments(ctx, &fhir_dto.AppointmentSearchParams{Date: "2024-01-15"})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, appointments, 1)
		assert.Equal(t, "appointment-001", appointments[0].ID)
	})

	t.Run("patient filter matches participant references", func(t *testing.T) {
		client := newTestMockClient()

		appointments, total, err := client.SearchAppointments(ctx, &fhir_dto.AppointmentSearchParams{Patient: "patient-002"})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, appointments, 1)
		assert.Equal(t, "appointment-002", appointments[0].ID)
	})

	t.Run("status filter is exact", func(t *testing.T) {
		client := newTestMockClient()

		appointments, total, err := client.SearchAppointments(ctx, &fhir_dto.AppointmentSearchParams{Status: constvars.FhirAppointmentStatusBooked})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, appointments, 1)
		assert.Equal(t, "appointment-001", appointments[0].ID)
	})
}

func TestMockRecordClient_ClinicalListsScopeToPatient(t *testing.T) {
	ctx := context.Background()
	client := newTestMockClient()

	observations, total, err := client.ListObservations(ctx, "patient-001")
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, observations, 2)

	observations, total, err = client.ListObservations(ctx, "patient-002")
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, observations)

	conditions, total, err := client.ListConditions(ctx, "patient-001")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Hypertension", conditions[0].Code.Text)

	allergies, total, err := client.ListAllergies(ctx, "patient-001")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "high", allergies[0].Criticality)

	immunizations, total, err := client.ListImmunizations(ctx, "patient-001")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "completed", immunizations[0].Status)
}

func TestMockRecordClient_BillingAndPractitioners(t *testing.T) {
	ctx := context.Background()
	client := newTestMockClient()

	coverages, total, err := client.ListCoverages(ctx, "patient-002")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Patient/patient-002", coverages[0].Beneficiary.Reference)

	claims, total, err := client.ListClaims(ctx, "patient-002")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.NotNil(t, claims[0].Total)
	assert.Equal(t, 250.00, claims[0].Total.Value)

	practitioners, total, err := client.SearchPractitioners(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "Wilson", practitioners[0].Name[0].Family)
}

func TestMockRecordClient_CancelledContext(t *testing.T) {
	client := NewMockRecordClientWithDelay(constvars.DefaultMockDelay * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetPatient(ctx, "patient-001")
	var ehrErr *exceptions.EHRError
	require.ErrorAs(t, err, &ehrErr)
	assert.Equal(t, exceptions.KindConnection, ehrErr.Kind)
}
