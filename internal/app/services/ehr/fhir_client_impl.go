package ehr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"ehrbridge-service/internal/pkg/constvars"
	"ehrbridge-service/internal/pkg/dto/requests"
	"ehrbridge-service/internal/pkg/exceptions"
	"ehrbridge-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type fhirRecordClient struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger

	// tokenMu guards the held token pair. Concurrent requests that read the
	// token before a refresh completes may each trigger their own refresh;
	// that duplicate-refresh race is tolerated.
	tokenMu sync.Mutex
	config  requests.EHRConnectionConfig
}

// NewFhirRecordClient constructs the live client for the configured EHR base
// URL. The client keeps its own copy of the config and is the sole owner of
// the mutable token pair: a successful refresh updates the copy, never the
// caller's struct. Callers read the current pair through Tokens.
func NewFhirRecordClient(config *requests.EHRConnectionConfig, logger *zap.Logger) RecordClient {
	return &fhirRecordClient{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: constvars.RequestTimeoutSec * time.Second,
		},
		log:    logger,
		config: *config,
	}
}

func (c *fhirRecordClient) Tokens() (string, string) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()
	return c.config.AccessToken, c.config.RefreshToken
}

func (c *fhirRecordClient) accessToken() string {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()
	return c.config.AccessToken
}

func (c *fhirRecordClient) refreshTokenValue() string {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()
	return c.config.RefreshToken
}

func (c *fhirRecordClient) send(ctx context.Context, method, path string, query url.Values, body []byte, token string) (int, []byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)
	if token != "" {
		req.Header.Set(constvars.HeaderAuthorization, constvars.BearerTokenPrefix+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, respBody, nil
}

// do performs one request and normalizes every failure through the error
// classifier. On a 401 with a refresh token configured it performs exactly one
// refresh exchange and retries once; a failed refresh surfaces the original
// 401 unmodified, and a second 401 propagates as an authentication error.
func (c *fhirRecordClient) do(ctx context.Context, method, path string, query url.Values, body []byte) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	status, respBody, err := c.send(ctx, method, path, query, body, c.accessToken())
	if err != nil {
		c.log.Error("fhirRecordClient request failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMethodKey, method),
			zap.String(constvars.LoggingEndpointKey, path),
			zap.Error(err),
		)
		return nil, exceptions.HandleAPIError(err)
	}

	if status == constvars.StatusUnauthorized && c.refreshTokenValue() != "" {
		if refreshErr := c.refreshAccessToken(ctx); refreshErr != nil {
			c.log.Warn("fhirRecordClient token refresh failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(refreshErr),
			)
			return nil, exceptions.FromResponse(status, respBody)
		}

		status, respBody, err = c.send(ctx, method, path, query, body, c.accessToken())
		if err != nil {
			return nil, exceptions.HandleAPIError(err)
		}
	}

	if status < constvars.StatusOK || status >= 300 {
		c.log.Warn("fhirRecordClient received error response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMethodKey, method),
			zap.String(constvars.LoggingEndpointKey, path),
			zap.Int(constvars.LoggingStatusCodeKey, status),
		)
		return nil, exceptions.FromResponse(status, respBody)
	}

	return respBody, nil
}

type tokenRefreshRequest struct {
	GrantType    string `json:"grant_type"`
	RefreshToken string `json:"refresh_token"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type tokenRefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (c *fhirRecordClient) refreshAccessToken(ctx context.Context) error {
	c.tokenMu.Lock()
	payload := tokenRefreshRequest{
		GrantType:    constvars.OAuthGrantTypeRefreshToken,
		RefreshToken: c.config.RefreshToken,
		ClientID:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
	}
	c.tokenMu.Unlock()

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.baseURL+constvars.OAuthTokenEndpointPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != constvars.StatusOK {
		return exceptions.FromResponse(resp.StatusCode, respBody)
	}

	var tokens tokenRefreshResponse
	if err := json.Unmarshal(respBody, &tokens); err != nil {
		return err
	}
	if tokens.AccessToken == "" {
		return fmt.Errorf("token endpoint returned no access token")
	}

	c.tokenMu.Lock()
	c.config.AccessToken = tokens.AccessToken
	if tokens.RefreshToken != "" {
		c.config.RefreshToken = tokens.RefreshToken
	}
	c.tokenMu.Unlock()

	c.log.Info("fhirRecordClient access token refreshed")
	return nil
}

func searchResources[T any](c *fhirRecordClient, ctx context.Context, resource string, query url.Values) ([]T, int, error) {
	body, err := c.do(ctx, constvars.MethodGet, "/"+resource, query, nil)
	if err != nil {
		return nil, 0, err
	}

	var bundle fhir_dto.Bundle
	if err := json.Unmarshal(body, &bundle); err != nil {
		return nil, 0, exceptions.NewAPIError(fmt.Sprintf("Failed to decode %s search response", resource), 0, "")
	}

	items := make([]T, 0, len(bundle.Entry))
	for _, entry := range bundle.Entry {
		var item T
		if err := json.Unmarshal(entry.Resource, &item); err != nil {
			return nil, 0, exceptions.NewAPIError(fmt.Sprintf("Failed to decode %s search response", resource), 0, "")
		}
		items = append(items, item)
	}
	return items, bundle.Total, nil
}

func getResource[T any](c *fhirRecordClient, ctx context.Context, resource, id string) (*T, error) {
	body, err := c.do(ctx, constvars.MethodGet, "/"+resource+"/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	item := new(T)
	if err := json.Unmarshal(body, item); err != nil {
		return nil, exceptions.NewAPIError(fmt.Sprintf("Failed to decode %s response", resource), 0, "")
	}
	return item, nil
}

func createResource[T any](c *fhirRecordClient, ctx context.Context, resource string, record *T) (*T, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, exceptions.HandleAPIError(err)
	}
	body, err := c.do(ctx, constvars.MethodPost, "/"+resource, nil, payload)
	if err != nil {
		return nil, err
	}
	created := new(T)
	if err := json.Unmarshal(body, created); err != nil {
		return nil, exceptions.NewAPIError(fmt.Sprintf("Failed to decode %s response", resource), 0, "")
	}
	return created, nil
}

func updateResource[T any](c *fhirRecordClient, ctx context.Context, resource, id string, record *T) (*T, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, exceptions.HandleAPIError(err)
	}
	body, err := c.do(ctx, constvars.MethodPut, "/"+resource+"/"+id, nil, payload)
	if err != nil {
		return nil, err
	}
	updated := new(T)
	if err := json.Unmarshal(body, updated); err != nil {
		return nil, exceptions.NewAPIError(fmt.Sprintf("Failed to decode %s response", resource), 0, "")
	}
	return updated, nil
}

func patientQuery(patientID string) url.Values {
	values := url.Values{}
	values.Set(constvars.SearchParamPatient, patientID)
	return values
}

func (c *fhirRecordClient) SearchPatients(ctx context.Context, params *fhir_dto.PatientSearchParams) ([]fhir_dto.Patient, int, error) {
	return searchResources[fhir_dto.Patient](c, ctx, constvars.ResourcePatient, params.Values())
}

func (c *fhirRecordClient) GetPatient(ctx context.Context, patientID string) (*fhir_dto.Patient, error) {
	return getResource[fhir_dto.Patient](c, ctx, constvars.ResourcePatient, patientID)
}

func (c *fhirRecordClient) CreatePatient(ctx context.Context, patient *fhir_dto.Patient) (*fhir_dto.Patient, error) {
	return createResource(c, ctx, constvars.ResourcePatient, patient)
}

func (c *fhirRecordClient) UpdatePatient(ctx context.Context, patientID string, patient *fhir_dto.Patient) (*fhir_dto.Patient, error) {
	return updateResource(c, ctx, constvars.ResourcePatient, patientID, patient)
}

func (c *fhirRecordClient) DeletePatient(ctx context.Context, patientID string) error {
	_, err := c.do(ctx, constvars.MethodDelete, "/"+constvars.ResourcePatient+"/"+patientID, nil, nil)
	return err
}

func (c *fhirRecordClient) SearchAppointments(ctx context.Context, params *fhir_dto.AppointmentSearchParams) ([]fhir_dto.Appointment, int, error) {
	return searchResources[fhir_dto.Appointment](c, ctx, constvars.ResourceAppointment, params.Values())
}

func (c *fhirRecordClient) GetAppointment(ctx context.Context, appointmentID string) (*fhir_dto.Appointment, error) {
	return getResource[fhir_dto.Appointment](c, ctx, constvars.ResourceAppointment, appointmentID)
}

func (c *fhirRecordClient) CreateAppointment(ctx context.Context, appointment *fhir_dto.Appointment) (*fhir_dto.Appointment, error) {
	return createResource(c, ctx, constvars.ResourceAppointment, appointment)
}

func (c *fhirRecordClient) UpdateAppointment(ctx context.Context, appointmentID string, appointment *fhir_dto.Appointment) (*fhir_dto.Appointment, error) {
	return updateResource(c, ctx, constvars.ResourceAppointment, appointmentID, appointment)
}

func (c *fhirRecordClient) DeleteAppointment(ctx context.Context, appointmentID string) error {
	_, err := c.do(ctx, constvars.MethodDelete, "/"+constvars.ResourceAppointment+"/"+appointmentID, nil, nil)
	return err
}

func (c *fhirRecordClient) ListObservations(ctx context.Context, patientID string) ([]fhir_dto.Observation, int, error) {
	return searchResources[fhir_dto.Observation](c, ctx, constvars.ResourceObservation, patientQuery(patientID))
}

func (c *fhirRecordClient) CreateObservation(ctx context.Context, observation *fhir_dto.Observation) (*fhir_dto.Observation, error) {
	return createResource(c, ctx, constvars.ResourceObservation, observation)
}

func (c *fhirRecordClient) ListConditions(ctx context.Context, patientID string) ([]fhir_dto.Condition, int, error) {
	return searchResources[fhir_dto.Condition](c, ctx, constvars.ResourceCondition, patientQuery(patientID))
}

func (c *fhirRecordClient) CreateCondition(ctx context.Context, condition *fhir_dto.Condition) (*fhir_dto.Condition, error) {
	return createResource(c, ctx, constvars.ResourceCondition, condition)
}

func (c *fhirRecordClient) ListMedicationRequests(ctx context.Context, patientID string) ([]fhir_dto.MedicationRequest, int, error) {
	return searchResources[fhir_dto.MedicationRequest](c, ctx, constvars.ResourceMedicationRequest, patientQuery(patientID))
}

func (c *fhirRecordClient) CreateMedicationRequest(ctx context.Context, medicationRequest *fhir_dto.MedicationRequest) (*fhir_dto.MedicationRequest, error) {
	return createResource(c, ctx, constvars.ResourceMedicationRequest, medicationRequest)
}

func (c *fhirRecordClient) ListDiagnosticReports(ctx context.Context, patientID string) ([]fhir_dto.DiagnosticReport, int, error) {
	return searchResources[fhir_dto.DiagnosticReport](c, ctx, constvars.ResourceDiagnosticReport, patientQuery(patientID))
}

func (c *fhirRecordClient) ListAllergies(ctx context.Context, patientID string) ([]fhir_dto.AllergyIntolerance, int, error) {
	return searchResources[fhir_dto.AllergyIntolerance](c, ctx, constvars.ResourceAllergyIntolerance, patientQuery(patientID))
}

func (c *fhirRecordClient) CreateAllergy(ctx context.Context, allergy *fhir_dto.AllergyIntolerance) (*fhir_dto.AllergyIntolerance, error) {
	return createResource(c, ctx, constvars.ResourceAllergyIntolerance, allergy)
}

func (c *fhirRecordClient) ListImmunizations(ctx context.Context, patientID string) ([]fhir_dto.Immunization, int, error) {
	return searchResources[fhir_dto.Immunization](c, ctx, constvars.ResourceImmunization, patientQuery(patientID))
}

func (c *fhirRecordClient) ListCoverages(ctx context.Context, patientID string) ([]fhir_dto.Coverage, int, error) {
	return searchResources[fhir_dto.Coverage](c, ctx, constvars.ResourceCoverage, patientQuery(patientID))
}

func (c *fhirRecordClient) ListClaims(ctx context.Context, patientID string) ([]fhir_dto.Claim, int, error) {
	return searchResources[fhir_dto.Claim](c, ctx, constvars.ResourceClaim, patientQuery(patientID))
}

func (c *fhirRecordClient) SearchPractitioners(ctx context.Context) ([]fhir_dto.Practitioner, int, error) {
	return searchResources[fhir_dto.Practitioner](c, ctx, constvars.ResourcePractitioner, nil)
}
