package session

import (
	"context"
	"sync"

	"ehrbridge-service/internal/app/services/ehr"
	"ehrbridge-service/internal/pkg/constvars"
	"ehrbridge-service/internal/pkg/dto/requests"
	"ehrbridge-service/internal/pkg/dto/responses"
	"ehrbridge-service/internal/pkg/exceptions"
	"ehrbridge-service/internal/pkg/fhir_dto"
	"ehrbridge-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type sessionUsecase struct {
	log   *zap.Logger
	store SettingsStore

	// Client factories are swappable so tests can substitute a stub without a
	// listening server.
	newLiveClient func(config *requests.EHRConnectionConfig, logger *zap.Logger) ehr.RecordClient
	newDemoClient func() ehr.RecordClient

	mu              sync.Mutex
	client          ehr.RecordClient
	config          *requests.EHRConnectionConfig
	connected       bool
	demo            bool
	connectionError string
}

func NewSessionUsecase(logger *zap.Logger, store SettingsStore) SessionUsecase {
	return &sessionUsecase{
		log:           logger,
		store:         store,
		newLiveClient: ehr.NewFhirRecordClient,
		newDemoClient: ehr.NewMockRecordClient,
	}
}

// probe issues the cheapest possible search against the client to verify the
// connection end to end.
func probe(ctx context.Context, client ehr.RecordClient) error {
	_, _, err := client.SearchPatients(ctx, &fhir_dto.PatientSearchParams{Count: 1})
	return err
}

func (uc *sessionUsecase) Connect(ctx context.Context, config *requests.EHRConnectionConfig) error {
	if result := utils.ValidateEHRConfig(config); !result.Valid {
		first := result.Errors[0]
		err := exceptions.NewValidationError(utils.FormatValidationErrors(result.Errors), first.Field)

		uc.mu.Lock()
		uc.connectionError = err.Error()
		uc.mu.Unlock()
		return err
	}

	client := uc.newLiveClient(config, uc.log)
	if err := probe(ctx, client); err != nil {
		uc.mu.Lock()
		uc.connectionError = err.Error()
		uc.mu.Unlock()

		uc.log.Warn("connection probe failed",
			zap.String(constvars.LoggingBaseURLKey, config.BaseURL),
			zap.Error(err),
		)
		return err
	}

	uc.mu.Lock()
	uc.client = client
	uc.config = config
	uc.connected = true
	uc.demo = false
	uc.connectionError = ""
	uc.mu.Unlock()

	if err := uc.store.Save(ctx, config); err != nil {
		// The connection itself is healthy; losing persistence only costs the
		// reconnect after a restart.
		uc.log.Warn("failed to persist connection config", zap.Error(err))
	}

	uc.log.Info("connected to EHR system",
		zap.String(constvars.LoggingBaseURLKey, config.BaseURL),
	)
	return nil
}

func (uc *sessionUsecase) Disconnect(ctx context.Context) error {
	uc.mu.Lock()
	uc.client = nil
	uc.config = nil
	uc.connected = false
	uc.demo = false
	uc.connectionError = ""
	uc.mu.Unlock()

	if err := uc.store.Delete(ctx); err != nil {
		uc.log.Warn("failed to delete persisted connection config", zap.Error(err))
	}

	uc.log.Info("disconnected from EHR system")
	return nil
}

func (uc *sessionUsecase) TestConnection(ctx context.Context) error {
	uc.mu.Lock()
	client := uc.client
	uc.mu.Unlock()

	if client == nil {
		err := exceptions.NewConnectionError(constvars.ErrMsgNoClient, nil)
		uc.mu.Lock()
		uc.connectionError = err.Error()
		uc.mu.Unlock()
		return err
	}

	if err := probe(ctx, client); err != nil {
		// Client and config stay so the caller can retry or reconnect.
		uc.mu.Lock()
		uc.connected = false
		uc.connectionError = err.Error()
		uc.mu.Unlock()
		return err
	}

	uc.mu.Lock()
	uc.connected = true
	uc.connectionError = ""
	uc.mu.Unlock()
	return nil
}

func (uc *sessionUsecase) SwitchToDemo(_ context.Context) {
	demoConfig := &requests.EHRConnectionConfig{
		BaseURL:      constvars.DemoBaseURL,
		ClientID:     constvars.DemoClientID,
		ClientSecret: constvars.DemoClientSecret,
	}

	uc.mu.Lock()
	uc.client = uc.newDemoClient()
	uc.config = demoConfig
	uc.connected = true
	uc.demo = true
	uc.connectionError = ""
	uc.mu.Unlock()

	uc.log.Info("demo mode enabled")
}

func (uc *sessionUsecase) Restore(ctx context.Context) error {
	config, err := uc.store.Load(ctx)
	if err != nil {
		return err
	}
	if config == nil {
		return nil
	}

	uc.log.Info("restoring persisted EHR connection",
		zap.String(constvars.LoggingBaseURLKey, config.BaseURL),
	)
	return uc.Connect(ctx, config)
}

func (uc *sessionUsecase) Client() (ehr.RecordClient, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.client == nil {
		return nil, exceptions.NewConnectionError(constvars.ErrMsgNoClient, nil)
	}
	return uc.client, nil
}

func (uc *sessionUsecase) Status() *responses.SessionStatus {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	status := &responses.SessionStatus{
		Connected:       uc.connected,
		Demo:            uc.demo,
		ConnectionError: uc.connectionError,
	}
	if uc.config != nil {
		status.BaseURL = uc.config.BaseURL
		status.ClientID = uc.config.ClientID
	}
	if uc.client != nil {
		// The client owns the token pair and may refresh it at any time, so
		// the expiry is read through its synchronized accessor rather than
		// from the config this session connected with.
		accessToken, _ := uc.client.Tokens()
		status.TokenExpiresAt = tokenExpiresAt(accessToken)
	}
	return status
}
