package session

import (
	"context"

	"ehrbridge-service/internal/app/services/ehr"
	"ehrbridge-service/internal/pkg/dto/requests"
	"ehrbridge-service/internal/pkg/dto/responses"
)

// SessionUsecase owns the connection lifecycle. At most one EHR connection is
// active at a time; every method is safe for concurrent use.
type SessionUsecase interface {
	// Connect validates the config, probes the remote system, and on success
	// holds the live client and persists the sealed config.
	Connect(ctx context.Context, config *requests.EHRConnectionConfig) error

	// Disconnect drops the held client and config and removes the persisted
	// config. It performs no network calls and never fails.
	Disconnect(ctx context.Context) error

	// TestConnection re-probes the current client. On failure the connected
	// flag is demoted and the error recorded, but client and config are kept
	// so the caller can retry.
	TestConnection(ctx context.Context) error

	// SwitchToDemo activates the in-memory demo client under the fixed demo
	// config. It never probes, never persists, and never fails.
	SwitchToDemo(ctx context.Context)

	// Restore reloads a previously persisted config and reconnects. A missing
	// persisted config is not an error.
	Restore(ctx context.Context) error

	// Client returns the active record client, or an error when disconnected.
	Client() (ehr.RecordClient, error)

	Status() *responses.SessionStatus
}

// SettingsStore persists the connection config across restarts under a fixed
// key. Implementations seal the payload; plaintext secrets never reach the
// backing store.
type SettingsStore interface {
	Save(ctx context.Context, config *requests.EHRConnectionConfig) error
	Load(ctx context.Context) (*requests.EHRConnectionConfig, error)
	Delete(ctx context.Context) error
}
