package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"ehrbridge-service/internal/app/services/ehr"
	"ehrbridge-service/internal/pkg/constvars"
	"ehrbridge-service/internal/pkg/dto/requests"
	"ehrbridge-service/internal/pkg/exceptions"
	"ehrbridge-service/internal/pkg/fhir_dto"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubRecordClient satisfies ehr.RecordClient through embedding; only the
// probe path is exercised by the session manager.
type stubRecordClient struct {
	ehr.RecordClient
	accessToken string
	searchErr   error
	searchCalls int
}

func (s *stubRecordClient) Tokens() (string, string) {
	return s.accessToken, ""
}

func (s *stubRecordClient) SearchPatients(_ context.Context, params *fhir_dto.PatientSearchParams) ([]fhir_dto.Patient, int, error) {
	s.searchCalls++
	if s.searchErr != nil {
		return nil, 0, s.searchErr
	}
	if params.Count != 1 {
		return nil, 0, exceptions.NewAPIError("probe must request a single record", 0, "")
	}
	return []fhir_dto.Patient{}, 0, nil
}

func newTestUsecase(store SettingsStore, stub *stubRecordClient) *sessionUsecase {
	uc := NewSessionUsecase(zap.NewNop(), store).(*sessionUsecase)
	if stub != nil {
		uc.newLiveClient = func(_ *requests.EHRConnectionConfig, _ *zap.Logger) ehr.RecordClient {
			return stub
		}
	}
	return uc
}

func validConfig() *requests.EHRConnectionConfig {
	return &requests.EHRConnectionConfig{
		BaseURL:      "https://fhir.example.com/r4",
		ClientID:     "bridge-client",
		ClientSecret: "bridge-secret",
	}
}

func TestSessionUsecase_Connect(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects invalid config without probing", func(t *testing.T) {
		stub := &stubRecordClient{}
		uc := newTestUsecase(NewMemorySettingsStore(), stub)

		err := uc.Connect(ctx, &requests.EHRConnectionConfig{BaseURL: "not a url"})

		var ehrErr *exceptions.EHRError
		require.ErrorAs(t, err, &ehrErr)
		assert.Equal(t, exceptions.KindValidation, ehrErr.Kind)
		assert.Zero(t, stub.searchCalls)

		status := uc.Status()
		assert.False(t, status.Connected)
		assert.Equal(t, err.Error(), status.ConnectionError)
	})

	t.Run("probe failure stays disconnected and records the error", func(t *testing.T) {
		stub := &stubRecordClient{searchErr: exceptions.NewConnectionError(constvars.ErrMsgNetwork, nil)}
		store := NewMemorySettingsStore()
		uc := newTestUsecase(store, stub)

		err := uc.Connect(ctx, validConfig())
		require.Error(t, err)

		status := uc.Status()
		assert.False(t, status.Connected)
		assert.Equal(t, constvars.ErrMsgNetwork, status.ConnectionError)

		persisted, loadErr := store.Load(ctx)
		require.NoError(t, loadErr)
		assert.Nil(t, persisted)
	})

	t.Run("success holds the client and persists the config", func(t *testing.T) {
		stub := &stubRecordClient{}
		store := NewMemorySettingsStore()
		uc := newTestUsecase(store, stub)

		require.NoError(t, uc.Connect(ctx, validConfig()))

		status := uc.Status()
		assert.True(t, status.Connected)
		assert.False(t, status.Demo)
		assert.Equal(t, "https://fhir.example.com/r4", status.BaseURL)
		assert.Empty(t, status.ConnectionError)

		client, err := uc.Client()
		require.NoError(t, err)
		assert.Same(t, ehr.RecordClient(stub), client)

		persisted, err := store.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, persisted)
		assert.Equal(t, "bridge-client", persisted.ClientID)
	})
}

func TestSessionUsecase_Disconnect(t *testing.T) {
	ctx := context.Background()
	stub := &stubRecordClient{}
	store := NewMemorySettingsStore()
	uc := newTestUsecase(store, stub)

	require.NoError(t, uc.Connect(ctx, validConfig()))
	require.NoError(t, uc.Disconnect(ctx))

	status := uc.Status()
	assert.False(t, status.Connected)
	assert.Empty(t, status.BaseURL)

	_, err := uc.Client()
	var ehrErr *exceptions.EHRError
	require.ErrorAs(t, err, &ehrErr)
	assert.Equal(t, constvars.ErrMsgNoClient, ehrErr.Message)

	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, persisted)
}

func TestSessionUsecase_TestConnection(t *testing.T) {
	ctx := context.Background()

	t.Run("without a client reports no client connected", func(t *testing.T) {
		uc := newTestUsecase(NewMemorySettingsStore(), nil)

		err := uc.TestConnection(ctx)

		var ehrErr *exceptions.EHRError
		require.ErrorAs(t, err, &ehrErr)
		assert.Equal(t, constvars.ErrMsgNoClient, ehrErr.Message)
		assert.Equal(t, constvars.ErrMsgNoClient, uc.Status().ConnectionError)
	})

	t.Run("failure demotes connected but keeps client and config", func(t *testing.T) {
		stub := &stubRecordClient{}
		uc := newTestUsecase(NewMemorySettingsStore(), stub)
		require.NoError(t, uc.Connect(ctx, validConfig()))

		stub.searchErr = exceptions.NewConnectionError(constvars.ErrMsgNetwork, nil)
		require.Error(t, uc.TestConnection(ctx))

		status := uc.Status()
		assert.False(t, status.Connected)
		assert.Equal(t, constvars.ErrMsgNetwork, status.ConnectionError)
		assert.Equal(t, "https://fhir.example.com/r4", status.BaseURL)

		_, err := uc.Client()
		assert.NoError(t, err)

		// A healthy re-probe clears the stale error.
		stub.searchErr = nil
		require.NoError(t, uc.TestConnection(ctx))
		status = uc.Status()
		assert.True(t, status.Connected)
		assert.Empty(t, status.ConnectionError)
	})
}

func TestSessionUsecase_SwitchToDemo(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySettingsStore()
	uc := newTestUsecase(store, nil)

	uc.SwitchToDemo(ctx)

	status := uc.Status()
	assert.True(t, status.Connected)
	assert.True(t, status.Demo)
	assert.Equal(t, constvars.DemoBaseURL, status.BaseURL)
	assert.Equal(t, constvars.DemoClientID, status.ClientID)

	// Demo mode is never persisted.
	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, persisted)

	client, err := uc.Client()
	require.NoError(t, err)
	_, total, err := client.SearchPatients(ctx, &fhir_dto.PatientSearchParams{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestSessionUsecase_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("no persisted config is a no-op", func(t *testing.T) {
		uc := newTestUsecase(NewMemorySettingsStore(), nil)
		require.NoError(t, uc.Restore(ctx))
		assert.False(t, uc.Status().Connected)
	})

	t.Run("reconnects from the persisted config", func(t *testing.T) {
		stub := &stubRecordClient{}
		store := NewMemorySettingsStore()
		require.NoError(t, store.Save(ctx, validConfig()))

		uc := newTestUsecase(store, stub)
		require.NoError(t, uc.Restore(ctx))

		status := uc.Status()
		assert.True(t, status.Connected)
		assert.Equal(t, "https://fhir.example.com/r4", status.BaseURL)
		assert.Equal(t, 1, stub.searchCalls)
	})
}

// Status must stay safe to call while the live client is mid-refresh: the
// client owns the token pair and Status reads it through the synchronized
// Tokens accessor. The server forces a refresh on every other record fetch so
// the race detector sees concurrent refresh writes and Status reads.
func TestSessionUsecase_StatusDuringTokenRefresh(t *testing.T) {
	ctx := context.Background()

	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": expiry.Unix(),
	})
	freshToken, err := token.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)

	var resourceCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == constvars.OAuthTokenEndpointPath {
			w.Write([]byte(`{"access_token": "` + freshToken + `", "refresh_token": "rotated-refresh"}`))
			return
		}
		if atomic.AddInt32(&resourceCalls, 1)%2 == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if strings.HasPrefix(r.URL.Path, "/Patient/") {
			w.Write([]byte(`{"resourceType": "Patient", "id": "patient-001"}`))
			return
		}
		w.Write([]byte(`{"resourceType": "Bundle", "type": "searchset", "total": 0, "entry": []}`))
	}))
	defer server.Close()

	uc := newTestUsecase(NewMemorySettingsStore(), nil)
	require.NoError(t, uc.Connect(ctx, &requests.EHRConnectionConfig{
		BaseURL:      server.URL,
		ClientID:     "bridge-client",
		ClientSecret: "bridge-secret",
		AccessToken:  "stale-token",
		RefreshToken: "stale-refresh",
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		client, clientErr := uc.Client()
		if !assert.NoError(t, clientErr) {
			return
		}
		for i := 0; i < 25; i++ {
			_, getErr := client.GetPatient(ctx, "patient-001")
			assert.NoError(t, getErr)
		}
	}()

	for reading := true; reading; {
		select {
		case <-done:
			reading = false
		default:
			_ = uc.Status()
		}
	}

	assert.Equal(t, expiry.UTC().Format(time.RFC3339), uc.Status().TokenExpiresAt)
}

func TestTokenExpiresAt(t *testing.T) {
	t.Run("decodable jwt yields its exp claim", func(t *testing.T) {
		expiry := time.Now().Add(time.Hour).Truncate(time.Second)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": expiry.Unix(),
		})
		signed, err := token.SignedString([]byte("test-signing-key"))
		require.NoError(t, err)

		assert.Equal(t, expiry.UTC().Format(time.RFC3339), tokenExpiresAt(signed))
	})

	t.Run("opaque token yields empty", func(t *testing.T) {
		assert.Empty(t, tokenExpiresAt("not-a-jwt"))
		assert.Empty(t, tokenExpiresAt(""))
	})
}
