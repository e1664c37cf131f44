package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ehrbridge-service/internal/app/config"
	"ehrbridge-service/internal/pkg/constvars"
	"ehrbridge-service/internal/pkg/dto/requests"
	"ehrbridge-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthUsecase(tokenURL string) AuthUsecase {
	return NewAuthUsecase(zap.NewNop(), &config.InternalConfig{
		OAuth: config.OAuth{
			ClientID:     "bridge-client",
			ClientSecret: "bridge-secret",
			TokenURL:     tokenURL,
		},
	})
}

func TestAuthUsecase_ExchangeToken(t *testing.T) {
	ctx := context.Background()

	t.Run("posts the code with basic auth and returns the grant", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "bridge-client", username)
			assert.Equal(t, "bridge-secret", password)

			require.NoError(t, r.ParseForm())
			assert.Equal(t, constvars.OAuthGrantTypeAuthorizationCode, r.PostForm.Get("grant_type"))
			assert.Equal(t, "auth-code", r.PostForm.Get("code"))
			assert.Equal(t, "https://app.example.com/callback", r.PostForm.Get("redirect_uri"))

			w.Write([]byte(`{
				"access_token": "granted-access",
				"refresh_token": "granted-refresh",
				"expires_in": 3600,
				"token_type": "Bearer",
				"scope": "patient/*.read"
			}`))
		}))
		defer server.Close()

		tokens, err := newTestAuthUsecase(server.URL).ExchangeToken(ctx, &requests.TokenExchangeRequest{
			Code:        "auth-code",
			RedirectURI: "https://app.example.com/callback",
		})

		require.NoError(t, err)
		assert.Equal(t, "granted-access", tokens.AccessToken)
		assert.Equal(t, "granted-refresh", tokens.RefreshToken)
		assert.Equal(t, 3600, tokens.ExpiresIn)
		assert.Equal(t, "Bearer", tokens.TokenType)
	})

	t.Run("missing code is rejected without calling upstream", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("upstream must not be called")
		}))
		defer server.Close()

		_, err := newTestAuthUsecase(server.URL).ExchangeToken(ctx, &requests.TokenExchangeRequest{})

		var ehrErr *exceptions.EHRError
		require.ErrorAs(t, err, &ehrErr)
		assert.Equal(t, constvars.StatusBadRequest, ehrErr.Status)
		assert.Equal(t, constvars.ErrMsgMissingTokenParams, ehrErr.Message)
	})

	t.Run("missing server-side configuration is rejected", func(t *testing.T) {
		uc := NewAuthUsecase(zap.NewNop(), &config.InternalConfig{})

		_, err := uc.ExchangeToken(ctx, &requests.TokenExchangeRequest{Code: "auth-code"})

		var ehrErr *exceptions.EHRError
		require.ErrorAs(t, err, &ehrErr)
		assert.Equal(t, constvars.StatusBadRequest, ehrErr.Status)
	})

	t.Run("upstream rejection forwards the status but not the body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "invalid_grant", "error_description": "code expired"}`))
		}))
		defer server.Close()

		_, err := newTestAuthUsecase(server.URL).ExchangeToken(ctx, &requests.TokenExchangeRequest{Code: "stale-code"})

		var ehrErr *exceptions.EHRError
		require.ErrorAs(t, err, &ehrErr)
		assert.Equal(t, constvars.StatusBadRequest, ehrErr.Status)
		assert.Equal(t, constvars.ErrMsgTokenExchange, ehrErr.Message)
	})

	t.Run("unreachable token endpoint classifies as connection error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		_, err := newTestAuthUsecase(server.URL).ExchangeToken(ctx, &requests.TokenExchangeRequest{Code: "auth-code"})

		var ehrErr *exceptions.EHRError
		require.ErrorAs(t, err, &ehrErr)
		assert.Equal(t, exceptions.KindConnection, ehrErr.Kind)
	})
}
