package auth

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ehrbridge-service/internal/app/config"
	"ehrbridge-service/internal/pkg/constvars"
	"ehrbridge-service/internal/pkg/dto/requests"
	"ehrbridge-service/internal/pkg/dto/responses"
	"ehrbridge-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type authUsecase struct {
	log        *zap.Logger
	oauth      config.OAuth
	httpClient *http.Client
}

func NewAuthUsecase(logger *zap.Logger, internalConfig *config.InternalConfig) AuthUsecase {
	return &authUsecase{
		log:   logger,
		oauth: internalConfig.OAuth,
		httpClient: &http.Client{
			Timeout: constvars.RequestTimeoutSec * time.Second,
		},
	}
}

func (uc *authUsecase) ExchangeToken(ctx context.Context, request *requests.TokenExchangeRequest) (*responses.TokenExchangeResponse, error) {
	if request.Code == "" || uc.oauth.ClientID == "" || uc.oauth.ClientSecret == "" || uc.oauth.TokenURL == "" {
		return nil, exceptions.NewAPIError(constvars.ErrMsgMissingTokenParams, constvars.StatusBadRequest, "")
	}

	form := url.Values{}
	form.Set("grant_type", constvars.OAuthGrantTypeAuthorizationCode)
	form.Set("code", request.Code)
	form.Set("redirect_uri", request.RedirectURI)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, uc.oauth.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, exceptions.HandleAPIError(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationForm)
	req.SetBasicAuth(uc.oauth.ClientID, uc.oauth.ClientSecret)

	resp, err := uc.httpClient.Do(req)
	if err != nil {
		return nil, exceptions.HandleAPIError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.HandleAPIError(err)
	}

	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= 300 {
		// Upstream error bodies are logged, never forwarded; the caller only
		// learns the status.
		uc.log.Warn("token exchange rejected by upstream",
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return nil, exceptions.NewAPIError(constvars.ErrMsgTokenExchange, resp.StatusCode, "")
	}

	tokens := new(responses.TokenExchangeResponse)
	if err := json.Unmarshal(body, tokens); err != nil {
		return nil, exceptions.NewAPIError(constvars.ErrMsgTokenExchange, 0, "")
	}

	uc.log.Info("authorization code exchanged")
	return tokens, nil
}
