package auth

import (
	"context"

	"ehrbridge-service/internal/pkg/dto/requests"
	"ehrbridge-service/internal/pkg/dto/responses"
)

// AuthUsecase exchanges an authorization code for tokens against the
// configured EHR token endpoint. The server-side client credentials never
// reach the caller.
type AuthUsecase interface {
	ExchangeToken(ctx context.Context, request *requests.TokenExchangeRequest) (*responses.TokenExchangeResponse, error)
}
