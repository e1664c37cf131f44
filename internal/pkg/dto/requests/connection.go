package requests

// EHRConnectionConfig is the connection configuration owned by the session
// manager. Secrets and tokens are never written to logs.
type EHRConnectionConfig struct {
	BaseURL      string `json:"baseUrl" validate:"required,url"`
	ClientID     string `json:"clientId" validate:"required,min=3"`
	ClientSecret string `json:"clientSecret" validate:"required_without=AccessToken"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type TokenExchangeRequest struct {
	Code        string `json:"code" validate:"required"`
	RedirectURI string `json:"redirect_uri" validate:"required"`
}
