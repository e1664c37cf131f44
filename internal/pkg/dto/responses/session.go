package responses

// SessionStatus reports the current connection state. The client secret and
// tokens never appear here; TokenExpiresAt is derived from the access token
// when it is a decodable JWT.
type SessionStatus struct {
	Connected       bool   `json:"connected"`
	Demo            bool   `json:"demo"`
	BaseURL         string `json:"baseUrl,omitempty"`
	ClientID        string `json:"clientId,omitempty"`
	ConnectionError string `json:"connectionError,omitempty"`
	TokenExpiresAt  string `json:"tokenExpiresAt,omitempty"`
}
