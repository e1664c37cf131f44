package session

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// tokenExpiresAt extracts the exp claim from a JWT access token without
// verifying the signature; this server is a consumer, not the issuer. Opaque
// tokens yield an empty string.
func tokenExpiresAt(accessToken string) string {
	if accessToken == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return ""
	}

	var seconds int64
	switch exp := claims["exp"].(type) {
	case float64:
		seconds = int64(exp)
	case json.Number:
		parsed, err := exp.Int64()
		if err != nil {
			return ""
		}
		seconds = parsed
	default:
		return ""
	}

	return time.Unix(seconds, 0).UTC().Format(time.RFC3339)
}
