package exceptions

import (
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromResponseStatusMapping(t *testing.T) {
	testCases := []struct {
		status        int
		expectedKind  Kind
		messagePrefix string
	}{
		{400, KindAPI, "Bad Request"},
		{401, KindAuthentication, "Unauthorized"},
		{403, KindAPI, "Forbidden"},
		{404, KindAPI, "Not Found"},
		{409, KindAPI, "Conflict"},
		{422, KindValidation, "Validation Error"},
		{429, KindAPI, "Too Many Requests"},
		{500, KindAPI, "Internal Server Error"},
		{503, KindAPI, "Service Unavailable"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("status %d", tc.status), func(t *testing.T) {
			err := FromResponse(tc.status, nil)
			assert.Equal(t, tc.expectedKind, err.Kind)
			assert.Contains(t, err.Message, tc.messagePrefix)
		})
	}

	t.Run("unmapped status falls back to generic message", func(t *testing.T) {
		err := FromResponse(418, nil)
		assert.Equal(t, KindAPI, err.Kind)
		assert.Equal(t, "HTTP 418: I'm a teapot", err.Message)
		assert.Equal(t, 418, err.Status)
	})
}

func TestFromResponseOperationOutcome(t *testing.T) {
	t.Run("details text preferred", func(t *testing.T) {
		body := []byte(`{"resourceType":"OperationOutcome","issue":[{"severity":"error","code":"invalid","details":{"text":"Birth date is malformed"},"diagnostics":"field birthDate"}]}`)
		err := FromResponse(400, body)
		assert.Equal(t, KindAPI, err.Kind)
		assert.Equal(t, "Birth date is malformed", err.Message)
		assert.Equal(t, "invalid", err.Code)
		assert.Equal(t, 400, err.Status)
	})

	t.Run("diagnostics fallback", func(t *testing.T) {
		body := []byte(`{"resourceType":"OperationOutcome","issue":[{"code":"processing","diagnostics":"resource version conflict"}]}`)
		err := FromResponse(409, body)
		assert.Equal(t, "resource version conflict", err.Message)
	})

	t.Run("generic fallback when issue is empty-bodied", func(t *testing.T) {
		body := []byte(`{"resourceType":"OperationOutcome","issue":[{"code":"exception"}]}`)
		err := FromResponse(500, body)
		assert.Equal(t, "FHIR operation failed", err.Message)
		assert.Equal(t, "exception", err.Code)
	})

	t.Run("outcome with zero issues uses the status mapping", func(t *testing.T) {
		body := []byte(`{"resourceType":"OperationOutcome","issue":[]}`)
		err := FromResponse(404, body)
		assert.Contains(t, err.Message, "Not Found")
	})
}

func TestFromResponseOAuthBody(t *testing.T) {
	t.Run("error_description preferred", func(t *testing.T) {
		body := []byte(`{"error":"invalid_grant","error_description":"Refresh token expired"}`)
		err := FromResponse(400, body)
		assert.Equal(t, "Refresh token expired", err.Message)
		assert.Equal(t, "invalid_grant", err.Code)
	})

	t.Run("error value fallback", func(t *testing.T) {
		body := []byte(`{"error":"invalid_client"}`)
		err := FromResponse(401, body)
		assert.Equal(t, "invalid_client", err.Message)
	})
}

func TestHandleAPIErrorIdempotence(t *testing.T) {
	original := NewAPIError("already classified", 404, "not-found")
	classified := HandleAPIError(original)
	assert.Same(t, original, classified)

	wrapped := fmt.Errorf("operation failed: %w", original)
	classified = HandleAPIError(wrapped)
	assert.Same(t, original, classified)
}

func TestHandleAPIErrorNetworkFailure(t *testing.T) {
	transportErr := &url.Error{Op: "Get", URL: "https://ehr.example.com/Patient", Err: errors.New("connection refused")}
	classified := HandleAPIError(transportErr)
	require.Equal(t, KindConnection, classified.Kind)
	assert.Equal(t, "Network error: Unable to connect to EHR system", classified.Message)
	assert.ErrorIs(t, classified, transportErr)
}

func TestHandleAPIErrorGeneric(t *testing.T) {
	classified := HandleAPIError(errors.New("boom"))
	assert.Equal(t, KindAPI, classified.Kind)
	assert.Equal(t, "boom", classified.Message)

	classified = HandleAPIError(nil)
	assert.Equal(t, "An unknown error occurred", classified.Message)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewConnectionError("net down", nil)))
	assert.False(t, IsRetryable(NewValidationError("bad data", "name")))
	assert.False(t, IsRetryable(NewAuthenticationError("expired")))

	for _, status := range []int{408, 429, 502, 503, 504} {
		assert.True(t, IsRetryable(NewAPIError("transient", status, "")), "status %d", status)
	}
	for _, status := range []int{400, 403, 404, 409, 500} {
		assert.False(t, IsRetryable(NewAPIError("permanent", status, "")), "status %d", status)
	}

	assert.False(t, IsRetryable(errors.New("unclassified")))
	assert.False(t, IsRetryable(NewAPIError("no status", 0, "")))
}
