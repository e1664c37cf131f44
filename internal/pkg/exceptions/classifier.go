package exceptions

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"ehrbridge-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
)

// operationOutcome mirrors the FHIR error body shape just enough to classify
// it without depending on the dto package.
type operationOutcome struct {
	ResourceType string `json:"resourceType"`
	Issue        []struct {
		Severity    string `json:"severity"`
		Code        string `json:"code"`
		Diagnostics string `json:"diagnostics"`
		Details     struct {
			Text string `json:"text"`
		} `json:"details"`
	} `json:"issue"`
}

type oauthErrorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// FromResponse classifies a non-2xx HTTP response. Matching is attempted in
// order: FHIR OperationOutcome body, OAuth error body, fixed status mapping.
func FromResponse(status int, body []byte) *EHRError {
	if len(body) > 0 {
		var outcome operationOutcome
		if err := json.Unmarshal(body, &outcome); err == nil &&
			outcome.ResourceType == constvars.ResourceOperationOutcome && len(outcome.Issue) > 0 {
			issue := outcome.Issue[0]
			message := issue.Details.Text
			if message == "" {
				message = issue.Diagnostics
			}
			if message == "" {
				message = constvars.ErrMsgFHIRFailed
			}
			e := NewAPIError(message, status, issue.Code)
			e.Details = body
			return e
		}

		var oauthErr oauthErrorBody
		if err := json.Unmarshal(body, &oauthErr); err == nil && oauthErr.Error != "" {
			message := oauthErr.ErrorDescription
			if message == "" {
				message = oauthErr.Error
			}
			e := NewAPIError(message, status, oauthErr.Error)
			e.Details = body
			return e
		}
	}

	switch status {
	case constvars.StatusBadRequest:
		return NewAPIError(constvars.ErrMsgBadRequest, status, "")
	case constvars.StatusUnauthorized:
		return NewAuthenticationError(constvars.ErrMsgUnauthorized)
	case constvars.StatusForbidden:
		return NewAPIError(constvars.ErrMsgForbidden, status, "")
	case constvars.StatusNotFound:
		return NewAPIError(constvars.ErrMsgNotFound, status, "")
	case constvars.StatusConflict:
		return NewAPIError(constvars.ErrMsgConflict, status, "")
	case constvars.StatusUnprocessableEntity:
		return NewValidationError(constvars.ErrMsgValidation, "")
	case constvars.StatusTooManyRequests:
		return NewAPIError(constvars.ErrMsgTooManyRequests, status, "")
	case constvars.StatusInternalServerError:
		return NewAPIError(constvars.ErrMsgInternalServer, status, "")
	case constvars.StatusServiceUnavailable:
		return NewAPIError(constvars.ErrMsgServiceUnavailable, status, "")
	default:
		statusText := http.StatusText(status)
		if statusText == "" {
			statusText = constvars.ErrMsgUnknownHTTP
		}
		return NewAPIError(fmt.Sprintf(constvars.ErrMsgHTTPFormat, status, statusText), status, "")
	}
}

// HandleAPIError converts any caught failure into exactly one EHRError.
// Already-classified errors pass through unchanged, so the function is
// idempotent.
func HandleAPIError(err error) *EHRError {
	if err == nil {
		return NewAPIError(constvars.ErrMsgUnknown, 0, "")
	}

	var ehrErr *EHRError
	if errors.As(err, &ehrErr) {
		return ehrErr
	}

	if isNetworkError(err) {
		return NewConnectionError(constvars.ErrMsgNetwork, err)
	}

	return NewAPIError(err.Error(), 0, "")
}

// isNetworkError reports whether the request never reached the server. url.Error
// is what http.Client returns for transport-level failures; deadline and
// cancellation errors land here too since no response was produced.
func isNetworkError(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// IsRetryable reports whether the caller may retry the failed operation.
// Connection failures are always retryable; API failures only for the
// transient status codes; validation and authentication failures never are.
func IsRetryable(err error) bool {
	var ehrErr *EHRError
	if !errors.As(err, &ehrErr) {
		return false
	}
	switch ehrErr.Kind {
	case KindConnection:
		return true
	case KindAPI:
		switch ehrErr.Status {
		case constvars.StatusRequestTimeout,
			constvars.StatusTooManyRequests,
			constvars.StatusBadGateway,
			constvars.StatusServiceUnavailable,
			constvars.StatusGatewayTimeout:
			return true
		}
		return false
	case KindValidation, KindAuthentication:
		return false
	}
	return false
}
