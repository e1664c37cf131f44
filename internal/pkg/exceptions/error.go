package exceptions

import (
	"ehrbridge-service/internal/pkg/constvars"
	"fmt"
)

// Kind is the closed set of failure categories every raised error is funneled
// into. Retry and surface decisions switch exhaustively over it.
type Kind int

const (
	KindAPI Kind = iota
	KindValidation
	KindConnection
	KindAuthentication
)

func (k Kind) String() string {
	switch k {
	case KindAPI:
		return "api_error"
	case KindValidation:
		return "validation_error"
	case KindConnection:
		return "connection_error"
	case KindAuthentication:
		return "authentication_error"
	}
	return "unknown"
}

// EHRError is the single error type crossing the client boundary. Status and
// Code are zero-valued when the failure never produced an HTTP response.
type EHRError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
	Details []byte `json:"-"`
	Cause   error  `json:"-"`
}

func (e *EHRError) Error() string {
	return e.Message
}

func (e *EHRError) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the error onto a delivery-layer status code when the error
// itself carries none.
func (e *EHRError) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	switch e.Kind {
	case KindValidation:
		return constvars.StatusUnprocessableEntity
	case KindAuthentication:
		return constvars.StatusUnauthorized
	case KindConnection:
		return constvars.StatusBadGateway
	}
	return constvars.StatusInternalServerError
}

func NewAPIError(message string, status int, code string) *EHRError {
	return &EHRError{Kind: KindAPI, Message: message, Status: status, Code: code}
}

func NewValidationError(message, field string) *EHRError {
	return &EHRError{Kind: KindValidation, Message: message, Field: field}
}

func NewConnectionError(message string, cause error) *EHRError {
	return &EHRError{Kind: KindConnection, Message: message, Cause: cause}
}

func NewAuthenticationError(message string) *EHRError {
	return &EHRError{Kind: KindAuthentication, Message: message, Status: constvars.StatusUnauthorized}
}

func NotFound(resource string) *EHRError {
	return NewAPIError(fmt.Sprintf(constvars.ErrMsgResourceNotFound, resource), constvars.StatusNotFound, "not-found")
}
