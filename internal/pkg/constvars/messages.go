package constvars

// Messages surfaced for the fixed HTTP status mapping. The wording is part of
// the client contract and must not drift.
const (
	ErrMsgBadRequest         = "Bad Request: Invalid parameters or data format"
	ErrMsgUnauthorized       = "Unauthorized: Invalid credentials or expired token"
	ErrMsgForbidden          = "Forbidden: Insufficient permissions"
	ErrMsgNotFound           = "Not Found: The requested resource was not found"
	ErrMsgConflict           = "Conflict: Resource already exists or version conflict"
	ErrMsgValidation         = "Validation Error: Invalid data provided"
	ErrMsgTooManyRequests    = "Too Many Requests: Rate limit exceeded"
	ErrMsgInternalServer     = "Internal Server Error: EHR system error"
	ErrMsgServiceUnavailable = "Service Unavailable: EHR system temporarily unavailable"

	ErrMsgNetwork     = "Network error: Unable to connect to EHR system"
	ErrMsgFHIRFailed  = "FHIR operation failed"
	ErrMsgUnknown     = "An unknown error occurred"
	ErrMsgNoClient    = "No client connected"
	ErrMsgHTTPFormat  = "HTTP %d: %s"
	ErrMsgUnknownHTTP = "Unknown error"
)

const (
	ErrMsgPatientNotFound     = "Patient not found"
	ErrMsgAppointmentNotFound = "Appointment not found"
	ErrMsgResourceNotFound    = "%s not found"
)

const (
	ErrMsgMissingTokenParams = "Missing required parameters or configuration"
	ErrMsgTokenExchange      = "Token exchange failed"
)

const (
	SuccessConnected    = "Connected to EHR system"
	SuccessDisconnected = "Disconnected"
	SuccessDemoMode     = "Demo mode enabled"
	SuccessHealthy      = "Connection healthy"
)
