package constvars

const (
	LoggingRequestIDKey    = "request_id"
	LoggingMethodKey       = "method"
	LoggingEndpointKey     = "endpoint"
	LoggingRemoteAddrKey   = "remote_addr"
	LoggingUserAgentKey    = "user_agent"
	LoggingQueryKey        = "query"
	LoggingStatusCodeKey   = "status_code"
	LoggingDurationKey     = "duration"
	LoggingSuccessKey      = "success"
	LoggingResourceKey     = "resource"
	LoggingResourceIDKey   = "resource_id"
	LoggingPatientIDKey    = "patient_id"
	LoggingTotalKey        = "total"
	LoggingBaseURLKey      = "base_url"
	LoggingSessionStateKey = "session_state"
)
