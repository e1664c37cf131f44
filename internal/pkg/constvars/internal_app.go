package constvars

type contextKey string

const (
	CONTEXT_REQUEST_ID_KEY           contextKey = "requestID"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY contextKey = "isClientRequestID"
)

const (
	// SettingsStoreKey is the fixed key the sealed connection configuration is
	// persisted under on successful connect and removed from on disconnect.
	SettingsStoreKey = "ehrbridge:connection-config"
)

const (
	DemoBaseURL       = "https://demo.ehr-system.com/fhir/r4"
	DemoClientID      = "demo-client"
	DemoClientSecret  = "demo-secret"
	MockIDPrefix      = "mock-"
	DefaultMockDelay  = 300
	RequestTimeoutSec = 30
)
