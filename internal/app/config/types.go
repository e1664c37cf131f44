package config

type (
	InternalConfig struct {
		App   App
		EHR   EHR
		OAuth OAuth
	}

	DriverConfig struct {
		Redis  Redis
		Logger Logger
	}

	App struct {
		Env                       string
		Port                      string
		Address                   string
		Version                   string
		EndpointPrefix            string
		ShutdownTimeout           int
		MaxRequests               int
		MaxTimeRequestsPerSeconds int
	}

	// EHR carries proxy-side knobs: per-operation admission window and the
	// secret the persisted connection config is sealed with.
	EHR struct {
		ProxyMaxRequests     int
		ProxyWindowInSeconds int
		SettingsSecret       string
	}

	// OAuth is the server-side registration used by the token exchange
	// endpoint. The secret never leaves this process.
	OAuth struct {
		ClientID     string
		ClientSecret string
		TokenURL     string
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)
