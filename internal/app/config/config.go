package config

import (
	"ehrbridge-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", ""),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                       utils.GetEnvString("APP_ENV", "development"),
			Port:                      utils.GetEnvString("APP_PORT", "8080"),
			Address:                   utils.GetEnvString("APP_ADDRESS", "localhost"),
			Version:                   utils.GetEnvString("APP_VERSION", "v1"),
			EndpointPrefix:            utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			ShutdownTimeout:           utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxRequests:               utils.GetEnvInt("APP_MAX_REQUEST", 100),
			MaxTimeRequestsPerSeconds: utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 1),
		},
		EHR: EHR{
			ProxyMaxRequests:     utils.GetEnvInt("EHR_PROXY_MAX_REQUESTS", 30),
			ProxyWindowInSeconds: utils.GetEnvInt("EHR_PROXY_WINDOW_IN_SECONDS", 60),
			SettingsSecret:       utils.GetEnvString("EHR_SETTINGS_SECRET", "ehrbridge-dev-secret"),
		},
		OAuth: OAuth{
			ClientID:     utils.GetEnvString("EHR_CLIENT_ID", ""),
			ClientSecret: utils.GetEnvString("EHR_CLIENT_SECRET", ""),
			TokenURL:     utils.GetEnvString("EHR_TOKEN_URL", ""),
		},
	}
}
