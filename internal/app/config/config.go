package config

import (
	"github.com/Ardenexal/imaging-request/internal/pkg/utils"
	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
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
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":3000"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Australia/Sydney"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 20),
			ShutdownTimeout:            utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestTimeoutInSecond:     utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECOND", 10),
			SubmitRequestsPerMinute:    utils.GetEnvInt("APP_SUBMIT_REQUESTS_PER_MINUTE", 30),
			SubmitBlockTimeInSecond:    utils.GetEnvInt("APP_SUBMIT_BLOCK_TIME_IN_SECOND", 60),
			RequestBodyLimitInKilobyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_KILOBYTE", 64),
			AllowedOrigins:             utils.GetEnvString("APP_ALLOWED_ORIGINS", "*"),
			MetricsEnabled:             utils.GetEnvBool("APP_METRICS_ENABLED", true),
		},
		FHIR: FHIR{
			BaseUrl:            utils.GetEnvString("FHIR_BASE_URL", "http://localhost:5555/fhir/"),
			ClientTimeoutInSec: utils.GetEnvInt("FHIR_CLIENT_TIMEOUT_IN_SECOND", 15),
		},
		Session: Session{
			JWTSecret:        utils.GetEnvString("SESSION_JWT_SECRET", "anyjwt"),
			ExpTimeInHour:    utils.GetEnvInt("SESSION_EXP_TIME_IN_HOUR", 8),
			CookieSecure:     utils.GetEnvBool("SESSION_COOKIE_SECURE", false),
			CookieDomainName: utils.GetEnvString("SESSION_COOKIE_DOMAIN", ""),
		},
		CircuitBreaker: CircuitBreaker{
			MaxRequests:      utils.GetEnvUint32("FHIR_BREAKER_MAX_REQUESTS", 3),
			IntervalInSecond: utils.GetEnvInt("FHIR_BREAKER_INTERVAL_IN_SECOND", 60),
			TimeoutInSecond:  utils.GetEnvInt("FHIR_BREAKER_TIMEOUT_IN_SECOND", 30),
			FailureThreshold: utils.GetEnvUint32("FHIR_BREAKER_FAILURE_THRESHOLD", 5),
			FailureRatio:     utils.GetEnvFloat("FHIR_BREAKER_FAILURE_RATIO", 0.6),
			MinRequests:      utils.GetEnvUint32("FHIR_BREAKER_MIN_REQUESTS", 10),
		},
	}
}
