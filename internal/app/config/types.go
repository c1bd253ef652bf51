package config

type (
	InternalConfig struct {
		App            App
		FHIR           FHIR
		Session        Session
		CircuitBreaker CircuitBreaker
	}

	DriverConfig struct {
		Redis  Redis
		Logger Logger
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Timezone                   string
		MaxRequests                int
		ShutdownTimeout            int
		RequestTimeoutInSecond     int
		SubmitRequestsPerMinute    int
		SubmitBlockTimeInSecond    int
		RequestBodyLimitInKilobyte int
		AllowedOrigins             string
		MetricsEnabled             bool
	}

	FHIR struct {
		BaseUrl            string
		ClientTimeoutInSec int
	}

	Session struct {
		JWTSecret        string
		ExpTimeInHour    int
		CookieSecure     bool
		CookieDomainName string
	}

	CircuitBreaker struct {
		MaxRequests      uint32
		IntervalInSecond int
		TimeoutInSecond  int
		FailureThreshold uint32
		FailureRatio     float64
		MinRequests      uint32
	}

	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)
