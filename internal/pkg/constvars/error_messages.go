package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"numeric":  "must be a number",
	"len":      "must be %s characters long",
	"oneof":    "must be one of [%s]",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientSessionEnded                  = "your session ended, please select a patient again"
	ErrClientResourceNotFound              = "the requested record could not be found"
	ErrClientServiceRequestCodeRequired    = "Service requested is required"
	ErrClientUpstreamUnavailable           = "the clinical record service is temporarily unavailable"
	ErrClientTooManyRequests               = "too many requests, you are temporarily blocked"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseForm          = "cannot parse form body"
	ErrDevCannotDecodeForm         = "cannot decode form values into struct"
	ErrDevCreateHTTPRequest        = "failed to create HTTP request"
	ErrDevSendHTTPRequest          = "failed to send HTTP request"
	ErrDevMissingRequestCode       = "request_code is empty or missing"
	ErrDevGenerateIdentifier       = "failed to generate placer group identifier"
	ErrDevRenderView               = "failed to render view %s"
	ErrDevURLParamValidationFailed = "parameter %s validation failed"

	// Spark messages
	ErrDevSparkCreateFHIRResource         = "failed to create FHIR %s from `SPARK` service"
	ErrDevSparkGetFHIRResource            = "failed to get FHIR %s from `SPARK` service"
	ErrDevSparkNoDataFHIRResource         = "no data found from FHIR %s"
	ErrDevSparkDecodeFHIRResourceResponse = "failed to decode FHIR %s response from `SPARK` service"
	ErrDevSparkCircuitOpen                = "circuit breaker %s is open, FHIR call rejected"
	ErrDevSparkInvalidResourceID          = "invalid FHIR %s id"

	// Validation messages
	ErrDevValidationFailed = "validation failed"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthGenerateToken         = "failed to generate token"
	ErrDevAuthInvalidSession        = "invalid session"

	// Redis messages
	ErrDevRedisSetData   = "failed to SET data into redis"
	ErrDevRedisGetData   = "failed to GET data from redis"
	ErrDevRedisGetNoData = "failed to GET data from redis, there is no data associated with key %s"
	ErrDevRedisDelete    = "failed to DELETE data from redis"

	// Server messages
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevServerParseSessionData = "failed to parse session data"
	ErrDevServerPanicRecovered   = "recovered from panic: %v"
	ErrDevTooManyRequests        = "client %s exceeded the rate limit"
)
