package constvars

const (
	LoggingRequestIDKey     = "request_id"
	LoggingMethodKey        = "method"
	LoggingEndpointKey      = "endpoint"
	LoggingRemoteAddrKey    = "remote_addr"
	LoggingUserAgentKey     = "user_agent"
	LoggingQueryKey         = "query"
	LoggingStatusCodeKey    = "status_code"
	LoggingDurationKey      = "duration"
	LoggingSuccessKey       = "success"
	LoggingOperationKey     = "operation"
	LoggingFhirUrlKey       = "fhir_url"
	LoggingSessionIDKey     = "session_id"
	LoggingPatientIDKey     = "patient_id"
	LoggingServiceRequestID = "service_request_id"
	LoggingPlacerGroupIDKey = "placer_group_identifier"
	LoggingBreakerNameKey   = "breaker"
	LoggingResourceIDKey    = "resource_id"
)
