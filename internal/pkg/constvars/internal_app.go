package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_SESSION_KEY              ContextKey = "session"
)

const (
	REQUEST_ID_PREFIX = "IMGREQ_SVC_"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	// SessionCookieName carries the signed session token issued on app initialisation.
	SessionCookieName   = "imaging_session"
	SessionKeyPrefix    = "session:"
	SessionJWTClaimKey  = "session_id"
	SessionJWTExpiryKey = "exp"
)
