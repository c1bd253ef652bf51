package constvars

const (
	MethodGet  = "GET"
	MethodPost = "POST"
)

const (
	MIMEApplicationJSON     = "application/json"
	MIMEApplicationFHIRJSON = "application/fhir+json"
	MIMEApplicationForm     = "application/x-www-form-urlencoded"

	MIMETextHTMLCharsetUTF8 = "text/html; charset=utf-8"
)

const (
	StatusOK      = 200
	StatusCreated = 201

	StatusFound = 302

	StatusBadRequest      = 400
	StatusUnauthorized    = 401
	StatusNotFound        = 404
	StatusTooManyRequests = 429

	StatusInternalServerError = 500
	StatusBadGateway          = 502
	StatusServiceUnavailable  = 503
	StatusGatewayTimeout      = 504
)

const (
	HeaderAccept        = "Accept"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderLocation      = "Location"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXCSRFToken    = "X-CSRF-Token"
)
