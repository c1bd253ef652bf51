package constvars

const (
	ResponseUnknown = "unknown"

	CreateServiceRequestSuccessMessage = "service request created successfully"
	InitializeSessionSuccessMessage    = "session initialized successfully"
	HealthCheckSuccessMessage          = "service is healthy"
)
