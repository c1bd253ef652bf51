package constvars

const (
	ViewIndex                = "index"
	ViewServiceRequestCreate = "servicerequest-create"
	ViewServiceRequestView   = "servicerequest-view"
	ViewError                = "error"
)

const (
	ViewTitleIndex          = "Imaging Requests"
	ViewTitleNewRequest     = "New Service Request"
	ViewTitleServiceRequest = "Service Request"
	ViewTitleError          = "Error"
)

const (
	RouteIndex                = "/"
	RouteServiceRequestPrefix = "/servicerequest"
	RouteServiceRequestCreate = RouteServiceRequestPrefix + "/"
	RouteHealthCheck          = "/healthz"
	RouteMetrics              = "/metrics"
)
