package contracts

import "net/http"

// HTTPDoer is the transport every FHIR client sends its requests through.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}
