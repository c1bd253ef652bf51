package fhir_dto

import (
	"encoding/json"

	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
)

type FHIRBundle struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id,omitempty"`
	Type         string        `json:"type"`
	Total        int           `json:"total"`
	Entry        []BundleEntry `json:"entry"`
}

type BundleEntry struct {
	FullUrl  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource"`
	Search   *BundleSearch   `json:"search,omitempty"`
}

type BundleSearch struct {
	Mode string `json:"mode,omitempty"`
}

// resourceHeader is decoded first to route a raw bundle entry to its concrete type.
type resourceHeader struct {
	ResourceType string `json:"resourceType"`
	ID           string `json:"id"`
}

// ResourceType peeks at the resourceType and id of a raw entry.
func (e BundleEntry) ResourceType() (string, string, error) {
	header := new(resourceHeader)
	if err := json.Unmarshal(e.Resource, header); err != nil {
		return "", "", err
	}
	return header.ResourceType, header.ID, nil
}

// SearchMode reports why the entry is in a searchset. Servers may omit it for
// primary results.
func (e BundleEntry) SearchMode() string {
	if e.Search == nil || e.Search.Mode == "" {
		return constvars.FhirBundleEntrySearchModeMatch
	}
	return e.Search.Mode
}
