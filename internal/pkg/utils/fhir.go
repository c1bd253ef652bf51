package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/Ardenexal/imaging-request/internal/pkg/fhir_dto"
	"github.com/goccy/go-json"
)

var fhirResourceID = regexp.MustCompile(`^[A-Za-z0-9\-.]{1,64}$`)

// ValidateResourceID accepts only the FHIR id grammar, so an id can never add
// path segments or a query to a read URL.
func ValidateResourceID(id string) error {
	if !fhirResourceID.MatchString(id) || strings.Trim(id, ".") == "" {
		return fmt.Errorf("%q is not a valid FHIR resource id", id)
	}
	return nil
}

// CheckResourceType rejects a decoded body that is not the resource that was read.
func CheckResourceType(got, want string) error {
	if got != want {
		return fmt.Errorf("expected %s, got %q", want, got)
	}
	return nil
}

// BuildReference is the single place literal references such as Patient/123 are formed.
func BuildReference(resourceType, id string) *fhir_dto.Reference {
	return &fhir_dto.Reference{
		Reference: fmt.Sprintf(constvars.ServiceRequestReferenceFormat, resourceType, id),
	}
}

func BuildSnomedConcept(code, display string) fhir_dto.CodeableConcept {
	return fhir_dto.CodeableConcept{
		Coding: []fhir_dto.Coding{
			{
				Code:    code,
				Display: display,
				System:  constvars.FhirSystemSnomed,
			},
		},
	}
}

func BuildRequisitionSystem(hpio string) string {
	return fmt.Sprintf(constvars.ServiceRequestRequisitionSystemFormat, hpio)
}

// BuildResourceURL joins the FHIR base URL and a resource type regardless of
// whether the base carries a trailing slash.
func BuildResourceURL(baseUrl, resourceType string) string {
	return strings.TrimSuffix(baseUrl, "/") + "/" + resourceType
}

// OperationOutcomeError turns an unsuccessful FHIR response body into an error
// carrying the first issue's diagnostics, falling back to the HTTP status.
func OperationOutcomeError(body []byte, status string) error {
	var outcome fhir_dto.OperationOutcome
	if err := json.Unmarshal(body, &outcome); err == nil && outcome.ResourceType == constvars.ResourceOperationOutcome && len(outcome.Issue) > 0 {
		issue := outcome.Issue[0]
		if issue.Diagnostics != "" {
			return errors.New(issue.Diagnostics)
		}
		if issue.Code != "" {
			return fmt.Errorf("%s: %s", status, issue.Code)
		}
	}
	return fmt.Errorf("unexpected FHIR response status %s", status)
}
