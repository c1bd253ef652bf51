package responses

import (
	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/Ardenexal/imaging-request/internal/pkg/fhir_dto"
)

// ServiceRequestForm is everything the creation form needs to render.
type ServiceRequestForm struct {
	Patient            *fhir_dto.Patient
	Practitioner       *fhir_dto.Practitioner
	PractitionerRole   *fhir_dto.PractitionerRole
	PlacerOrganization *fhir_dto.Organization
	FillerOrganization *fhir_dto.Organization
	RequestCodes       []constvars.CodeOption
	ReasonCodes        []constvars.CodeOption
	Priorities         []string
}
