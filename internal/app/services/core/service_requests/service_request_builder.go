package service_requests

import (
	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/Ardenexal/imaging-request/internal/pkg/dto/requests"
	"github.com/Ardenexal/imaging-request/internal/pkg/fhir_dto"
	"github.com/Ardenexal/imaging-request/internal/pkg/utils"
)

// BuildServiceRequest maps a prepared submission onto an AU diagnostic request.
// It does not validate; run PrepareServiceRequestInput first.
func BuildServiceRequest(input *requests.CreateServiceRequest) *fhir_dto.ServiceRequest {
	serviceRequest := &fhir_dto.ServiceRequest{
		ResourceType: constvars.ResourceServiceRequest,
		Meta: &fhir_dto.Meta{
			Profile: []string{constvars.ServiceRequestProfileAUDiagnosticRequest},
		},
		Requisition: &fhir_dto.Identifier{
			Assigner: &fhir_dto.Reference{
				Display: input.PlacerOrganizationName,
			},
			System: utils.BuildRequisitionSystem(input.PlacerOrganizationHPIO),
			Type: &fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{
					{
						Code:    constvars.FhirIdentifierTypePlacerGroup,
						Display: constvars.FhirIdentifierTypePlacerGroupDisplay,
						System:  constvars.FhirSystemV2Table203,
					},
				},
			},
			Value: input.PlacerGroupIdentifier,
		},
		Status: input.Status,
		Intent: constvars.ServiceRequestIntentOrder,
		Category: []fhir_dto.CodeableConcept{
			utils.BuildSnomedConcept(input.CategoryCode, input.CategoryDisplay),
		},
		Priority:   input.Priority,
		Subject:    utils.BuildReference(constvars.ResourcePatient, input.PatientID),
		AuthoredOn: input.AuthoredOn,
		Requester:  utils.BuildReference(constvars.ResourcePractitionerRole, input.PlacerPractitionerRoleID),
	}

	code := utils.BuildSnomedConcept(input.RequestCodeCode, input.RequestCodeDisplay)
	serviceRequest.Code = &code

	performerType := utils.BuildSnomedConcept(input.PerformerTypeCode, input.PerformerTypeDisplay)
	serviceRequest.PerformerType = &performerType

	if input.ReasonCodeCode != "" {
		serviceRequest.ReasonCode = []fhir_dto.CodeableConcept{
			utils.BuildSnomedConcept(input.ReasonCodeCode, input.ReasonCodeDisplay),
		}
	}

	return serviceRequest
}
