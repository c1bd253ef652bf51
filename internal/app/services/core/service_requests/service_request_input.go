package service_requests

import (
	"errors"
	"strings"
	"time"

	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/Ardenexal/imaging-request/internal/pkg/dto/requests"
	"github.com/Ardenexal/imaging-request/internal/pkg/exceptions"
	"github.com/Ardenexal/imaging-request/internal/pkg/utils"
)

// IdentifierGenerator produces the placer group identifier for an HPI-O.
type IdentifierGenerator func(hpio string) (string, error)

// PrepareServiceRequestInput validates a submission and fills in every derived
// field. The request code is checked before anything else so an empty order never
// reaches the FHIR server.
func PrepareServiceRequestInput(input *requests.CreateServiceRequest, now time.Time, generate IdentifierGenerator) error {
	if strings.TrimSpace(input.RequestCode) == "" {
		return exceptions.ErrServiceRequestCodeRequired(nil)
	}

	input.RequestCodeCode, input.RequestCodeDisplay = utils.ParseRequestCode(input.RequestCode)
	if input.RequestCodeCode == "" {
		return exceptions.ErrServiceRequestCodeRequired(errors.New("request_code has no code part"))
	}

	if err := utils.ValidateStruct(input); err != nil {
		return exceptions.ErrInputValidation(err)
	}

	placerGroupIdentifier, err := generate(input.PlacerOrganizationHPIO)
	if err != nil {
		return exceptions.ErrGenerateIdentifier(err)
	}
	input.PlacerGroupIdentifier = placerGroupIdentifier

	input.Status = constvars.ServiceRequestStatusActive
	input.CategoryCode = constvars.ServiceRequestCategoryImagingCode
	input.CategoryDisplay = constvars.ServiceRequestCategoryImagingDisplay
	input.PerformerTypeCode = constvars.ServiceRequestPerformerRadiologistCode
	input.PerformerTypeDisplay = constvars.ServiceRequestPerformerRadiologistDisplay
	input.AuthoredOn = now.UTC().Format(constvars.ServiceRequestAuthoredOnLayout)

	return nil
}
