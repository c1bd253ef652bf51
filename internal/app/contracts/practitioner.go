package contracts

import (
	"context"

	"github.com/Ardenexal/imaging-request/internal/pkg/fhir_dto"
)

type PractitionerFhirClient interface {
	FindPractitionerByID(ctx context.Context, practitionerID string) (*fhir_dto.Practitioner, error)
}
