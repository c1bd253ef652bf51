package contracts

import (
	"context"

	"github.com/Ardenexal/imaging-request/internal/pkg/fhir_dto"
)

type OrganizationFhirClient interface {
	FindOrganizationByID(ctx context.Context, organizationID string) (*fhir_dto.Organization, error)
}
