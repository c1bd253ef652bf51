package contracts

import (
	"context"

	"github.com/Ardenexal/imaging-request/internal/pkg/fhir_dto"
)

type PractitionerRoleFhirClient interface {
	FindPractitionerRoleByID(ctx context.Context, practitionerRoleID string) (*fhir_dto.PractitionerRole, error)
}
