package contracts

import (
	"context"

	"github.com/Ardenexal/imaging-request/internal/pkg/fhir_dto"
)

type PatientFhirClient interface {
	FindPatientByID(ctx context.Context, patientID string) (*fhir_dto.Patient, error)
}
