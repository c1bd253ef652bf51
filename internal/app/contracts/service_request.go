package contracts

import (
	"context"

	"github.com/Ardenexal/imaging-request/internal/app/models"
	"github.com/Ardenexal/imaging-request/internal/pkg/dto/requests"
	"github.com/Ardenexal/imaging-request/internal/pkg/dto/responses"
	"github.com/Ardenexal/imaging-request/internal/pkg/fhir_dto"
)

type ServiceRequestUsecase interface {
	GetCreateForm(ctx context.Context, session *models.Session) (*responses.ServiceRequestForm, error)
	CreateServiceRequest(ctx context.Context, session *models.Session, request *requests.CreateServiceRequest) (*fhir_dto.CreateServiceRequestOutput, error)
	GetServiceRequest(ctx context.Context, serviceRequestID string) (*fhir_dto.ServiceRequestDetail, error)
}

type ServiceRequestFhirClient interface {
	CreateServiceRequest(ctx context.Context, request *fhir_dto.ServiceRequest) (*fhir_dto.CreateServiceRequestOutput, error)
	FindServiceRequestByID(ctx context.Context, serviceRequestID string, expand bool) (*fhir_dto.ServiceRequestDetail, error)
}
