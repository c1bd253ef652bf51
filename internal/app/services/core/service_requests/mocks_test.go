package service_requests

import (
	"context"

	"github.com/Ardenexal/imaging-request/internal/pkg/fhir_dto"
	"github.com/stretchr/testify/mock"
)

type MockServiceRequestFhirClient struct {
	mock.Mock
}

func (m *MockServiceRequestFhirClient) CreateServiceRequest(ctx context.Context, request *fhir_dto.ServiceRequest) (*fhir_dto.CreateServiceRequestOutput, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir_dto.CreateServiceRequestOutput), args.Error(1)
}

func (m *MockServiceRequestFhirClient) FindServiceRequestByID(ctx context.Context, serviceRequestID string, expand bool) (*fhir_dto.ServiceRequestDetail, error) {
	args := m.Called(ctx, serviceRequestID, expand)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir_dto.ServiceRequestDetail), args.Error(1)
}

type MockPatientFhirClient struct {
	mock.Mock
}

func (m *MockPatientFhirClient) FindPatientByID(ctx context.Context, patientID string) (*fhir_dto.Patient, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir_dto.Patient), args.Error(1)
}

type MockPractitionerFhirClient struct {
	mock.Mock
}

func (m *MockPractitionerFhirClient) FindPractitionerByID(ctx context.Context, practitionerID string) (*fhir_dto.Practitioner, error) {
	args := m.Called(ctx, practitionerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir_dto.Practitioner), args.Error(1)
}

type MockPractitionerRoleFhirClient struct {
	mock.Mock
}

func (m *MockPractitionerRoleFhirClient) FindPractitionerRoleByID(ctx context.Context, practitionerRoleID string) (*fhir_dto.PractitionerRole, error) {
	args := m.Called(ctx, practitionerRoleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir_dto.PractitionerRole), args.Error(1)
}

type MockOrganizationFhirClient struct {
	mock.Mock
}

func (m *MockOrganizationFhirClient) FindOrganizationByID(ctx context.Context, organizationID string) (*fhir_dto.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir_dto.Organization), args.Error(1)
}
