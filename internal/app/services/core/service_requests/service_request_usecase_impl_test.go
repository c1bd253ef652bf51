package service_requests

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Ardenexal/imaging-request/internal/app/models"
	"github.com/Ardenexal/imaging-request/internal/app/services/shared/metrics"
	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/Ardenexal/imaging-request/internal/pkg/dto/requests"
	"github.com/Ardenexal/imaging-request/internal/pkg/exceptions"
	"github.com/Ardenexal/imaging-request/internal/pkg/fhir_dto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type usecaseFixture struct {
	usecase          *serviceRequestUsecase
	serviceRequests  *MockServiceRequestFhirClient
	patients         *MockPatientFhirClient
	practitioners    *MockPractitionerFhirClient
	practitionerRole *MockPractitionerRoleFhirClient
	organizations    *MockOrganizationFhirClient
	metrics          *metrics.Metrics
}

func newUsecaseFixture() *usecaseFixture {
	f := &usecaseFixture{
		serviceRequests:  new(MockServiceRequestFhirClient),
		patients:         new(MockPatientFhirClient),
		practitioners:    new(MockPractitionerFhirClient),
		practitionerRole: new(MockPractitionerRoleFhirClient),
		organizations:    new(MockOrganizationFhirClient),
		metrics:          metrics.New(prometheus.NewRegistry()),
	}
	uc := NewServiceRequestUsecase(f.serviceRequests, f.patients, f.practitioners, f.practitionerRole, f.organizations, f.metrics, zap.NewNop())
	f.usecase = uc.(*serviceRequestUsecase)
	f.usecase.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	f.usecase.generate = fixedGenerator("ORD57621-12345")
	return f
}

func testSession() *models.Session {
	return &models.Session{
		SessionID:            "sess-1",
		PatientID:            "pat-1",
		PractitionerID:       "prac-1",
		PractitionerRoleID:   "role-1",
		PlacerOrganizationID: "org-placer",
		FillerOrganizationID: "org-filler",
	}
}

func TestCreateServiceRequest_PersistsBuiltResource(t *testing.T) {
	f := newUsecaseFixture()

	var sent *fhir_dto.ServiceRequest
	f.serviceRequests.On("CreateServiceRequest", mock.Anything, mock.AnythingOfType("*fhir_dto.ServiceRequest")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*fhir_dto.ServiceRequest) }).
		Return(&fhir_dto.CreateServiceRequestOutput{ResourceType: constvars.ResourceServiceRequest, ID: "sr-1"}, nil)

	request := &requests.CreateServiceRequest{
		PlacerOrganizationName: "Placer Radiology",
		PlacerOrganizationHPIO: "8003628233357621",
		RequestCode:            `399208008 "Plain chest X-ray"`,
		Priority:               constvars.ServiceRequestPriorityUrgent,
		ReasonCodeCode:         "49727002",
	}

	out, err := f.usecase.CreateServiceRequest(context.Background(), testSession(), request)

	require.NoError(t, err)
	assert.Equal(t, "sr-1", out.ID)
	f.serviceRequests.AssertExpectations(t)

	require.NotNil(t, sent)
	assert.Equal(t, "Patient/pat-1", sent.Subject.Reference)
	assert.Equal(t, "PractitionerRole/role-1", sent.Requester.Reference)
	assert.Equal(t, "ORD57621-12345", sent.Requisition.Value)
	assert.Equal(t, "2024-05-01T10:00:00.000Z", sent.AuthoredOn)
	assert.Equal(t, "Plain chest X-ray", sent.Code.Coding[0].Display)
	require.Len(t, sent.ReasonCode, 1)
	assert.Equal(t, "Cough", sent.ReasonCode[0].Coding[0].Display)

	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.ServiceRequestsCreated))
}

func TestCreateServiceRequest_FormValuesWinOverSession(t *testing.T) {
	f := newUsecaseFixture()

	f.serviceRequests.On("CreateServiceRequest", mock.Anything, mock.MatchedBy(func(sr *fhir_dto.ServiceRequest) bool {
		return sr.Subject.Reference == "Patient/pat-form"
	})).Return(&fhir_dto.CreateServiceRequestOutput{ID: "sr-2"}, nil)

	request := &requests.CreateServiceRequest{
		PatientID:              "pat-form",
		PlacerOrganizationHPIO: "8003628233357621",
		RequestCode:            `12345 "Chest X-ray"`,
	}

	_, err := f.usecase.CreateServiceRequest(context.Background(), testSession(), request)

	require.NoError(t, err)
	f.serviceRequests.AssertExpectations(t)
}

func TestCreateServiceRequest_EmptyRequestCodeNeverPersists(t *testing.T) {
	f := newUsecaseFixture()

	request := &requests.CreateServiceRequest{
		PlacerOrganizationHPIO: "8003628233357621",
		RequestCode:            "",
	}

	out, err := f.usecase.CreateServiceRequest(context.Background(), testSession(), request)

	assert.Nil(t, out)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, exceptions.StatusCodeOf(err))
	f.serviceRequests.AssertNotCalled(t, "CreateServiceRequest", mock.Anything, mock.Anything)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.ValidationFailures))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.ServiceRequestsFailed.WithLabelValues("400")))
}

func TestCreateServiceRequest_PersistenceFailure(t *testing.T) {
	f := newUsecaseFixture()

	f.serviceRequests.On("CreateServiceRequest", mock.Anything, mock.Anything).
		Return(nil, exceptions.ErrCreateFHIRResource(nil, constvars.ResourceServiceRequest))

	request := &requests.CreateServiceRequest{
		PlacerOrganizationHPIO: "8003628233357621",
		RequestCode:            `12345 "Chest X-ray"`,
	}

	_, err := f.usecase.CreateServiceRequest(context.Background(), testSession(), request)

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, exceptions.StatusCodeOf(err))
	assert.Equal(t, float64(0), testutil.ToFloat64(f.metrics.ServiceRequestsCreated))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.ServiceRequestsFailed.WithLabelValues("500")))
}

func TestGetCreateForm_LoadsSessionResources(t *testing.T) {
	f := newUsecaseFixture()
	ctx := context.Background()

	f.patients.On("FindPatientByID", ctx, "pat-1").Return(&fhir_dto.Patient{ID: "pat-1"}, nil)
	f.practitioners.On("FindPractitionerByID", ctx, "prac-1").Return(&fhir_dto.Practitioner{ID: "prac-1"}, nil)
	f.practitionerRole.On("FindPractitionerRoleByID", ctx, "role-1").Return(&fhir_dto.PractitionerRole{ID: "role-1"}, nil)
	f.organizations.On("FindOrganizationByID", ctx, "org-placer").Return(&fhir_dto.Organization{ID: "org-placer", Name: "Placer"}, nil)
	f.organizations.On("FindOrganizationByID", ctx, "org-filler").Return(&fhir_dto.Organization{ID: "org-filler", Name: "Filler"}, nil)

	form, err := f.usecase.GetCreateForm(ctx, testSession())

	require.NoError(t, err)
	assert.Equal(t, "pat-1", form.Patient.ID)
	assert.Equal(t, "Placer", form.PlacerOrganization.Name)
	assert.Equal(t, "Filler", form.FillerOrganization.Name)
	assert.Equal(t, constvars.ImagingRequestCodes, form.RequestCodes)
	assert.Equal(t, constvars.ServiceRequestPriorities, form.Priorities)
	f.patients.AssertExpectations(t)
	f.organizations.AssertExpectations(t)
}

func TestGetCreateForm_SkipsMissingIdentifiers(t *testing.T) {
	f := newUsecaseFixture()
	ctx := context.Background()

	f.patients.On("FindPatientByID", ctx, "pat-1").Return(&fhir_dto.Patient{ID: "pat-1"}, nil)

	form, err := f.usecase.GetCreateForm(ctx, &models.Session{PatientID: "pat-1"})

	require.NoError(t, err)
	assert.Nil(t, form.Practitioner)
	assert.Nil(t, form.PlacerOrganization)
	f.organizations.AssertNotCalled(t, "FindOrganizationByID", mock.Anything, mock.Anything)
}

func TestGetCreateForm_RequiresPatient(t *testing.T) {
	f := newUsecaseFixture()

	_, err := f.usecase.GetCreateForm(context.Background(), &models.Session{})

	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, exceptions.StatusCodeOf(err))
	f.patients.AssertNotCalled(t, "FindPatientByID", mock.Anything, mock.Anything)
}

func TestGetServiceRequest_ReadsExpanded(t *testing.T) {
	f := newUsecaseFixture()
	ctx := context.Background()
	detail := &fhir_dto.ServiceRequestDetail{ServiceRequest: &fhir_dto.ServiceRequest{ID: "sr-1"}}

	f.serviceRequests.On("FindServiceRequestByID", ctx, "sr-1", true).Return(detail, nil)

	got, err := f.usecase.GetServiceRequest(ctx, "sr-1")

	require.NoError(t, err)
	assert.Same(t, detail, got)
	f.serviceRequests.AssertExpectations(t)
}

func TestGetServiceRequest_BlankID(t *testing.T) {
	f := newUsecaseFixture()

	_, err := f.usecase.GetServiceRequest(context.Background(), " ")

	assert.Equal(t, http.StatusBadRequest, exceptions.StatusCodeOf(err))
	f.serviceRequests.AssertNotCalled(t, "FindServiceRequestByID", mock.Anything, mock.Anything, mock.Anything)
}
