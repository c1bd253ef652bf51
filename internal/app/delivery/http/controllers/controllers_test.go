package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Ardenexal/imaging-request/internal/app/config"
	"github.com/Ardenexal/imaging-request/internal/app/contracts"
	"github.com/Ardenexal/imaging-request/internal/app/delivery/http/handlers"
	"github.com/Ardenexal/imaging-request/internal/app/drivers/views"
	"github.com/Ardenexal/imaging-request/internal/app/models"
	"github.com/Ardenexal/imaging-request/internal/app/services/core/service_requests"
	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/Ardenexal/imaging-request/internal/pkg/dto/requests"
	"github.com/Ardenexal/imaging-request/internal/pkg/dto/responses"
	"github.com/Ardenexal/imaging-request/internal/pkg/exceptions"
	"github.com/Ardenexal/imaging-request/internal/pkg/fhir_dto"
	"github.com/Ardenexal/imaging-request/internal/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockServiceRequestUsecase struct {
	mock.Mock
}

func (m *MockServiceRequestUsecase) GetCreateForm(ctx context.Context, session *models.Session) (*responses.ServiceRequestForm, error) {
	args := m.Called(ctx, session)
	form, _ := args.Get(0).(*responses.ServiceRequestForm)
	return form, args.Error(1)
}

func (m *MockServiceRequestUsecase) CreateServiceRequest(ctx context.Context, session *models.Session, request *requests.CreateServiceRequest) (*fhir_dto.CreateServiceRequestOutput, error) {
	args := m.Called(ctx, session, request)
	output, _ := args.Get(0).(*fhir_dto.CreateServiceRequestOutput)
	return output, args.Error(1)
}

func (m *MockServiceRequestUsecase) GetServiceRequest(ctx context.Context, serviceRequestID string) (*fhir_dto.ServiceRequestDetail, error) {
	args := m.Called(ctx, serviceRequestID)
	detail, _ := args.Get(0).(*fhir_dto.ServiceRequestDetail)
	return detail, args.Error(1)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) InitializeSession(ctx context.Context, request *requests.InitializeSession) (string, *models.Session, error) {
	args := m.Called(ctx, request)
	session, _ := args.Get(1).(*models.Session)
	return args.String(0), session, args.Error(2)
}

func (m *MockSessionService) GetSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	args := m.Called(ctx, token)
	session, _ := args.Get(0).(*models.Session)
	return session, args.Error(1)
}

func (m *MockSessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func testInternalConfig() *config.InternalConfig {
	return &config.InternalConfig{
		App:     config.App{Env: constvars.AppEnvDevelopment, RequestTimeoutInSecond: 5},
		Session: config.Session{ExpTimeInHour: 1},
	}
}

func newRenderer(t *testing.T) contracts.ViewRenderer {
	renderer, err := views.NewTemplateRenderer()
	require.NoError(t, err)
	return renderer
}

func newServiceRequestController(t *testing.T, usecase *MockServiceRequestUsecase) *ServiceRequestController {
	renderer := newRenderer(t)
	internalConfig := testInternalConfig()
	errorHandler := handlers.NewErrorHandler(zap.NewNop(), renderer, internalConfig.App.Env)
	return NewServiceRequestController(zap.NewNop(), usecase, renderer, errorHandler, internalConfig)
}

func withSession(r *http.Request, session *models.Session) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), constvars.CONTEXT_SESSION_KEY, session))
}

func serveWithID(handler http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Get(constvars.RouteServiceRequestPrefix+"/{id}", handler)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, r)
	return rr
}

func TestGetCreateForm_RedirectsWithoutPatient(t *testing.T) {
	usecase := new(MockServiceRequestUsecase)
	ctrl := newServiceRequestController(t, usecase)

	rr := httptest.NewRecorder()
	ctrl.GetCreateForm(rr, httptest.NewRequest(http.MethodGet, constvars.RouteServiceRequestCreate, nil))

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, constvars.RouteIndex, rr.Header().Get(constvars.HeaderLocation))
	usecase.AssertNotCalled(t, "GetCreateForm", mock.Anything, mock.Anything)
}

func TestGetCreateForm_RendersForm(t *testing.T) {
	usecase := new(MockServiceRequestUsecase)
	ctrl := newServiceRequestController(t, usecase)
	session := &models.Session{PatientID: "pat-1"}

	usecase.On("GetCreateForm", mock.Anything, session).Return(&responses.ServiceRequestForm{
		Patient: &fhir_dto.Patient{ID: "pat-1", Name: []fhir_dto.HumanName{{Text: "Jane Citizen"}}},
		PlacerOrganization: &fhir_dto.Organization{
			ID:         "org-1",
			Name:       "Placer Radiology",
			Identifier: []fhir_dto.Identifier{{System: constvars.FhirSystemAUHPIO, Value: "8003628233357621"}},
		},
		RequestCodes: constvars.ImagingRequestCodes,
		ReasonCodes:  constvars.ImagingReasonCodes,
		Priorities:   constvars.ServiceRequestPriorities,
	}, nil)

	rr := httptest.NewRecorder()
	req := withSession(httptest.NewRequest(http.MethodGet, constvars.RouteServiceRequestCreate, nil), session)
	ctrl.GetCreateForm(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Jane Citizen")
	assert.Contains(t, body, `value="8003628233357621"`)
	assert.Contains(t, body, constvars.ViewTitleNewRequest)
}

func TestCreateServiceRequest_RedirectsToDetail(t *testing.T) {
	usecase := new(MockServiceRequestUsecase)
	ctrl := newServiceRequestController(t, usecase)
	session := &models.Session{PatientID: "pat-1"}

	usecase.On("CreateServiceRequest", mock.Anything, session, mock.MatchedBy(func(r *requests.CreateServiceRequest) bool {
		return r.RequestCode == `12345 "Chest X-ray"` && r.PlacerOrganizationHPIO == "8003628233357621"
	})).Return(&fhir_dto.CreateServiceRequestOutput{ID: "sr-1"}, nil)

	form := url.Values{}
	form.Set(constvars.FormFieldRequestCode, `12345 "Chest X-ray"`)
	form.Set(constvars.FormFieldPlacerOrganizationHPIO, "8003628233357621")
	req := httptest.NewRequest(http.MethodPost, constvars.RouteServiceRequestCreate, strings.NewReader(form.Encode()))
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationForm)

	rr := httptest.NewRecorder()
	ctrl.CreateServiceRequest(rr, withSession(req, session))

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/servicerequest/sr-1", rr.Header().Get(constvars.HeaderLocation))
	usecase.AssertExpectations(t)
}

func TestCreateServiceRequest_ValidationErrorRendersErrorPage(t *testing.T) {
	usecase := new(MockServiceRequestUsecase)
	ctrl := newServiceRequestController(t, usecase)

	usecase.On("CreateServiceRequest", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, exceptions.ErrServiceRequestCodeRequired(nil))

	req := httptest.NewRequest(http.MethodPost, constvars.RouteServiceRequestCreate, strings.NewReader(""))
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationForm)

	rr := httptest.NewRecorder()
	ctrl.CreateServiceRequest(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Service requested is required")
}

func TestCreateServiceRequest_JSONClientGetsCreated(t *testing.T) {
	usecase := new(MockServiceRequestUsecase)
	ctrl := newServiceRequestController(t, usecase)

	usecase.On("CreateServiceRequest", mock.Anything, mock.Anything, mock.Anything).
		Return(&fhir_dto.CreateServiceRequestOutput{ResourceType: constvars.ResourceServiceRequest, ID: "sr-7"}, nil)

	req := httptest.NewRequest(http.MethodPost, constvars.RouteServiceRequestCreate, strings.NewReader("request_code=1+%22X%22"))
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationForm)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	rr := httptest.NewRecorder()
	ctrl.CreateServiceRequest(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/servicerequest/sr-7", rr.Header().Get(constvars.HeaderLocation))
}

func TestGetServiceRequest_NotFound(t *testing.T) {
	usecase := new(MockServiceRequestUsecase)
	ctrl := newServiceRequestController(t, usecase)

	usecase.On("GetServiceRequest", mock.Anything, "missing").
		Return(nil, exceptions.ErrNoDataFHIRResource(nil, constvars.ResourceServiceRequest))

	rr := serveWithID(ctrl.GetServiceRequest, httptest.NewRequest(http.MethodGet, "/servicerequest/missing", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), constvars.ErrClientResourceNotFound)
}

// A resource produced by the builder and echoed back by the FHIR server must
// render on the detail page.
func TestGetServiceRequest_RendersBuiltResource(t *testing.T) {
	input := &requests.CreateServiceRequest{
		PatientID:                "pat-1",
		PlacerPractitionerRoleID: "role-1",
		PlacerOrganizationName:   "Placer Radiology",
		PlacerOrganizationHPIO:   "8003628233357621",
		RequestCode:              `12345 "Chest X-ray"`,
		ReasonCodeCode:           "49727002",
		ReasonCodeDisplay:        "Cough",
	}
	require.NoError(t, service_requests.PrepareServiceRequestInput(input, time.Now(), utils.GeneratePlacerGroupIdentifier))

	built := service_requests.BuildServiceRequest(input)
	raw, err := json.Marshal(built)
	require.NoError(t, err)
	echoed := new(fhir_dto.ServiceRequest)
	require.NoError(t, json.Unmarshal(raw, echoed))
	echoed.ID = "sr-1"

	usecase := new(MockServiceRequestUsecase)
	ctrl := newServiceRequestController(t, usecase)
	usecase.On("GetServiceRequest", mock.Anything, "sr-1").Return(&fhir_dto.ServiceRequestDetail{
		ServiceRequest: echoed,
		Patient:        &fhir_dto.Patient{ID: "pat-1", Name: []fhir_dto.HumanName{{Text: "Jane Citizen"}}},
	}, nil)

	rr := serveWithID(ctrl.GetServiceRequest, httptest.NewRequest(http.MethodGet, "/servicerequest/sr-1", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Chest X-ray")
	assert.Contains(t, body, "Imaging")
	assert.Contains(t, body, "Diagnostic radiologist")
	assert.Contains(t, body, "Cough")
	assert.Contains(t, body, "Jane Citizen")
	assert.Contains(t, body, input.PlacerGroupIdentifier)
}

func TestGetServiceRequest_JSON(t *testing.T) {
	usecase := new(MockServiceRequestUsecase)
	ctrl := newServiceRequestController(t, usecase)
	usecase.On("GetServiceRequest", mock.Anything, "sr-1").Return(&fhir_dto.ServiceRequestDetail{
		ServiceRequest: &fhir_dto.ServiceRequest{ResourceType: constvars.ResourceServiceRequest, ID: "sr-1", Intent: "order"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/servicerequest/sr-1", nil)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)
	rr := serveWithID(ctrl.GetServiceRequest, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, constvars.MIMEApplicationFHIRJSON, rr.Header().Get(constvars.HeaderContentType))
	assert.JSONEq(t, `{"resourceType":"ServiceRequest","id":"sr-1","intent":"order"}`, rr.Body.String())
}

func TestSessionController_Index(t *testing.T) {
	renderer := newRenderer(t)
	ctrl := NewSessionController(zap.NewNop(), new(MockSessionService), renderer,
		handlers.NewErrorHandler(zap.NewNop(), renderer, constvars.AppEnvDevelopment), testInternalConfig())

	rr := httptest.NewRecorder()
	ctrl.Index(rr, httptest.NewRequest(http.MethodGet, constvars.RouteIndex, nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `name="patient_id"`)
}

func TestSessionController_InitializeSession(t *testing.T) {
	renderer := newRenderer(t)
	sessionService := new(MockSessionService)
	ctrl := NewSessionController(zap.NewNop(), sessionService, renderer,
		handlers.NewErrorHandler(zap.NewNop(), renderer, constvars.AppEnvDevelopment), testInternalConfig())

	sessionService.On("InitializeSession", mock.Anything, &requests.InitializeSession{
		PatientID:            "pat-1",
		PractitionerID:       "prac-1",
		PractitionerRoleID:   "role-1",
		PlacerOrganizationID: "org-placer",
		FillerOrganizationID: "org-filler",
	}).Return("signed-token", &models.Session{SessionID: "sess-new"}, nil)
	sessionService.On("DeleteSession", mock.Anything, "sess-old").Return(nil)

	form := url.Values{}
	form.Set(constvars.FormFieldPatientID, "pat-1")
	form.Set(constvars.FormFieldPractitionerID, "prac-1")
	form.Set(constvars.FormFieldPractitionerRoleID, "role-1")
	form.Set(constvars.FormFieldPlacerOrganizationID, "org-placer")
	form.Set(constvars.FormFieldFillerOrganizationID, "org-filler")
	req := httptest.NewRequest(http.MethodPost, constvars.RouteIndex, strings.NewReader(form.Encode()))
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationForm)

	rr := httptest.NewRecorder()
	ctrl.InitializeSession(rr, withSession(req, &models.Session{SessionID: "sess-old"}))

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, constvars.RouteServiceRequestCreate, rr.Header().Get(constvars.HeaderLocation))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constvars.SessionCookieName, cookies[0].Name)
	assert.Equal(t, "signed-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	sessionService.AssertExpectations(t)
}

type pingRepository struct {
	contracts.RedisRepository
	err error
}

func (p pingRepository) Ping(ctx context.Context) error {
	return p.err
}

func TestHealthCheck(t *testing.T) {
	internalConfig := testInternalConfig()
	internalConfig.App.Version = "v1.2"

	rr := httptest.NewRecorder()
	NewHealthController(zap.NewNop(), pingRepository{}, internalConfig).
		HealthCheck(rr, httptest.NewRequest(http.MethodGet, constvars.RouteHealthCheck, nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"version":"v1.2"`)
}

func TestHealthCheck_RedisDown(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHealthController(zap.NewNop(), pingRepository{err: exceptions.ErrRedisGet(context.DeadlineExceeded)}, testInternalConfig()).
		HealthCheck(rr, httptest.NewRequest(http.MethodGet, constvars.RouteHealthCheck, nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success":false`)
}
