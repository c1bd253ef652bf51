package service_requests

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Ardenexal/imaging-request/internal/app/contracts"
	"github.com/Ardenexal/imaging-request/internal/app/models"
	"github.com/Ardenexal/imaging-request/internal/app/services/shared/metrics"
	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/Ardenexal/imaging-request/internal/pkg/dto/requests"
	"github.com/Ardenexal/imaging-request/internal/pkg/dto/responses"
	"github.com/Ardenexal/imaging-request/internal/pkg/exceptions"
	"github.com/Ardenexal/imaging-request/internal/pkg/fhir_dto"
	"github.com/Ardenexal/imaging-request/internal/pkg/utils"
	"go.uber.org/zap"
)

type serviceRequestUsecase struct {
	ServiceRequestFhirClient   contracts.ServiceRequestFhirClient
	PatientFhirClient          contracts.PatientFhirClient
	PractitionerFhirClient     contracts.PractitionerFhirClient
	PractitionerRoleFhirClient contracts.PractitionerRoleFhirClient
	OrganizationFhirClient     contracts.OrganizationFhirClient
	Metrics                    *metrics.Metrics
	Log                        *zap.Logger

	now      func() time.Time
	generate IdentifierGenerator
}

func NewServiceRequestUsecase(
	serviceRequestFhirClient contracts.ServiceRequestFhirClient,
	patientFhirClient contracts.PatientFhirClient,
	practitionerFhirClient contracts.PractitionerFhirClient,
	practitionerRoleFhirClient contracts.PractitionerRoleFhirClient,
	organizationFhirClient contracts.OrganizationFhirClient,
	serviceMetrics *metrics.Metrics,
	logger *zap.Logger,
) contracts.ServiceRequestUsecase {
	return &serviceRequestUsecase{
		ServiceRequestFhirClient:   serviceRequestFhirClient,
		PatientFhirClient:          patientFhirClient,
		PractitionerFhirClient:     practitionerFhirClient,
		PractitionerRoleFhirClient: practitionerRoleFhirClient,
		OrganizationFhirClient:     organizationFhirClient,
		Metrics:                    serviceMetrics,
		Log:                        logger,
		now:                        time.Now,
		generate:                   utils.GeneratePlacerGroupIdentifier,
	}
}

// GetCreateForm loads the resources the session points at. Only the patient is
// mandatory; the remaining lookups are skipped when the session has no id for them.
func (uc *serviceRequestUsecase) GetCreateForm(ctx context.Context, session *models.Session) (*responses.ServiceRequestForm, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("serviceRequestUsecase.GetCreateForm called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if !session.HasPatient() {
		return nil, exceptions.ErrInvalidSession(nil)
	}

	form := &responses.ServiceRequestForm{
		RequestCodes: constvars.ImagingRequestCodes,
		ReasonCodes:  constvars.ImagingReasonCodes,
		Priorities:   constvars.ServiceRequestPriorities,
	}

	var err error
	form.Patient, err = uc.PatientFhirClient.FindPatientByID(ctx, session.PatientID)
	if err != nil {
		return nil, err
	}

	if session.PractitionerID != "" {
		form.Practitioner, err = uc.PractitionerFhirClient.FindPractitionerByID(ctx, session.PractitionerID)
		if err != nil {
			return nil, err
		}
	}

	if session.PractitionerRoleID != "" {
		form.PractitionerRole, err = uc.PractitionerRoleFhirClient.FindPractitionerRoleByID(ctx, session.PractitionerRoleID)
		if err != nil {
			return nil, err
		}
	}

	if session.PlacerOrganizationID != "" {
		form.PlacerOrganization, err = uc.OrganizationFhirClient.FindOrganizationByID(ctx, session.PlacerOrganizationID)
		if err != nil {
			return nil, err
		}
	}

	if session.FillerOrganizationID != "" {
		form.FillerOrganization, err = uc.OrganizationFhirClient.FindOrganizationByID(ctx, session.FillerOrganizationID)
		if err != nil {
			return nil, err
		}
	}

	uc.Log.Info("serviceRequestUsecase.GetCreateForm succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, session.PatientID),
	)
	return form, nil
}

func (uc *serviceRequestUsecase) CreateServiceRequest(ctx context.Context, session *models.Session, request *requests.CreateServiceRequest) (*fhir_dto.CreateServiceRequestOutput, error) {
	requestID := utils.GetRequestID(ctx)
	start := time.Now()

	output, err := uc.createServiceRequest(ctx, requestID, session, request)
	if err != nil {
		uc.recordFailure(err)
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.ServiceRequestsCreated.Inc()
	}
	utils.LogBusinessEvent(uc.Log, "service_request_created", requestID,
		zap.String(constvars.LoggingServiceRequestID, output.ID),
		zap.String(constvars.LoggingPlacerGroupIDKey, request.PlacerGroupIdentifier),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	return output, nil
}

func (uc *serviceRequestUsecase) createServiceRequest(ctx context.Context, requestID string, session *models.Session, request *requests.CreateServiceRequest) (*fhir_dto.CreateServiceRequestOutput, error) {
	uc.Log.Info("serviceRequestUsecase.CreateServiceRequest called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	overlaySession(request, session)

	if request.ReasonCodeCode != "" && request.ReasonCodeDisplay == "" {
		request.ReasonCodeDisplay = lookupDisplay(constvars.ImagingReasonCodes, request.ReasonCodeCode)
	}

	err := PrepareServiceRequestInput(request, uc.now(), uc.generate)
	if err != nil {
		uc.Log.Error("serviceRequestUsecase.CreateServiceRequest error preparing input",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	serviceRequest := BuildServiceRequest(request)

	output, err := uc.ServiceRequestFhirClient.CreateServiceRequest(ctx, serviceRequest)
	if err != nil {
		uc.Log.Error("serviceRequestUsecase.CreateServiceRequest error from ServiceRequestFhirClient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("serviceRequestUsecase.CreateServiceRequest succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceRequestID, output.ID),
	)
	return output, nil
}

func (uc *serviceRequestUsecase) GetServiceRequest(ctx context.Context, serviceRequestID string) (*fhir_dto.ServiceRequestDetail, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("serviceRequestUsecase.GetServiceRequest called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceRequestID, serviceRequestID),
	)

	if strings.TrimSpace(serviceRequestID) == "" {
		return nil, exceptions.ErrURLParamValidation(nil, constvars.URLParamServiceRequestID)
	}

	detail, err := uc.ServiceRequestFhirClient.FindServiceRequestByID(ctx, serviceRequestID, true)
	if err != nil {
		uc.Log.Error("serviceRequestUsecase.GetServiceRequest error from ServiceRequestFhirClient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	return detail, nil
}

func (uc *serviceRequestUsecase) recordFailure(err error) {
	if uc.Metrics == nil {
		return
	}
	code := exceptions.StatusCodeOf(err)
	if code == constvars.StatusBadRequest {
		uc.Metrics.ValidationFailures.Inc()
	}
	uc.Metrics.ServiceRequestsFailed.WithLabelValues(strconv.Itoa(code)).Inc()
}

// overlaySession fills identifiers the form left blank from the session.
func overlaySession(request *requests.CreateServiceRequest, session *models.Session) {
	if session == nil {
		return
	}
	if request.PatientID == "" {
		request.PatientID = session.PatientID
	}
	if request.PractitionerID == "" {
		request.PractitionerID = session.PractitionerID
	}
	if request.PlacerPractitionerRoleID == "" {
		request.PlacerPractitionerRoleID = session.PractitionerRoleID
	}
	if request.PlacerOrganizationID == "" {
		request.PlacerOrganizationID = session.PlacerOrganizationID
	}
	if request.FillerOrganizationID == "" {
		request.FillerOrganizationID = session.FillerOrganizationID
	}
}

func lookupDisplay(options []constvars.CodeOption, code string) string {
	for _, option := range options {
		if option.Code == code {
			return option.Display
		}
	}
	return ""
}
