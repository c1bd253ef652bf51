package service_requests

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Ardenexal/imaging-request/internal/app/contracts"
	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/Ardenexal/imaging-request/internal/pkg/exceptions"
	"github.com/Ardenexal/imaging-request/internal/pkg/fhir_dto"
	"github.com/Ardenexal/imaging-request/internal/pkg/utils"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type serviceRequestFhirClient struct {
	BaseUrl string
	Client  contracts.HTTPDoer
	Log     *zap.Logger
}

func NewServiceRequestFhirClient(baseUrl string, client contracts.HTTPDoer, logger *zap.Logger) contracts.ServiceRequestFhirClient {
	return &serviceRequestFhirClient{
		BaseUrl: utils.BuildResourceURL(baseUrl, constvars.ResourceServiceRequest),
		Client:  client,
		Log:     logger,
	}
}

func (c *serviceRequestFhirClient) CreateServiceRequest(ctx context.Context, request *fhir_dto.ServiceRequest) (*fhir_dto.CreateServiceRequestOutput, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("serviceRequestFhirClient.CreateServiceRequest called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	requestJSON, err := json.Marshal(request)
	if err != nil {
		c.Log.Error("serviceRequestFhirClient.CreateServiceRequest error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.BaseUrl, bytes.NewBuffer(requestJSON))
	if err != nil {
		c.Log.Error("serviceRequestFhirClient.CreateServiceRequest error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)

	resp, err := c.send(req, "serviceRequestFhirClient.CreateServiceRequest", requestID)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusCreated {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			c.Log.Error("serviceRequestFhirClient.CreateServiceRequest error reading response body",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrCreateFHIRResource(err, constvars.ResourceServiceRequest)
		}

		fhirErrorIssue := utils.OperationOutcomeError(bodyBytes, resp.Status)
		c.Log.Error("serviceRequestFhirClient.CreateServiceRequest FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(fhirErrorIssue),
		)
		return nil, exceptions.ErrCreateFHIRResource(fhirErrorIssue, constvars.ResourceServiceRequest)
	}

	serviceRequest := new(fhir_dto.CreateServiceRequestOutput)
	if err := json.NewDecoder(resp.Body).Decode(serviceRequest); err != nil {
		c.Log.Error("serviceRequestFhirClient.CreateServiceRequest error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceServiceRequest)
	}

	if serviceRequest.ID == "" {
		err := errors.New("created resource has no id")
		c.Log.Error("serviceRequestFhirClient.CreateServiceRequest FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateFHIRResource(err, constvars.ResourceServiceRequest)
	}

	c.Log.Info("serviceRequestFhirClient.CreateServiceRequest succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceRequestID, serviceRequest.ID),
	)
	return serviceRequest, nil
}

// FindServiceRequestByID reads a ServiceRequest. With expand the read is a search
// that also includes the subject Patient and requester PractitionerRole.
func (c *serviceRequestFhirClient) FindServiceRequestByID(ctx context.Context, serviceRequestID string, expand bool) (*fhir_dto.ServiceRequestDetail, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("serviceRequestFhirClient.FindServiceRequestByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceRequestID, serviceRequestID),
		zap.Bool("expand", expand),
	)

	if err := utils.ValidateResourceID(serviceRequestID); err != nil {
		c.Log.Warn("serviceRequestFhirClient.FindServiceRequestByID rejected resource id",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInvalidResourceID(err, constvars.ResourceServiceRequest)
	}

	requestURL := fmt.Sprintf("%s/%s", c.BaseUrl, url.PathEscape(serviceRequestID))
	if expand {
		query := url.Values{}
		query.Set(constvars.FhirSearchParamID, serviceRequestID)
		query.Add(constvars.FhirSearchParamInclude, constvars.ServiceRequestIncludeSubject)
		query.Add(constvars.FhirSearchParamInclude, constvars.ServiceRequestIncludeRequester)
		requestURL = c.BaseUrl + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, requestURL, nil)
	if err != nil {
		c.Log.Error("serviceRequestFhirClient.FindServiceRequestByID error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)

	resp, err := c.send(req, "serviceRequestFhirClient.FindServiceRequestByID", requestID)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == constvars.StatusNotFound {
		c.Log.Warn("serviceRequestFhirClient.FindServiceRequestByID service request not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceRequestID, serviceRequestID),
		)
		return nil, exceptions.ErrNoDataFHIRResource(nil, constvars.ResourceServiceRequest)
	}

	if resp.StatusCode != constvars.StatusOK {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			c.Log.Error("serviceRequestFhirClient.FindServiceRequestByID error reading response body",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrGetFHIRResource(err, constvars.ResourceServiceRequest)
		}

		fhirErrorIssue := utils.OperationOutcomeError(bodyBytes, resp.Status)
		c.Log.Error("serviceRequestFhirClient.FindServiceRequestByID FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(fhirErrorIssue),
		)
		return nil, exceptions.ErrGetFHIRResource(fhirErrorIssue, constvars.ResourceServiceRequest)
	}

	var detail *fhir_dto.ServiceRequestDetail
	if expand {
		detail, err = c.decodeIncludeBundle(resp.Body)
	} else {
		detail, err = c.decodeServiceRequest(resp.Body)
	}
	if err != nil {
		c.Log.Error("serviceRequestFhirClient.FindServiceRequestByID error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) {
			return nil, customErr
		}
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceServiceRequest)
	}

	c.Log.Info("serviceRequestFhirClient.FindServiceRequestByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceRequestID, detail.ServiceRequest.ID),
		zap.Bool("patient_included", detail.Patient != nil),
		zap.Bool("practitioner_role_included", detail.PractitionerRole != nil),
	)
	return detail, nil
}

func (c *serviceRequestFhirClient) send(req *http.Request, caller, requestID string) (*http.Response, error) {
	resp, err := c.Client.Do(req)
	if err != nil {
		c.Log.Error(caller+" error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingFhirUrlKey, req.URL.String()),
			zap.Error(err),
		)
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) {
			return nil, customErr
		}
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	return resp, nil
}

func (c *serviceRequestFhirClient) decodeServiceRequest(body io.Reader) (*fhir_dto.ServiceRequestDetail, error) {
	serviceRequest := new(fhir_dto.ServiceRequest)
	if err := json.NewDecoder(body).Decode(serviceRequest); err != nil {
		return nil, err
	}
	if err := utils.CheckResourceType(serviceRequest.ResourceType, constvars.ResourceServiceRequest); err != nil {
		return nil, err
	}
	return &fhir_dto.ServiceRequestDetail{ServiceRequest: serviceRequest}, nil
}

// decodeIncludeBundle routes each searchset entry to its concrete type. The search
// matches at most one ServiceRequest since it is keyed on _id.
func (c *serviceRequestFhirClient) decodeIncludeBundle(body io.Reader) (*fhir_dto.ServiceRequestDetail, error) {
	bundle := new(fhir_dto.FHIRBundle)
	if err := json.NewDecoder(body).Decode(bundle); err != nil {
		return nil, err
	}
	if bundle.ResourceType != constvars.ResourceBundle {
		return nil, fmt.Errorf("expected %s, got %q", constvars.ResourceBundle, bundle.ResourceType)
	}

	detail := new(fhir_dto.ServiceRequestDetail)
	for _, entry := range bundle.Entry {
		resourceType, _, err := entry.ResourceType()
		if err != nil {
			return nil, err
		}

		switch resourceType {
		case constvars.ResourceServiceRequest:
			if entry.SearchMode() == constvars.FhirBundleEntrySearchModeInclude {
				continue
			}
			serviceRequest := new(fhir_dto.ServiceRequest)
			if err := json.Unmarshal(entry.Resource, serviceRequest); err != nil {
				return nil, err
			}
			detail.ServiceRequest = serviceRequest
		case constvars.ResourcePatient:
			patient := new(fhir_dto.Patient)
			if err := json.Unmarshal(entry.Resource, patient); err != nil {
				return nil, err
			}
			detail.Patient = patient
		case constvars.ResourcePractitionerRole:
			practitionerRole := new(fhir_dto.PractitionerRole)
			if err := json.Unmarshal(entry.Resource, practitionerRole); err != nil {
				return nil, err
			}
			detail.PractitionerRole = practitionerRole
		}
	}

	if detail.ServiceRequest == nil {
		return nil, exceptions.ErrNoDataFHIRResource(nil, constvars.ResourceServiceRequest)
	}
	return detail, nil
}
