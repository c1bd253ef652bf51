package patients

import (
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

type patientFhirClient struct {
	BaseUrl string
	Client  contracts.HTTPDoer
	Log     *zap.Logger
}

func NewPatientFhirClient(baseUrl string, client contracts.HTTPDoer, logger *zap.Logger) contracts.PatientFhirClient {
	return &patientFhirClient{
		BaseUrl: utils.BuildResourceURL(baseUrl, constvars.ResourcePatient),
		Client:  client,
		Log:     logger,
	}
}

func (c *patientFhirClient) FindPatientByID(ctx context.Context, patientID string) (*fhir_dto.Patient, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("patientFhirClient.FindPatientByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	if err := utils.ValidateResourceID(patientID); err != nil {
		c.Log.Warn("patientFhirClient.FindPatientByID rejected resource id",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInvalidResourceID(err, constvars.ResourcePatient)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, fmt.Sprintf("%s/%s", c.BaseUrl, url.PathEscape(patientID)), nil)
	if err != nil {
		c.Log.Error("patientFhirClient.FindPatientByID error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)

	resp, err := c.Client.Do(req)
	if err != nil {
		c.Log.Error("patientFhirClient.FindPatientByID error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) {
			return nil, customErr
		}
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == constvars.StatusNotFound {
		c.Log.Warn("patientFhirClient.FindPatientByID patient not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
		)
		return nil, exceptions.ErrNoDataFHIRResource(nil, constvars.ResourcePatient)
	}

	if resp.StatusCode != constvars.StatusOK {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			c.Log.Error("patientFhirClient.FindPatientByID error reading response body",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrGetFHIRResource(err, constvars.ResourcePatient)
		}

		fhirErrorIssue := utils.OperationOutcomeError(bodyBytes, resp.Status)
		c.Log.Error("patientFhirClient.FindPatientByID FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(fhirErrorIssue),
		)
		return nil, exceptions.ErrGetFHIRResource(fhirErrorIssue, constvars.ResourcePatient)
	}

	patientFhir := new(fhir_dto.Patient)
	err = json.NewDecoder(resp.Body).Decode(patientFhir)
	if err != nil {
		c.Log.Error("patientFhirClient.FindPatientByID error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePatient)
	}

	if err := utils.CheckResourceType(patientFhir.ResourceType, constvars.ResourcePatient); err != nil {
		c.Log.Error("patientFhirClient.FindPatientByID unexpected resource in response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePatient)
	}

	c.Log.Info("patientFhirClient.FindPatientByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientFhir.ID),
	)
	return patientFhir, nil
}
