package practitioners

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

type practitionerFhirClient struct {
	BaseUrl string
	Client  contracts.HTTPDoer
	Log     *zap.Logger
}

func NewPractitionerFhirClient(baseUrl string, client contracts.HTTPDoer, logger *zap.Logger) contracts.PractitionerFhirClient {
	return &practitionerFhirClient{
		BaseUrl: utils.BuildResourceURL(baseUrl, constvars.ResourcePractitioner),
		Client:  client,
		Log:     logger,
	}
}

func (c *practitionerFhirClient) FindPractitionerByID(ctx context.Context, practitionerID string) (*fhir_dto.Practitioner, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("practitionerFhirClient.FindPractitionerByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, practitionerID),
	)

	if err := utils.ValidateResourceID(practitionerID); err != nil {
		c.Log.Warn("practitionerFhirClient.FindPractitionerByID rejected resource id",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInvalidResourceID(err, constvars.ResourcePractitioner)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, fmt.Sprintf("%s/%s", c.BaseUrl, url.PathEscape(practitionerID)), nil)
	if err != nil {
		c.Log.Error("practitionerFhirClient.FindPractitionerByID error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)

	resp, err := c.Client.Do(req)
	if err != nil {
		c.Log.Error("practitionerFhirClient.FindPractitionerByID error sending HTTP request",
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
		c.Log.Warn("practitionerFhirClient.FindPractitionerByID practitioner not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceIDKey, practitionerID),
		)
		return nil, exceptions.ErrNoDataFHIRResource(nil, constvars.ResourcePractitioner)
	}

	if resp.StatusCode != constvars.StatusOK {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			c.Log.Error("practitionerFhirClient.FindPractitionerByID error reading response body",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrGetFHIRResource(err, constvars.ResourcePractitioner)
		}

		fhirErrorIssue := utils.OperationOutcomeError(bodyBytes, resp.Status)
		c.Log.Error("practitionerFhirClient.FindPractitionerByID FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(fhirErrorIssue),
		)
		return nil, exceptions.ErrGetFHIRResource(fhirErrorIssue, constvars.ResourcePractitioner)
	}

	practitionerFhir := new(fhir_dto.Practitioner)
	err = json.NewDecoder(resp.Body).Decode(practitionerFhir)
	if err != nil {
		c.Log.Error("practitionerFhirClient.FindPractitionerByID error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitioner)
	}

	if err := utils.CheckResourceType(practitionerFhir.ResourceType, constvars.ResourcePractitioner); err != nil {
		c.Log.Error("practitionerFhirClient.FindPractitionerByID unexpected resource in response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitioner)
	}

	c.Log.Info("practitionerFhirClient.FindPractitionerByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, practitionerFhir.ID),
	)
	return practitionerFhir, nil
}
