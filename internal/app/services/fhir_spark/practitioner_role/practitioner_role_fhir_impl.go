package practitioner_role

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

type practitionerRoleFhirClient struct {
	BaseUrl string
	Client  contracts.HTTPDoer
	Log     *zap.Logger
}

func NewPractitionerRoleFhirClient(baseUrl string, client contracts.HTTPDoer, logger *zap.Logger) contracts.PractitionerRoleFhirClient {
	return &practitionerRoleFhirClient{
		BaseUrl: utils.BuildResourceURL(baseUrl, constvars.ResourcePractitionerRole),
		Client:  client,
		Log:     logger,
	}
}

func (c *practitionerRoleFhirClient) FindPractitionerRoleByID(ctx context.Context, practitionerRoleID string) (*fhir_dto.PractitionerRole, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("practitionerRoleFhirClient.FindPractitionerRoleByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, practitionerRoleID),
	)

	if err := utils.ValidateResourceID(practitionerRoleID); err != nil {
		c.Log.Warn("practitionerRoleFhirClient.FindPractitionerRoleByID rejected resource id",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInvalidResourceID(err, constvars.ResourcePractitionerRole)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, fmt.Sprintf("%s/%s", c.BaseUrl, url.PathEscape(practitionerRoleID)), nil)
	if err != nil {
		c.Log.Error("practitionerRoleFhirClient.FindPractitionerRoleByID error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)

	resp, err := c.Client.Do(req)
	if err != nil {
		c.Log.Error("practitionerRoleFhirClient.FindPractitionerRoleByID error sending HTTP request",
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
		c.Log.Warn("practitionerRoleFhirClient.FindPractitionerRoleByID practitioner role not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceIDKey, practitionerRoleID),
		)
		return nil, exceptions.ErrNoDataFHIRResource(nil, constvars.ResourcePractitionerRole)
	}

	if resp.StatusCode != constvars.StatusOK {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			c.Log.Error("practitionerRoleFhirClient.FindPractitionerRoleByID error reading response body",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrGetFHIRResource(err, constvars.ResourcePractitionerRole)
		}

		fhirErrorIssue := utils.OperationOutcomeError(bodyBytes, resp.Status)
		c.Log.Error("practitionerRoleFhirClient.FindPractitionerRoleByID FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(fhirErrorIssue),
		)
		return nil, exceptions.ErrGetFHIRResource(fhirErrorIssue, constvars.ResourcePractitionerRole)
	}

	practitionerRoleFhir := new(fhir_dto.PractitionerRole)
	err = json.NewDecoder(resp.Body).Decode(practitionerRoleFhir)
	if err != nil {
		c.Log.Error("practitionerRoleFhirClient.FindPractitionerRoleByID error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitionerRole)
	}

	if err := utils.CheckResourceType(practitionerRoleFhir.ResourceType, constvars.ResourcePractitionerRole); err != nil {
		c.Log.Error("practitionerRoleFhirClient.FindPractitionerRoleByID unexpected resource in response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitionerRole)
	}

	c.Log.Info("practitionerRoleFhirClient.FindPractitionerRoleByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, practitionerRoleFhir.ID),
	)
	return practitionerRoleFhir, nil
}
