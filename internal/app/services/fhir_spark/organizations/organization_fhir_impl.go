package organizations

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

type organizationFhirClient struct {
	BaseUrl string
	Client  contracts.HTTPDoer
	Log     *zap.Logger
}

func NewOrganizationFhirClient(baseUrl string, client contracts.HTTPDoer, logger *zap.Logger) contracts.OrganizationFhirClient {
	return &organizationFhirClient{
		BaseUrl: utils.BuildResourceURL(baseUrl, constvars.ResourceOrganization),
		Client:  client,
		Log:     logger,
	}
}

func (c *organizationFhirClient) FindOrganizationByID(ctx context.Context, organizationID string) (*fhir_dto.Organization, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("organizationFhirClient.FindOrganizationByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, organizationID),
	)

	if err := utils.ValidateResourceID(organizationID); err != nil {
		c.Log.Warn("organizationFhirClient.FindOrganizationByID rejected resource id",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInvalidResourceID(err, constvars.ResourceOrganization)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, fmt.Sprintf("%s/%s", c.BaseUrl, url.PathEscape(organizationID)), nil)
	if err != nil {
		c.Log.Error("organizationFhirClient.FindOrganizationByID error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)

	resp, err := c.Client.Do(req)
	if err != nil {
		c.Log.Error("organizationFhirClient.FindOrganizationByID error sending HTTP request",
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
		c.Log.Warn("organizationFhirClient.FindOrganizationByID organization not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceIDKey, organizationID),
		)
		return nil, exceptions.ErrNoDataFHIRResource(nil, constvars.ResourceOrganization)
	}

	if resp.StatusCode != constvars.StatusOK {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			c.Log.Error("organizationFhirClient.FindOrganizationByID error reading response body",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrGetFHIRResource(err, constvars.ResourceOrganization)
		}

		fhirErrorIssue := utils.OperationOutcomeError(bodyBytes, resp.Status)
		c.Log.Error("organizationFhirClient.FindOrganizationByID FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(fhirErrorIssue),
		)
		return nil, exceptions.ErrGetFHIRResource(fhirErrorIssue, constvars.ResourceOrganization)
	}

	organizationFhir := new(fhir_dto.Organization)
	err = json.NewDecoder(resp.Body).Decode(organizationFhir)
	if err != nil {
		c.Log.Error("organizationFhirClient.FindOrganizationByID error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceOrganization)
	}

	if err := utils.CheckResourceType(organizationFhir.ResourceType, constvars.ResourceOrganization); err != nil {
		c.Log.Error("organizationFhirClient.FindOrganizationByID unexpected resource in response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceOrganization)
	}

	c.Log.Info("organizationFhirClient.FindOrganizationByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, organizationFhir.ID),
	)
	return organizationFhir, nil
}
