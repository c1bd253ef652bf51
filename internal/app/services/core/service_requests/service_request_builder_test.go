package service_requests

import (
	"testing"

	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/Ardenexal/imaging-request/internal/pkg/dto/requests"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func preparedInput() *requests.CreateServiceRequest {
	return &requests.CreateServiceRequest{
		PatientID:                "pat-1",
		PlacerPractitionerRoleID: "role-1",
		PlacerOrganizationName:   "Placer Radiology",
		PlacerOrganizationHPIO:   "H1",
		RequestCodeCode:          "12345",
		RequestCodeDisplay:       "Chest X-ray",
		Priority:                 constvars.ServiceRequestPriorityRoutine,
		PlacerGroupIdentifier:    "ORD-00042",
		Status:                   constvars.ServiceRequestStatusActive,
		CategoryCode:             constvars.ServiceRequestCategoryImagingCode,
		CategoryDisplay:          constvars.ServiceRequestCategoryImagingDisplay,
		PerformerTypeCode:        constvars.ServiceRequestPerformerRadiologistCode,
		PerformerTypeDisplay:     constvars.ServiceRequestPerformerRadiologistDisplay,
		AuthoredOn:               "2024-05-01T10:00:00.000Z",
	}
}

func TestBuildServiceRequest_FixedElements(t *testing.T) {
	sr := BuildServiceRequest(preparedInput())

	assert.Equal(t, constvars.ResourceServiceRequest, sr.ResourceType)
	assert.Equal(t, []string{constvars.ServiceRequestProfileAUDiagnosticRequest}, sr.Meta.Profile)
	assert.Equal(t, "order", sr.Intent)
	assert.Equal(t, "active", sr.Status)
	assert.Equal(t, "routine", sr.Priority)
	assert.Equal(t, "2024-05-01T10:00:00.000Z", sr.AuthoredOn)

	require.Len(t, sr.Category, 1)
	assert.Equal(t, "363679005", sr.Category[0].Coding[0].Code)
	assert.Equal(t, "Imaging", sr.Category[0].Coding[0].Display)
	assert.Equal(t, constvars.FhirSystemSnomed, sr.Category[0].Coding[0].System)

	require.NotNil(t, sr.PerformerType)
	assert.Equal(t, "78729002", sr.PerformerType.Coding[0].Code)
	assert.Equal(t, constvars.FhirSystemSnomed, sr.PerformerType.Coding[0].System)

	require.NotNil(t, sr.Code)
	assert.Equal(t, "12345", sr.Code.Coding[0].Code)
	assert.Equal(t, "Chest X-ray", sr.Code.Coding[0].Display)
}

func TestBuildServiceRequest_Requisition(t *testing.T) {
	sr := BuildServiceRequest(preparedInput())

	require.NotNil(t, sr.Requisition)
	assert.Equal(t, "http://ns.electronichealth.net.au/id/hpio-scoped/order/1.0/H1", sr.Requisition.System)
	assert.Equal(t, "ORD-00042", sr.Requisition.Value)
	assert.Equal(t, "Placer Radiology", sr.Requisition.Assigner.Display)

	require.NotNil(t, sr.Requisition.Type)
	require.Len(t, sr.Requisition.Type.Coding, 1)
	assert.Equal(t, "PGN", sr.Requisition.Type.Coding[0].Code)
	assert.Equal(t, "Placer Group Identifier", sr.Requisition.Type.Coding[0].Display)
	assert.Equal(t, "http://terminology.hl7.org/CodeSystem/v2-0203", sr.Requisition.Type.Coding[0].System)
}

func TestBuildServiceRequest_References(t *testing.T) {
	sr := BuildServiceRequest(preparedInput())

	assert.Equal(t, "Patient/pat-1", sr.Subject.Reference)
	assert.Equal(t, "PractitionerRole/role-1", sr.Requester.Reference)
}

func TestBuildServiceRequest_ReasonCodePresence(t *testing.T) {
	t.Run("absent without reason code", func(t *testing.T) {
		input := preparedInput()
		input.ReasonCodeDisplay = "ignored"
		sr := BuildServiceRequest(input)
		assert.Nil(t, sr.ReasonCode)

		body, err := json.Marshal(sr)
		require.NoError(t, err)
		assert.NotContains(t, string(body), "reasonCode")
	})

	t.Run("present with reason code", func(t *testing.T) {
		input := preparedInput()
		input.ReasonCodeCode = "49727002"
		input.ReasonCodeDisplay = "Cough"
		sr := BuildServiceRequest(input)

		require.Len(t, sr.ReasonCode, 1)
		assert.Equal(t, "49727002", sr.ReasonCode[0].Coding[0].Code)
		assert.Equal(t, "Cough", sr.ReasonCode[0].Coding[0].Display)
		assert.Equal(t, constvars.FhirSystemSnomed, sr.ReasonCode[0].Coding[0].System)
	})
}

func TestBuildServiceRequest_Deterministic(t *testing.T) {
	first, err := json.Marshal(BuildServiceRequest(preparedInput()))
	require.NoError(t, err)
	second, err := json.Marshal(BuildServiceRequest(preparedInput()))
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
}
