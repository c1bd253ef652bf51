package constvars

const (
	URLParamServiceRequestID = "id"
)

const (
	FormFieldPatientID              = "patient_id"
	FormFieldPractitionerID         = "practitioner_id"
	FormFieldPractitionerRoleID     = "practitioner_role_id"
	FormFieldPlacerOrganizationID   = "placer_organization_id"
	FormFieldFillerOrganizationID   = "filler_organization_id"
	FormFieldRequestCode            = "request_code"
	FormFieldPlacerOrganizationHPIO = "placer_organization_hpio"
)

const (
	FhirSearchParamID      = "_id"
	FhirSearchParamInclude = "_include"
)
