package requests

// CreateServiceRequest is the submitted imaging order form overlaid with the
// identifiers carried by the session. The derived fields are filled in by the
// service request usecase before the FHIR resource is built.
type CreateServiceRequest struct {
	PatientID                string `mapstructure:"patient_id" validate:"required"`
	PractitionerID           string `mapstructure:"practitioner_id"`
	PlacerPractitionerRoleID string `mapstructure:"placer_practitionerrole_id" validate:"required"`
	PlacerOrganizationID     string `mapstructure:"placer_organization_id"`
	FillerOrganizationID     string `mapstructure:"filler_organization_id"`
	PlacerOrganizationName   string `mapstructure:"placer_organization_name"`
	PlacerOrganizationHPIO   string `mapstructure:"placer_organization_hpio" validate:"required"`

	RequestCode       string `mapstructure:"request_code"`
	Priority          string `mapstructure:"priority" validate:"omitempty,oneof=routine urgent asap stat"`
	ReasonCodeCode    string `mapstructure:"reasonCode_code"`
	ReasonCodeDisplay string `mapstructure:"reasonCode_display"`

	// Derived
	RequestCodeCode       string `mapstructure:"-"`
	RequestCodeDisplay    string `mapstructure:"-"`
	PlacerGroupIdentifier string `mapstructure:"-"`
	Status                string `mapstructure:"-"`
	CategoryCode          string `mapstructure:"-"`
	CategoryDisplay       string `mapstructure:"-"`
	PerformerTypeCode     string `mapstructure:"-"`
	PerformerTypeDisplay  string `mapstructure:"-"`
	AuthoredOn            string `mapstructure:"-"`
}
