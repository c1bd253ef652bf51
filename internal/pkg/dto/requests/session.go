package requests

type InitializeSession struct {
	PatientID            string `mapstructure:"patient_id" validate:"required"`
	PractitionerID       string `mapstructure:"practitioner_id" validate:"required"`
	PractitionerRoleID   string `mapstructure:"practitioner_role_id" validate:"required"`
	PlacerOrganizationID string `mapstructure:"placer_organization_id" validate:"required"`
	FillerOrganizationID string `mapstructure:"filler_organization_id" validate:"required"`
}
