package models

import "time"

// Session holds the identifiers chosen when the app was initialised. It is loaded
// once per request and passed explicitly to the handlers that need it.
type Session struct {
	SessionID            string    `json:"session_id"`
	PatientID            string    `json:"patient_id"`
	PractitionerID       string    `json:"practitioner_id"`
	PractitionerRoleID   string    `json:"practitioner_role_id"`
	PlacerOrganizationID string    `json:"placer_organization_id"`
	FillerOrganizationID string    `json:"filler_organization_id"`
	CreatedAt            time.Time `json:"created_at"`
}

func (s *Session) HasPatient() bool {
	return s != nil && s.PatientID != ""
}
