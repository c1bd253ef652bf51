package fhir_dto

// ServiceRequest is the AU diagnostic request profile of a FHIR R4 ServiceRequest,
// limited to the elements an imaging order carries.
type ServiceRequest struct {
	ResourceType  string            `json:"resourceType"`
	ID            string            `json:"id,omitempty"`
	Meta          *Meta             `json:"meta,omitempty"`
	Requisition   *Identifier       `json:"requisition,omitempty"`
	Status        string            `json:"status,omitempty"`
	Intent        string            `json:"intent"`
	Category      []CodeableConcept `json:"category,omitempty"`
	Priority      string            `json:"priority,omitempty"`
	Code          *CodeableConcept  `json:"code,omitempty"`
	Subject       *Reference        `json:"subject,omitempty"`
	AuthoredOn    string            `json:"authoredOn,omitempty"`
	Requester     *Reference        `json:"requester,omitempty"`
	PerformerType *CodeableConcept  `json:"performerType,omitempty"`
	ReasonCode    []CodeableConcept `json:"reasonCode,omitempty"`
}

type CreateServiceRequestOutput struct {
	ResourceType string `json:"resourceType"`
	ID           string `json:"id"`
	Meta         *Meta  `json:"meta,omitempty"`
}

// ServiceRequestDetail is a ServiceRequest together with the resources its subject
// and requester point at, when those were included in the read.
type ServiceRequestDetail struct {
	ServiceRequest   *ServiceRequest   `json:"serviceRequest"`
	Patient          *Patient          `json:"patient,omitempty"`
	PractitionerRole *PractitionerRole `json:"practitionerRole,omitempty"`
}
