package fhir_dto

import "github.com/Ardenexal/imaging-request/internal/pkg/constvars"

type Organization struct {
	ResourceType string            `json:"resourceType,omitempty"`
	ID           string            `json:"id,omitempty"`
	Meta         *Meta             `json:"meta,omitempty"`
	Active       bool              `json:"active,omitempty"`
	Identifier   []Identifier      `json:"identifier,omitempty"`
	Type         []CodeableConcept `json:"type,omitempty"`
	Name         string            `json:"name,omitempty"`
	Alias        []string          `json:"alias,omitempty"`
	Telecom      []ContactPoint    `json:"telecom,omitempty"`
	Address      []Address         `json:"address,omitempty"`
	PartOf       *Reference        `json:"partOf,omitempty"`
}

// HPIO returns the organisation's Healthcare Provider Identifier, if it carries one.
func (o *Organization) HPIO() string {
	return IdentifierValue(o.Identifier, constvars.FhirSystemAUHPIO)
}
