package fhir_dto

type Practitioner struct {
	ResourceType string         `json:"resourceType,omitempty"`
	ID           string         `json:"id,omitempty"`
	Meta         *Meta          `json:"meta,omitempty"`
	Identifier   []Identifier   `json:"identifier,omitempty"`
	Active       bool           `json:"active,omitempty"`
	Name         []HumanName    `json:"name,omitempty"`
	Telecom      []ContactPoint `json:"telecom,omitempty"`
	Gender       string         `json:"gender,omitempty"`
	Address      []Address      `json:"address,omitempty"`
}

func (p *Practitioner) DisplayName() string {
	return OfficialName(p.Name)
}
