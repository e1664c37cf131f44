package fhir_dto

type Patient struct {
	ResourceType string         `json:"resourceType"`
	ID           string         `json:"id,omitempty"`
	Active       bool           `json:"active,omitempty"`
	Identifier   []Identifier   `json:"identifier,omitempty"`
	Name         []HumanName    `json:"name,omitempty"`
	Telecom      []ContactPoint `json:"telecom,omitempty"`
	Gender       string         `json:"gender,omitempty"`
	BirthDate    string         `json:"birthDate,omitempty"`
	Address      []Address      `json:"address,omitempty"`
}

// PrimaryName returns the first name entry, the one treated as authoritative
// when a single value is needed.
func (p *Patient) PrimaryName() *HumanName {
	if len(p.Name) == 0 {
		return nil
	}
	return &p.Name[0]
}
