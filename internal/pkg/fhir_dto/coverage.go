package fhir_dto

type Coverage struct {
	ResourceType string          `json:"resourceType"`
	ID           string          `json:"id,omitempty"`
	Status       string          `json:"status,omitempty"`
	Beneficiary  Reference       `json:"beneficiary,omitempty"`
	Payor        []Reference     `json:"payor,omitempty"`
	Class        []CoverageClass `json:"class,omitempty"`
}

type CoverageClass struct {
	Type  CodeableConcept `json:"type,omitempty"`
	Value string          `json:"value,omitempty"`
}
