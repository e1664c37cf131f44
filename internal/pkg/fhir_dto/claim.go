package fhir_dto

type Claim struct {
	ResourceType string          `json:"resourceType"`
	ID           string          `json:"id,omitempty"`
	Status       string          `json:"status,omitempty"`
	Type         CodeableConcept `json:"type,omitempty"`
	Patient      Reference       `json:"patient,omitempty"`
	Created      string          `json:"created,omitempty"`
	Total        *Money          `json:"total,omitempty"`
}
