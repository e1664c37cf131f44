package fhir_dto

type DiagnosticReport struct {
	ResourceType      string          `json:"resourceType"`
	ID                string          `json:"id,omitempty"`
	Status            string          `json:"status,omitempty"`
	Code              CodeableConcept `json:"code,omitempty"`
	Subject           Reference       `json:"subject,omitempty"`
	EffectiveDateTime string          `json:"effectiveDateTime,omitempty"`
	Result            []Reference     `json:"result,omitempty"`
}
