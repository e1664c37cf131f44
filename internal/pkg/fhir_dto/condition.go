package fhir_dto

type Condition struct {
	ResourceType       string          `json:"resourceType"`
	ID                 string          `json:"id,omitempty"`
	ClinicalStatus     CodeableConcept `json:"clinicalStatus,omitempty"`
	VerificationStatus CodeableConcept `json:"verificationStatus,omitempty"`
	Code               CodeableConcept `json:"code,omitempty"`
	Subject            Reference       `json:"subject,omitempty"`
	OnsetDateTime      string          `json:"onsetDateTime,omitempty"`
}
