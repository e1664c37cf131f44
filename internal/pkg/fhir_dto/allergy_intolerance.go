package fhir_dto

type AllergyIntolerance struct {
	ResourceType       string            `json:"resourceType"`
	ID                 string            `json:"id,omitempty"`
	ClinicalStatus     CodeableConcept   `json:"clinicalStatus,omitempty"`
	VerificationStatus CodeableConcept   `json:"verificationStatus,omitempty"`
	Code               CodeableConcept   `json:"code,omitempty"`
	Patient            Reference         `json:"patient,omitempty"`
	Criticality        string            `json:"criticality,omitempty"`
	Reaction           []AllergyReaction `json:"reaction,omitempty"`
}

type AllergyReaction struct {
	Manifestation []CodeableConcept `json:"manifestation,omitempty"`
	Severity      string            `json:"severity,omitempty"`
}
