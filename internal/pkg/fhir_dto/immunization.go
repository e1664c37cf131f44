package fhir_dto

type Immunization struct {
	ResourceType       string           `json:"resourceType"`
	ID                 string           `json:"id,omitempty"`
	Status             string           `json:"status,omitempty"`
	VaccineCode        CodeableConcept  `json:"vaccineCode,omitempty"`
	Patient            Reference        `json:"patient,omitempty"`
	OccurrenceDateTime string           `json:"occurrenceDateTime,omitempty"`
	LotNumber          string           `json:"lotNumber,omitempty"`
	Route              *CodeableConcept `json:"route,omitempty"`
	Site               *CodeableConcept `json:"site,omitempty"`
}
