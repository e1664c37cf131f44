package fhir_dto

type Observation struct {
	ResourceType      string                 `json:"resourceType"`
	ID                string                 `json:"id,omitempty"`
	Status            string                 `json:"status,omitempty"`
	Category          []CodeableConcept      `json:"category,omitempty"`
	Code              CodeableConcept        `json:"code,omitempty"`
	Subject           Reference              `json:"subject,omitempty"`
	EffectiveDateTime string                 `json:"effectiveDateTime,omitempty"`
	ValueQuantity     *Quantity              `json:"valueQuantity,omitempty"`
	Component         []ObservationComponent `json:"component,omitempty"`
}

type ObservationComponent struct {
	Code          CodeableConcept `json:"code,omitempty"`
	ValueQuantity *Quantity       `json:"valueQuantity,omitempty"`
}
