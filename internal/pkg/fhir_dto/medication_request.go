package fhir_dto

type MedicationRequest struct {
	ResourceType              string              `json:"resourceType"`
	ID                        string              `json:"id,omitempty"`
	Status                    string              `json:"status,omitempty"`
	Intent                    string              `json:"intent,omitempty"`
	MedicationCodeableConcept CodeableConcept     `json:"medicationCodeableConcept,omitempty"`
	Subject                   Reference           `json:"subject,omitempty"`
	AuthoredOn                string              `json:"authoredOn,omitempty"`
	DosageInstruction         []DosageInstruction `json:"dosageInstruction,omitempty"`
}

type DosageInstruction struct {
	Text   string           `json:"text,omitempty"`
	Timing *Timing          `json:"timing,omitempty"`
	Route  *CodeableConcept `json:"route,omitempty"`
}

type Timing struct {
	Repeat *TimingRepeat `json:"repeat,omitempty"`
}

type TimingRepeat struct {
	Frequency  int    `json:"frequency,omitempty"`
	Period     int    `json:"period,omitempty"`
	PeriodUnit string `json:"periodUnit,omitempty"`
}
