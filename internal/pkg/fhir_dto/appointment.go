package fhir_dto

type Appointment struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id,omitempty"`
	Status       string        `json:"status,omitempty"`
	Start        string        `json:"start,omitempty"`
	End          string        `json:"end,omitempty"`
	Description  string        `json:"description,omitempty"`
	Participant  []Participant `json:"participant,omitempty"`
}

type Participant struct {
	Actor    Reference `json:"actor,omitempty"`
	Required string    `json:"required,omitempty"`
	Status   string    `json:"status,omitempty"`
}
