package fhir_dto

import "github.com/goccy/go-json"

// Bundle is the searchset envelope returned by FHIR search endpoints. Entries
// keep their raw resource payload so the caller decodes into the concrete type.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	Type         string        `json:"type,omitempty"`
	Total        int           `json:"total"`
	Entry        []BundleEntry `json:"entry,omitempty"`
}

type BundleEntry struct {
	FullURL  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
}

type OperationOutcome struct {
	ResourceType string                  `json:"resourceType"`
	Issue        []OperationOutcomeIssue `json:"issue,omitempty"`
}

type OperationOutcomeIssue struct {
	Severity    string          `json:"severity,omitempty"`
	Code        string          `json:"code,omitempty"`
	Details     CodeableConcept `json:"details,omitempty"`
	Diagnostics string          `json:"diagnostics,omitempty"`
}
