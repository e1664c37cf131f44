package ehr

import (
	"ehrbridge-service/internal/pkg/constvars"
	"ehrbridge-service/internal/pkg/fhir_dto"
)

// Seed records for the demo client. Slices are copied per client instance so
// mutations never leak between sessions.
func seedPatients() []fhir_dto.Patient {
	return []fhir_dto.Patient{
		{
			ResourceType: constvars.ResourcePatient,
			ID:           "patient-001",
			Active:       true,
			Name: []fhir_dto.HumanName{
				{Use: "official", Given: []string{"John", "Michael"}, Family: "Doe"},
			},
			BirthDate: "1990-05-15",
			Gender:    constvars.GenderMale,
			Telecom: []fhir_dto.ContactPoint{
				{System: constvars.TelecomSystemPhone, Value: "+1-555-0123", Use: "home"},
				{System: constvars.TelecomSystemEmail, Value: "john.doe@email.com", Use: "home"},
			},
			Address: []fhir_dto.Address{
				{
					Use:        "home",
					Line:       []string{"123 Main Street", "Apt 4B"},
					City:       "New York",
					State:      "NY",
					PostalCode: "10001",
					Country:    "US",
				},
			},
		},
		{
			ResourceType: constvars.ResourcePatient,
			ID:           "patient-002",
			Active:       true,
			Name: []fhir_dto.HumanName{
				{Use: "official", Given: []string{"Jane", "Elizabeth"}, Family: "Smith"},
			},
			BirthDate: "1985-08-22",
			Gender:    constvars.GenderFemale,
			Telecom: []fhir_dto.ContactPoint{
				{System: constvars.TelecomSystemPhone, Value: "+1-555-0456", Use: "mobile"},
				{System: constvars.TelecomSystemEmail, Value: "jane.smith@email.com", Use: "work"},
			},
			Address: []fhir_dto.Address{
				{
					Use:        "home",
					Line:       []string{"456 Oak Avenue"},
					City:       "Los Angeles",
					State:      "CA",
					PostalCode: "90210",
					Country:    "US",
				},
			},
		},
		{
			ResourceType: constvars.ResourcePatient,
			ID:           "patient-003",
			Active:       true,
			Name: []fhir_dto.HumanName{
				{Use: "official", Given: []string{"Robert", "James"}, Family: "Johnson"},
			},
			BirthDate: "1978-12-03",
			Gender:    constvars.GenderMale,
			Telecom: []fhir_dto.ContactPoint{
				{System: constvars.TelecomSystemPhone, Value: "+1-555-0789", Use: "work"},
			},
			Address: []fhir_dto.Address{
				{
					Use:        "home",
					Line:       []string{"789 Pine Street"},
					City:       "Chicago",
					State:      "IL",
					PostalCode: "60601",
					Country:    "US",
				},
			},
		},
	}
}

func seedAppointments() []fhir_dto.Appointment {
	return []fhir_dto.Appointment{
		{
			ResourceType: constvars.ResourceAppointment,
			ID:           "appointment-001",
			Status:       constvars.FhirAppointmentStatusBooked,
			Start:        "2024-01-15T10:00:00Z",
			End:          "2024-01-15T11:00:00Z",
			Description:  "Annual Physical Exam",
			Participant: []fhir_dto.Participant{
				{
					Actor:    fhir_dto.Reference{Reference: "Patient/patient-001", Display: "John Doe"},
					Required: "required",
					Status:   constvars.FhirParticipantStatusAccepted,
				},
				{
					Actor:    fhir_dto.Reference{Reference: "Practitioner/practitioner-001", Display: "Dr. Sarah Wilson"},
					Required: "required",
					Status:   constvars.FhirParticipantStatusAccepted,
				},
			},
		},
		{
			ResourceType: constvars.ResourceAppointment,
			ID:           "appointment-002",
			Status:       constvars.FhirAppointmentStatusArrived,
			Start:        "2024-01-16T14:30:00Z",
			End:          "2024-01-16T15:30:00Z",
			Description:  "Follow-up Consultation",
			Participant: []fhir_dto.Participant{
				{
					Actor:    fhir_dto.Reference{Reference: "Patient/patient-002", Display: "Jane Smith"},
					Required: "required",
					Status:   constvars.FhirParticipantStatusAccepted,
				},
			},
		},
	}
}

func seedObservations() []fhir_dto.Observation {
	return []fhir_dto.Observation{
		{
			ResourceType: constvars.ResourceObservation,
			ID:           "observation-001",
			Status:       "final",
			Category: []fhir_dto.CodeableConcept{
				{
					Coding: []fhir_dto.Coding{
						{System: "http://terminology.hl7.org/CodeSystem/observation-category", Code: "vital-signs", Display: "Vital Signs"},
					},
				},
			},
			Code: fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{
					{System: "http://loinc.org", Code: "85354-9", Display: "Blood pressure panel"},
				},
				Text: "Blood Pressure",
			},
			Subject:           fhir_dto.Reference{Reference: "Patient/patient-001"},
			EffectiveDateTime: "2024-01-15T10:30:00Z",
			ValueQuantity: &fhir_dto.Quantity{
				Value:  120,
				Unit:   "mmHg",
				System: "http://unitsofmeasure.org",
				Code:   "mm[Hg]",
			},
			Component: []fhir_dto.ObservationComponent{
				{
					Code: fhir_dto.CodeableConcept{
						Coding: []fhir_dto.Coding{
							{System: "http://loinc.org", Code: "8480-6", Display: "Systolic blood pressure"},
						},
					},
					ValueQuantity: &fhir_dto.Quantity{Value: 120, Unit: "mmHg", System: "http://unitsofmeasure.org", Code: "mm[Hg]"},
				},
				{
					Code: fhir_dto.CodeableConcept{
						Coding: []fhir_dto.Coding{
							{System: "http://loinc.org", Code: "8462-4", Display: "Diastolic blood pressure"},
						},
					},
					ValueQuantity: &fhir_dto.Quantity{Value: 80, Unit: "mmHg", System: "http://unitsofmeasure.org", Code: "mm[Hg]"},
				},
			},
		},
		{
			ResourceType: constvars.ResourceObservation,
			ID:           "observation-002",
			Status:       "final",
			Category: []fhir_dto.CodeableConcept{
				{
					Coding: []fhir_dto.Coding{
						{System: "http://terminology.hl7.org/CodeSystem/observation-category", Code: "vital-signs", Display: "Vital Signs"},
					},
				},
			},
			Code: fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{
					{System: "http://loinc.org", Code: "8867-4", Display: "Heart rate"},
				},
				Text: "Heart Rate",
			},
			Subject:           fhir_dto.Reference{Reference: "Patient/patient-001"},
			EffectiveDateTime: "2024-01-15T10:30:00Z",
			ValueQuantity: &fhir_dto.Quantity{
				Value:  72,
				Unit:   "bpm",
				System: "http://unitsofmeasure.org",
				Code:   "/min",
			},
		},
	}
}

func seedConditions() []fhir_dto.Condition {
	return []fhir_dto.Condition{
		{
			ResourceType: constvars.ResourceCondition,
			ID:           "condition-001",
			ClinicalStatus: fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{
					{System: "http://terminology.hl7.org/CodeSystem/condition-clinical", Code: "active"},
				},
			},
			VerificationStatus: fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{
					{System: "http://terminology.hl7.org/CodeSystem/condition-ver-status", Code: "confirmed"},
				},
			},
			Code: fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{
					{System: "http://snomed.info/sct", Code: "38341003", Display: "Hypertensive disorder"},
				},
				Text: "Hypertension",
			},
			Subject:       fhir_dto.Reference{Reference: "Patient/patient-001"},
			OnsetDateTime: "2023-06-01",
		},
	}
}

func seedMedicationRequests() []fhir_dto.MedicationRequest {
	return []fhir_dto.MedicationRequest{
		{
			ResourceType: constvars.ResourceMedicationRequest,
			ID:           "medication-001",
			Status:       "active",
			Intent:       "order",
			MedicationCodeableConcept: fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{
					{System: "http://www.nlm.nih.gov/research/umls/rxnorm", Code: "197361", Display: "Lisinopril 10 MG Oral Tablet"},
				},
				Text: "Lisinopril 10mg",
			},
			Subject:    fhir_dto.Reference{Reference: "Patient/patient-001"},
			AuthoredOn: "2024-01-15",
			DosageInstruction: []fhir_dto.DosageInstruction{
				{
					Text: "Take one tablet daily with water",
					Timing: &fhir_dto.Timing{
						Repeat: &fhir_dto.TimingRepeat{Frequency: 1, Period: 1, PeriodUnit: "d"},
					},
					Route: &fhir_dto.CodeableConcept{
						Coding: []fhir_dto.Coding{
							{System: "http://snomed.info/sct", Code: "26643006", Display: "Oral route"},
						},
					},
				},
			},
		},
	}
}

func seedAllergies() []fhir_dto.AllergyIntolerance {
	return []fhir_dto.AllergyIntolerance{
		{
			ResourceType: constvars.ResourceAllergyIntolerance,
			ID:           "allergy-001",
			ClinicalStatus: fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{
					{System: "http://terminology.hl7.org/CodeSystem/allergyintolerance-clinical", Code: "active"},
				},
			},
			VerificationStatus: fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{
					{System: "http://terminology.hl7.org/CodeSystem/allergyintolerance-verification", Code: "confirmed"},
				},
			},
			Code: fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{
					{System: "http://snomed.info/sct", Code: "387406002", Display: "Sulfonamide (substance)"},
				},
				Text: "Sulfa drugs",
			},
			Patient:     fhir_dto.Reference{Reference: "Patient/patient-001"},
			Criticality: "high",
			Reaction: []fhir_dto.AllergyReaction{
				{
					Manifestation: []fhir_dto.CodeableConcept{
						{
							Coding: []fhir_dto.Coding{
								{System: "http://snomed.info/sct", Code: "271807003", Display: "Skin rash"},
							},
							Text: "Skin rash",
						},
					},
					Severity: "moderate",
				},
			},
		},
	}
}

func seedImmunizations() []fhir_dto.Immunization {
	return []fhir_dto.Immunization{
		{
			ResourceType: constvars.ResourceImmunization,
			ID:           "immunization-001",
			Status:       "completed",
			VaccineCode: fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{
					{System: "http://hl7.org/fhir/sid/cvx", Code: "140", Display: "Influenza, seasonal, injectable"},
				},
				Text: "Seasonal Flu Vaccine",
			},
			Patient:            fhir_dto.Reference{Reference: "Patient/patient-001"},
			OccurrenceDateTime: "2023-10-15",
			LotNumber:          "LOT123456",
			Route: &fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{
					{System: "http://terminology.hl7.org/CodeSystem/v3-RouteOfAdministration", Code: "IM", Display: "Intramuscular"},
				},
			},
			Site: &fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{
					{System: "http://terminology.hl7.org/CodeSystem/v3-ActSite", Code: "LA", Display: "Left arm"},
				},
			},
		},
	}
}

func seedDiagnosticReports(patientID string) []fhir_dto.DiagnosticReport {
	return []fhir_dto.DiagnosticReport{
		{
			ResourceType: constvars.ResourceDiagnosticReport,
			ID:           "report-001",
			Status:       "final",
			Code: fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{
					{System: "http://loinc.org", Code: "11502-2", Display: "Laboratory report"},
				},
				Text: "Complete Blood Count",
			},
			Subject:           fhir_dto.Reference{Reference: "Patient/" + patientID},
			EffectiveDateTime: "2024-01-10",
			Result: []fhir_dto.Reference{
				{Reference: "Observation/obs-hemoglobin", Display: "Hemoglobin 14.2 g/dL"},
				{Reference: "Observation/obs-wbc", Display: "White Blood Cells 7.5 K/uL"},
			},
		},
	}
}

func seedCoverages(patientID string) []fhir_dto.Coverage {
	return []fhir_dto.Coverage{
		{
			ResourceType: constvars.ResourceCoverage,
			ID:           "coverage-001",
			Status:       "active",
			Beneficiary:  fhir_dto.Reference{Reference: "Patient/" + patientID},
			Payor: []fhir_dto.Reference{
				{Display: "Blue Cross Blue Shield"},
			},
			Class: []fhir_dto.CoverageClass{
				{
					Type: fhir_dto.CodeableConcept{
						Coding: []fhir_dto.Coding{
							{System: "http://terminology.hl7.org/CodeSystem/coverage-class", Code: "group", Display: "Group"},
						},
					},
					Value: "BCBS-GROUP-001",
				},
			},
		},
	}
}

func seedClaims(patientID string) []fhir_dto.Claim {
	return []fhir_dto.Claim{
		{
			ResourceType: constvars.ResourceClaim,
			ID:           "claim-001",
			Status:       "active",
			Type: fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{
					{System: "http://terminology.hl7.org/CodeSystem/claim-type", Code: "institutional", Display: "Institutional"},
				},
			},
			Patient: fhir_dto.Reference{Reference: "Patient/" + patientID},
			Created: "2024-01-15",
			Total:   &fhir_dto.Money{Value: 250.00, Currency: "USD"},
		},
	}
}

func seedPractitioners() []fhir_dto.Practitioner {
	return []fhir_dto.Practitioner{
		{
			ResourceType: constvars.ResourcePractitioner,
			ID:           "practitioner-001",
			Active:       true,
			Name: []fhir_dto.HumanName{
				{Use: "official", Given: []string{"Sarah"}, Family: "Wilson", Prefix: []string{"Dr."}},
			},
			Telecom: []fhir_dto.ContactPoint{
				{System: constvars.TelecomSystemPhone, Value: "+1-555-0100", Use: "work"},
			},
			Qualification: []fhir_dto.Qualification{
				{
					Code: fhir_dto.CodeableConcept{
						Coding: []fhir_dto.Coding{
							{System: "http://terminology.hl7.org/CodeSystem/v2-0360", Code: "MD", Display: "Doctor of Medicine"},
						},
					},
				},
			},
		},
		{
			ResourceType: constvars.ResourcePractitioner,
			ID:           "practitioner-002",
			Active:       true,
			Name: []fhir_dto.HumanName{
				{Use: "official", Given: []string{"Michael"}, Family: "Brown", Prefix: []string{"Dr."}},
			},
			Telecom: []fhir_dto.ContactPoint{
				{System: constvars.TelecomSystemPhone, Value: "+1-555-0200", Use: "work"},
			},
			Qualification: []fhir_dto.Qualification{
				{
					Code: fhir_dto.CodeableConcept{
						Coding: []fhir_dto.Coding{
							{System: "http://terminology.hl7.org/CodeSystem/v2-0360", Code: "MD", Display: "Doctor of Medicine"},
						},
					},
				},
			},
		},
	}
}
