package constvars

const (
	ResourcePatient            = "Patient"
	ResourceAppointment        = "Appointment"
	ResourceObservation        = "Observation"
	ResourceCondition          = "Condition"
	ResourceMedicationRequest  = "MedicationRequest"
	ResourceDiagnosticReport   = "DiagnosticReport"
	ResourceAllergyIntolerance = "AllergyIntolerance"
	ResourceImmunization       = "Immunization"
	ResourceCoverage           = "Coverage"
	ResourceClaim              = "Claim"
	ResourcePractitioner       = "Practitioner"
	ResourceOperationOutcome   = "OperationOutcome"
	ResourceBundle             = "Bundle"
)

const (
	FhirAppointmentStatusProposed  = "proposed"
	FhirAppointmentStatusPending   = "pending"
	FhirAppointmentStatusBooked    = "booked"
	FhirAppointmentStatusArrived   = "arrived"
	FhirAppointmentStatusFulfilled = "fulfilled"
	FhirAppointmentStatusCancelled = "cancelled"
	FhirAppointmentStatusNoShow    = "noshow"
)

const (
	FhirParticipantStatusAccepted    = "accepted"
	FhirParticipantStatusDeclined    = "declined"
	FhirParticipantStatusTentative   = "tentative"
	FhirParticipantStatusNeedsAction = "needs-action"
)

const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderOther   = "other"
	GenderUnknown = "unknown"
)

const (
	TelecomSystemPhone = "phone"
	TelecomSystemEmail = "email"
)

const (
	SearchParamName       = "name"
	SearchParamIdentifier = "identifier"
	SearchParamGender     = "gender"
	SearchParamBirthdate  = "birthdate"
	SearchParamDate       = "date"
	SearchParamPatient    = "patient"
	SearchParamPractition = "practitioner"
	SearchParamStatus     = "status"
	SearchParamCount      = "_count"
	SearchParamOffset     = "_offset"
)

const (
	SearchDefaultCount = 20
	SearchMaxCount     = 1000
)
