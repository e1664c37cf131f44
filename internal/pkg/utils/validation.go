package utils

import (
	"errors"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ehrbridge-service/internal/pkg/constvars"
	"ehrbridge-service/internal/pkg/dto/requests"
	"ehrbridge-service/internal/pkg/fhir_dto"

	"github.com/go-playground/validator/v10"
)

// FieldError pairs a field name with a human-readable message so the UI can
// render every problem at once.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

func newValidationResult(errs []FieldError) ValidationResult {
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

var (
	configValidate *validator.Validate
	emailRegex     = regexp.MustCompile(constvars.RegexEmail)
	phoneRegex     = regexp.MustCompile(constvars.RegexPhone)
)

func init() {
	configValidate = validator.New()
	configValidate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
}

// ValidateEHRConfig checks the connection configuration shape. All failures
// are accumulated; the function never returns an error itself.
func ValidateEHRConfig(config *requests.EHRConnectionConfig) ValidationResult {
	var fieldErrors []FieldError
	if config == nil {
		config = &requests.EHRConnectionConfig{}
	}

	err := configValidate.Struct(config)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, fe := range validationErrs {
				fieldErrors = append(fieldErrors, configFieldError(fe))
			}
		}
	}

	return newValidationResult(fieldErrors)
}

func configFieldError(fe validator.FieldError) FieldError {
	switch fe.Field() {
	case "baseUrl":
		if fe.Tag() == "required" {
			return FieldError{Field: "baseUrl", Message: "Base URL is required"}
		}
		return FieldError{Field: "baseUrl", Message: "Please enter a valid URL"}
	case "clientId":
		if fe.Tag() == "required" {
			return FieldError{Field: "clientId", Message: "Client ID is required"}
		}
		return FieldError{Field: "clientId", Message: "Client ID must be at least 3 characters"}
	case "clientSecret":
		return FieldError{Field: "clientSecret", Message: "Either Client Secret or Access Token is required"}
	}
	return FieldError{Field: fe.Field(), Message: "Invalid value"}
}

// ValidatePatient applies local shape checks before a record is dispatched.
func ValidatePatient(patient *fhir_dto.Patient) ValidationResult {
	var fieldErrors []FieldError
	if patient == nil {
		patient = &fhir_dto.Patient{}
	}

	if len(patient.Name) == 0 {
		fieldErrors = append(fieldErrors, FieldError{Field: "name", Message: "Patient name is required"})
	} else {
		primaryName := patient.Name[0]
		if primaryName.Family == "" {
			fieldErrors = append(fieldErrors, FieldError{Field: "familyName", Message: "Family name is required"})
		}
		if len(primaryName.Given) == 0 {
			fieldErrors = append(fieldErrors, FieldError{Field: "givenName", Message: "Given name is required"})
		}
	}

	if patient.BirthDate == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "birthDate", Message: "Birth date is required"})
	} else if birthDate, err := time.Parse("2006-01-02", patient.BirthDate); err != nil {
		fieldErrors = append(fieldErrors, FieldError{Field: "birthDate", Message: "Please enter a valid birth date"})
	} else if birthDate.After(time.Now()) {
		fieldErrors = append(fieldErrors, FieldError{Field: "birthDate", Message: "Birth date cannot be in the future"})
	}

	if patient.Gender != "" && !isValidGender(patient.Gender) {
		fieldErrors = append(fieldErrors, FieldError{Field: "gender", Message: "Please select a valid gender"})
	}

	for i, telecom := range patient.Telecom {
		if telecom.Value == "" {
			continue
		}
		field := "telecom." + strconv.Itoa(i) + ".value"
		if telecom.System == constvars.TelecomSystemEmail && !emailRegex.MatchString(telecom.Value) {
			fieldErrors = append(fieldErrors, FieldError{Field: field, Message: "Please enter a valid email address"})
		}
		if telecom.System == constvars.TelecomSystemPhone && !phoneRegex.MatchString(telecom.Value) {
			fieldErrors = append(fieldErrors, FieldError{Field: field, Message: "Please enter a valid phone number"})
		}
	}

	return newValidationResult(fieldErrors)
}

// ValidateSearchParams checks raw query parameters before dispatch. Count must
// fall within [1, 1000]; offset must be non-negative.
func ValidateSearchParams(params url.Values) ValidationResult {
	var fieldErrors []FieldError

	if date := params.Get(constvars.SearchParamDate); date != "" && !isValidDate(date) {
		fieldErrors = append(fieldErrors, FieldError{Field: "date", Message: "Please enter a valid date"})
	}
	if birthdate := params.Get(constvars.SearchParamBirthdate); birthdate != "" && !isValidDate(birthdate) {
		fieldErrors = append(fieldErrors, FieldError{Field: "birthdate", Message: "Please enter a valid birth date"})
	}

	if raw := params.Get(constvars.SearchParamCount); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil || count < 1 || count > constvars.SearchMaxCount {
			fieldErrors = append(fieldErrors, FieldError{Field: "_count", Message: "Count must be a number between 1 and 1000"})
		}
	}
	if raw := params.Get(constvars.SearchParamOffset); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			fieldErrors = append(fieldErrors, FieldError{Field: "_offset", Message: "Offset must be a non-negative number"})
		}
	}

	return newValidationResult(fieldErrors)
}

func isValidGender(gender string) bool {
	switch gender {
	case constvars.GenderMale, constvars.GenderFemale, constvars.GenderOther, constvars.GenderUnknown:
		return true
	}
	return false
}

func isValidDate(value string) bool {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

func FormatValidationErrors(errs []FieldError) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Message
	}
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Message
	}
	return "Multiple errors: " + strings.Join(messages, ", ")
}
