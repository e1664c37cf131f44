package utils

import (
	"net/url"
	"testing"
	"time"

	"ehrbridge-service/internal/pkg/dto/requests"
	"ehrbridge-service/internal/pkg/fhir_dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldMessages(result ValidationResult) map[string]string {
	messages := make(map[string]string, len(result.Errors))
	for _, fe := range result.Errors {
		messages[fe.Field] = fe.Message
	}
	return messages
}

func TestValidateEHRConfig(t *testing.T) {
	t.Run("missing base URL", func(t *testing.T) {
		result := ValidateEHRConfig(&requests.EHRConnectionConfig{
			ClientID:     "my-client",
			ClientSecret: "secret",
		})
		assert.False(t, result.Valid)
		assert.Equal(t, "Base URL is required", fieldMessages(result)["baseUrl"])
	})

	t.Run("unparseable base URL gets a distinct message", func(t *testing.T) {
		result := ValidateEHRConfig(&requests.EHRConnectionConfig{
			BaseURL:      "not a url",
			ClientID:     "my-client",
			ClientSecret: "secret",
		})
		assert.False(t, result.Valid)
		assert.Equal(t, "Please enter a valid URL", fieldMessages(result)["baseUrl"])
	})

	t.Run("short client id", func(t *testing.T) {
		result := ValidateEHRConfig(&requests.EHRConnectionConfig{
			BaseURL:      "https://fhir.example.com/r4",
			ClientID:     "ab",
			ClientSecret: "secret",
		})
		assert.False(t, result.Valid)
		assert.Equal(t, "Client ID must be at least 3 characters", fieldMessages(result)["clientId"])
	})

	t.Run("secret or access token required", func(t *testing.T) {
		result := ValidateEHRConfig(&requests.EHRConnectionConfig{
			BaseURL:  "https://fhir.example.com/r4",
			ClientID: "my-client",
		})
		assert.False(t, result.Valid)
		assert.Equal(t, "Either Client Secret or Access Token is required", fieldMessages(result)["clientSecret"])
	})

	t.Run("access token satisfies the credential rule", func(t *testing.T) {
		result := ValidateEHRConfig(&requests.EHRConnectionConfig{
			BaseURL:     "https://fhir.example.com/r4",
			ClientID:    "my-client",
			AccessToken: "token",
		})
		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
	})

	t.Run("valid config with secret", func(t *testing.T) {
		result := ValidateEHRConfig(&requests.EHRConnectionConfig{
			BaseURL:      "https://fhir.example.com/r4",
			ClientID:     "my-client",
			ClientSecret: "secret",
		})
		assert.True(t, result.Valid)
	})
}

func TestValidatePatient(t *testing.T) {
	t.Run("accumulates multiple errors in one call", func(t *testing.T) {
		result := ValidatePatient(&fhir_dto.Patient{ResourceType: "Patient"})
		require.False(t, result.Valid)
		messages := fieldMessages(result)
		assert.Equal(t, "Patient name is required", messages["name"])
		assert.Equal(t, "Birth date is required", messages["birthDate"])
		assert.Len(t, result.Errors, 2)
	})

	t.Run("family and given checked on the primary name", func(t *testing.T) {
		result := ValidatePatient(&fhir_dto.Patient{
			ResourceType: "Patient",
			Name:         []fhir_dto.HumanName{{Use: "official"}},
			BirthDate:    "1990-05-15",
		})
		messages := fieldMessages(result)
		assert.Equal(t, "Family name is required", messages["familyName"])
		assert.Equal(t, "Given name is required", messages["givenName"])
	})

	t.Run("birth date in the future rejected", func(t *testing.T) {
		future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
		result := ValidatePatient(&fhir_dto.Patient{
			ResourceType: "Patient",
			Name:         []fhir_dto.HumanName{{Family: "Doe", Given: []string{"John"}}},
			BirthDate:    future,
		})
		assert.Equal(t, "Birth date cannot be in the future", fieldMessages(result)["birthDate"])
	})

	t.Run("malformed birth date rejected", func(t *testing.T) {
		result := ValidatePatient(&fhir_dto.Patient{
			ResourceType: "Patient",
			Name:         []fhir_dto.HumanName{{Family: "Doe", Given: []string{"John"}}},
			BirthDate:    "15/05/1990",
		})
		assert.Equal(t, "Please enter a valid birth date", fieldMessages(result)["birthDate"])
	})

	t.Run("invalid gender rejected", func(t *testing.T) {
		result := ValidatePatient(&fhir_dto.Patient{
			ResourceType: "Patient",
			Name:         []fhir_dto.HumanName{{Family: "Doe", Given: []string{"John"}}},
			BirthDate:    "1990-05-15",
			Gender:       "nonbinary",
		})
		assert.Equal(t, "Please select a valid gender", fieldMessages(result)["gender"])
	})

	t.Run("malformed telecom values rejected", func(t *testing.T) {
		result := ValidatePatient(&fhir_dto.Patient{
			ResourceType: "Patient",
			Name:         []fhir_dto.HumanName{{Family: "Doe", Given: []string{"John"}}},
			BirthDate:    "1990-05-15",
			Telecom: []fhir_dto.ContactPoint{
				{System: "email", Value: "not-an-email"},
				{System: "phone", Value: "123"},
			},
		})
		messages := fieldMessages(result)
		assert.Equal(t, "Please enter a valid email address", messages["telecom.0.value"])
		assert.Equal(t, "Please enter a valid phone number", messages["telecom.1.value"])
	})

	t.Run("well-formed patient passes", func(t *testing.T) {
		result := ValidatePatient(&fhir_dto.Patient{
			ResourceType: "Patient",
			Name:         []fhir_dto.HumanName{{Family: "Doe", Given: []string{"John"}}},
			BirthDate:    "1990-05-15",
			Gender:       "male",
			Telecom: []fhir_dto.ContactPoint{
				{System: "phone", Value: "+1-555-0123"},
				{System: "email", Value: "john.doe@email.com"},
			},
		})
		assert.True(t, result.Valid)
	})
}

func TestValidateSearchParams(t *testing.T) {
	t.Run("count bounds", func(t *testing.T) {
		for _, raw := range []string{"0", "1001", "abc"} {
			params := url.Values{"_count": []string{raw}}
			result := ValidateSearchParams(params)
			assert.False(t, result.Valid, "count %q", raw)
			assert.Equal(t, "Count must be a number between 1 and 1000", fieldMessages(result)["_count"])
		}
		assert.True(t, ValidateSearchParams(url.Values{"_count": []string{"1000"}}).Valid)
	})

	t.Run("offset must be non-negative", func(t *testing.T) {
		result := ValidateSearchParams(url.Values{"_offset": []string{"-1"}})
		assert.Equal(t, "Offset must be a non-negative number", fieldMessages(result)["_offset"])
		assert.True(t, ValidateSearchParams(url.Values{"_offset": []string{"0"}}).Valid)
	})

	t.Run("dates must parse", func(t *testing.T) {
		result := ValidateSearchParams(url.Values{
			"date":      []string{"not-a-date"},
			"birthdate": []string{"1990-13-45"},
		})
		messages := fieldMessages(result)
		assert.Equal(t, "Please enter a valid date", messages["date"])
		assert.Equal(t, "Please enter a valid birth date", messages["birthdate"])
	})

	t.Run("empty params pass", func(t *testing.T) {
		assert.True(t, ValidateSearchParams(url.Values{}).Valid)
	})
}
