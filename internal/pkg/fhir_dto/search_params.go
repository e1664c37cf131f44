package fhir_dto

import (
	"net/url"
	"strconv"
)

// PatientSearchParams carries per-request filter criteria. Zero-valued fields
// are omitted from the query string.
type PatientSearchParams struct {
	Name       string
	Identifier string
	Birthdate  string
	Gender     string
	Address    string
	Phone      string
	Email      string
	Count      int
	Offset     int
}

func (p *PatientSearchParams) Values() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}
	setNonEmpty(values, "name", p.Name)
	setNonEmpty(values, "identifier", p.Identifier)
	setNonEmpty(values, "birthdate", p.Birthdate)
	setNonEmpty(values, "gender", p.Gender)
	setNonEmpty(values, "address", p.Address)
	setNonEmpty(values, "phone", p.Phone)
	setNonEmpty(values, "email", p.Email)
	setPositive(values, "_count", p.Count)
	setPositive(values, "_offset", p.Offset)
	return values
}

type AppointmentSearchParams struct {
	Date         string
	Patient      string
	Practitioner string
	Status       string
	Count        int
	Offset       int
}

func (p *AppointmentSearchParams) Values() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}
	setNonEmpty(values, "date", p.Date)
	setNonEmpty(values, "patient", p.Patient)
	setNonEmpty(values, "practitioner", p.Practitioner)
	setNonEmpty(values, "status", p.Status)
	setPositive(values, "_count", p.Count)
	setPositive(values, "_offset", p.Offset)
	return values
}

func setNonEmpty(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}

func setPositive(values url.Values, key string, value int) {
	if value > 0 {
		values.Set(key, strconv.Itoa(value))
	}
}
