package core

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// CountryAddRequest carries the data needed to add a country.
type CountryAddRequest struct {
	CountryName string `validate:"required,max=40"`
}

// ToCountry converts the request into a Country without an ID.
func (r CountryAddRequest) ToCountry() Country {
	return Country{Name: r.CountryName}
}

// CountryResponse is the read projection of a Country.
type CountryResponse struct {
	CountryID   uuid.UUID
	CountryName string
}

// ToCountryResponse projects a Country.
func (c Country) ToCountryResponse() CountryResponse {
	return CountryResponse{CountryID: c.ID, CountryName: c.Name}
}

// PersonAddRequest carries the data needed to add a person.
// Gender and country are optional on this path.
type PersonAddRequest struct {
	PersonName         string `validate:"required,max=40"`
	Email              string `validate:"required,email,max=50"`
	DateOfBirth        *time.Time
	Gender             Gender `validate:"omitempty,oneof=Male Female Other"`
	CountryID          *uuid.UUID
	Address            string `validate:"max=200"`
	ReceiveNewsLetters bool
}

// ToPerson converts the request into a Person without an ID.
func (r PersonAddRequest) ToPerson() Person {
	return Person{
		Name:               r.PersonName,
		Email:              r.Email,
		DateOfBirth:        calendarDay(r.DateOfBirth),
		Gender:             r.Gender,
		CountryID:          r.CountryID,
		Address:            r.Address,
		ReceiveNewsLetters: r.ReceiveNewsLetters,
	}
}

// PersonUpdateRequest replaces every mutable field of an existing person.
// Gender and country must be selected on this path.
type PersonUpdateRequest struct {
	PersonID           uuid.UUID `validate:"required"`
	PersonName         string    `validate:"required,max=40"`
	Email              string    `validate:"required,email,max=50"`
	DateOfBirth        *time.Time
	Gender             Gender     `validate:"required,oneof=Male Female Other"`
	CountryID          *uuid.UUID `validate:"required"`
	Address            string     `validate:"max=200"`
	ReceiveNewsLetters bool
}

// ToPerson converts the request into a Person carrying the request's ID.
func (r PersonUpdateRequest) ToPerson() Person {
	return Person{
		ID:                 r.PersonID,
		Name:               r.PersonName,
		Email:              r.Email,
		DateOfBirth:        calendarDay(r.DateOfBirth),
		Gender:             r.Gender,
		CountryID:          r.CountryID,
		Address:            r.Address,
		ReceiveNewsLetters: r.ReceiveNewsLetters,
	}
}

// PersonResponse is the read projection of a Person. Country holds the
// denormalized country name and Age is derived from the birth date.
type PersonResponse struct {
	PersonID           uuid.UUID
	PersonName         string
	Email              string
	DateOfBirth        *time.Time
	Gender             Gender
	CountryID          *uuid.UUID
	Country            string
	Address            string
	ReceiveNewsLetters bool
	Age                *float64
}

// Equal reports whether two projections hold the same values in every field.
func (p PersonResponse) Equal(o PersonResponse) bool {
	return p.PersonID == o.PersonID &&
		p.PersonName == o.PersonName &&
		p.Email == o.Email &&
		equalTime(p.DateOfBirth, o.DateOfBirth) &&
		p.Gender == o.Gender &&
		equalUUID(p.CountryID, o.CountryID) &&
		p.Country == o.Country &&
		p.Address == o.Address &&
		p.ReceiveNewsLetters == o.ReceiveNewsLetters &&
		equalFloat(p.Age, o.Age)
}

// ToPersonUpdateRequest builds an update request pre-filled with the current values.
func (p PersonResponse) ToPersonUpdateRequest() PersonUpdateRequest {
	return PersonUpdateRequest{
		PersonID:           p.PersonID,
		PersonName:         p.PersonName,
		Email:              p.Email,
		DateOfBirth:        p.DateOfBirth,
		Gender:             p.Gender,
		CountryID:          p.CountryID,
		Address:            p.Address,
		ReceiveNewsLetters: p.ReceiveNewsLetters,
	}
}

// ToPersonResponse projects a Person at the given instant.
func (p Person) ToPersonResponse(now time.Time) PersonResponse {
	resp := PersonResponse{
		PersonID:           p.ID,
		PersonName:         p.Name,
		Email:              p.Email,
		DateOfBirth:        p.DateOfBirth,
		Gender:             p.Gender,
		CountryID:          p.CountryID,
		Address:            p.Address,
		ReceiveNewsLetters: p.ReceiveNewsLetters,
		Age:                AgeAt(p.DateOfBirth, now),
	}
	if p.Country != nil {
		resp.Country = p.Country.Name
	}
	return resp
}

// AgeAt returns the age in years at now, rounded half away from zero.
// Returns nil when dob is nil.
func AgeAt(dob *time.Time, now time.Time) *float64 {
	if dob == nil {
		return nil
	}
	days := float64(now.Unix()-dob.Unix()) / 86400
	age := math.Round(days / 365.25)
	return &age
}

// calendarDay keeps only the calendar date of t, as midnight UTC. Stores
// persist dates without a time of day or zone.
func calendarDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func equalUUID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
