package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gender is one of a fixed set of values a person can select.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Genders lists the selectable genders in display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// ParseGender matches s case-insensitively against the known genders.
// Returns false for empty or unknown values.
func ParseGender(s string) (Gender, bool) {
	s = strings.TrimSpace(s)
	for _, g := range Genders {
		if strings.EqualFold(string(g), s) {
			return g, true
		}
	}
	return "", false
}

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ParseSortOrder converts s to a SortOrder, defaulting to ascending.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// Country is a stored country record.
type Country struct {
	ID   uuid.UUID
	Name string
}

// Person is a stored person record.
// Country is populated by stores when the country reference resolves.
type Person struct {
	ID                 uuid.UUID
	Name               string
	Email              string
	DateOfBirth        *time.Time
	Gender             Gender
	CountryID          *uuid.UUID
	Address            string
	ReceiveNewsLetters bool

	Country *Country
}

// Clock returns the current time. Services compute ages against it.
type Clock func() time.Time
