package core

import (
	"cmp"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Field identifies a person field that can be searched or sorted.
type Field string

const (
	FieldPersonName         Field = "PersonName"
	FieldEmail              Field = "Email"
	FieldDateOfBirth        Field = "DateOfBirth"
	FieldAge                Field = "Age"
	FieldGender             Field = "Gender"
	FieldCountry            Field = "Country"
	FieldAddress            Field = "Address"
	FieldReceiveNewsLetters Field = "ReceiveNewsLetters"
)

// SearchDateLayout is the form a birth date takes when searched (dd MM yyyy).
const SearchDateLayout = "02 01 2006"

// fieldDef holds the accessors for one field.
// Text is nil for fields that cannot be searched; Compare is nil for
// fields that cannot be sorted.
type fieldDef struct {
	Label   string
	Text    func(p PersonResponse) (string, bool)
	Compare func(a, b PersonResponse) int
}

// fieldTable is the single registry of searchable and sortable fields.
// Adding a field is a matter of adding an entry here.
var fieldTable = map[Field]fieldDef{
	FieldPersonName: {
		Label:   "Person Name",
		Text:    func(p PersonResponse) (string, bool) { return p.PersonName, p.PersonName != "" },
		Compare: func(a, b PersonResponse) int { return compareFolded(a.PersonName, b.PersonName) },
	},
	FieldEmail: {
		Label:   "Email",
		Text:    func(p PersonResponse) (string, bool) { return p.Email, p.Email != "" },
		Compare: func(a, b PersonResponse) int { return compareFolded(a.Email, b.Email) },
	},
	FieldDateOfBirth: {
		Label: "Date of Birth",
		Text: func(p PersonResponse) (string, bool) {
			if p.DateOfBirth == nil {
				return "", false
			}
			return p.DateOfBirth.Format(SearchDateLayout), true
		},
		Compare: func(a, b PersonResponse) int { return compareTime(a.DateOfBirth, b.DateOfBirth) },
	},
	FieldAge: {
		Label:   "Age",
		Compare: func(a, b PersonResponse) int { return compareFloat(a.Age, b.Age) },
	},
	FieldGender: {
		Label:   "Gender",
		Text:    func(p PersonResponse) (string, bool) { return string(p.Gender), p.Gender != "" },
		Compare: func(a, b PersonResponse) int { return compareFolded(string(a.Gender), string(b.Gender)) },
	},
	FieldCountry: {
		Label:   "Country",
		Text:    func(p PersonResponse) (string, bool) { return p.Country, p.Country != "" },
		Compare: func(a, b PersonResponse) int { return compareFolded(a.Country, b.Country) },
	},
	FieldAddress: {
		Label:   "Address",
		Text:    func(p PersonResponse) (string, bool) { return p.Address, p.Address != "" },
		Compare: func(a, b PersonResponse) int { return compareFolded(a.Address, b.Address) },
	},
	FieldReceiveNewsLetters: {
		Label:   "Receive News Letters",
		Compare: func(a, b PersonResponse) int { return compareBool(a.ReceiveNewsLetters, b.ReceiveNewsLetters) },
	},
}

// fieldAliases maps legacy query values onto fields.
var fieldAliases = map[string]Field{
	"CountryID": FieldCountry,
}

// searchFieldOrder is the display order of the search drop-down.
var searchFieldOrder = []Field{
	FieldPersonName, FieldEmail, FieldDateOfBirth, FieldGender, FieldCountry, FieldAddress,
}

// ParseField resolves a query value to a known Field.
func ParseField(s string) (Field, bool) {
	if f, ok := fieldAliases[s]; ok {
		return f, true
	}
	f := Field(s)
	_, ok := fieldTable[f]
	return f, ok
}

// Label returns the display name of the field.
func (f Field) Label() string {
	if def, ok := fieldTable[f]; ok {
		return def.Label
	}
	return string(f)
}

// Searchable reports whether the field can be used for filtering.
func (f Field) Searchable() bool {
	return fieldTable[f].Text != nil
}

// Sortable reports whether the field can be used for sorting.
func (f Field) Sortable() bool {
	return fieldTable[f].Compare != nil
}

// SearchFields returns the searchable fields in display order.
func SearchFields() []Field {
	out := make([]Field, len(searchFieldOrder))
	copy(out, searchFieldOrder)
	return out
}

// fold case-folds s for culture-invariant, case-insensitive comparison.
// A Caser is not safe for concurrent use, so one is built per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

func containsFolded(haystack, needle string) bool {
	return strings.Contains(fold(haystack), fold(needle))
}

func compareFolded(a, b string) int {
	return strings.Compare(fold(a), fold(b))
}

// compareTime orders nil before any date.
func compareTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}

// compareFloat orders nil before any number.
func compareFloat(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return cmp.Compare(*a, *b)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
