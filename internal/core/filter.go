package core

// FilterPersons returns the persons whose searchBy field contains searchString,
// compared case-insensitively.
//
// The input is returned unchanged when searchString is empty or searchBy does
// not name a searchable field. Persons with no value for the field never match
// a non-empty search.
func FilterPersons(all []PersonResponse, searchBy, searchString string) []PersonResponse {
	if searchString == "" {
		return all
	}

	field, ok := ParseField(searchBy)
	if !ok || !field.Searchable() {
		return all
	}

	text := fieldTable[field].Text
	matched := make([]PersonResponse, 0, len(all))
	for _, p := range all {
		v, ok := text(p)
		if !ok {
			continue
		}
		if containsFolded(v, searchString) {
			matched = append(matched, p)
		}
	}
	return matched
}
