package core

import "slices"

// SortPersons returns a copy of persons ordered by the sortBy field.
//
// The input is returned unchanged when sortBy is empty or does not name a
// sortable field. The sort is stable: persons with equal keys keep their
// input order in both directions.
func SortPersons(persons []PersonResponse, sortBy string, order SortOrder) []PersonResponse {
	if sortBy == "" {
		return persons
	}

	field, ok := ParseField(sortBy)
	if !ok || !field.Sortable() {
		return persons
	}

	compare := fieldTable[field].Compare
	sorted := slices.Clone(persons)
	slices.SortStableFunc(sorted, func(a, b PersonResponse) int {
		if order == SortDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return sorted
}
