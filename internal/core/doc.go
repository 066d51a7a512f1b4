// Package core provides the business logic for the persons directory.
//
// This package holds the domain types, validation rules and services that
// manage Person and Country records, independent of any UI or transport layer.
// It can be used by web handlers, CLI tools, or tests without modification.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Stores: [CountryStore] and [PersonStore] persist entities. Implementations
//     live in internal/storage (PostgreSQL via pgx, SQLite via modernc).
//   - Services: [CountriesService] and [PersonsService] validate requests,
//     generate identifiers and project entities into response shapes.
//   - Field table: every person field that can be searched or sorted is
//     registered once in a table keyed by [Field]. Filtering and sorting look
//     accessors up in that table instead of switching on field names.
//
// # Response Projections
//
// Services never hand out entities. [PersonResponse] denormalizes the country
// name and adds the derived age:
//
//	resp, err := persons.AddPerson(ctx, &core.PersonAddRequest{
//	    PersonName: "Khalid",
//	    Email:      "khalid@example.com",
//	})
//	// resp.PersonID is generated, resp.Age is nil (no birth date)
//
// # Error Handling
//
// Services return wrapped sentinels that callers inspect with errors.Is / errors.As:
//
//   - [ErrNullRequest]: a required request or id was nil
//   - [*ValidationError]: a field rule failed (first violation)
//   - [ErrDuplicate]: a country name already exists
//   - [ErrNotFound]: an update targeted a missing person
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference.
package core
