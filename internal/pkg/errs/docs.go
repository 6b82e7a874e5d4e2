// Package errs provides standardized error types for the pizzeria.
//
// The package includes:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a value is outside of its allowed bounds
//   - ObjectNotFoundError: an identifier does not resolve to an object
//
// Each error type pairs a sentinel (ErrValueIsRequired, ...) with a struct
// carrying the details, constructors with and without a cause, and an Unwrap
// method returning the sentinel so callers can branch with errors.Is.
package errs
