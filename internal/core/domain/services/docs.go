// Package services provides domain services that coordinate several workers of
// the pizzeria.
//
// The package includes:
//   - WorkerDispatcher: fair round-robin selection of a free baker or courier
package services
