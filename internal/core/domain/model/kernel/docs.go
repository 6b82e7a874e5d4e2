// Package kernel provides shared domain primitives for the pizzeria.
//
// The package includes:
//   - UUID: an immutable identifier value object used for worker identity
//
// Primitives are immutable and safe for concurrent use.
package kernel
