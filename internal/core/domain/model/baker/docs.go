// Package baker provides the Baker entity of the baking stage.
//
// A Baker carries its identity, its baking time and an atomic busy flag. The
// bake itself is driven by the application layer; this package only guards
// the invariants of a single worker.
package baker
