// Package guard provides the ConstructorGuard used by entities and commands
// to reject zero values that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guard is a zero
// value and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as built by its constructor.
//
// Embed it in a struct and set it with NewConstructorGuard inside the
// constructor. Any zero value of the struct then fails Validate:
//
//	type Baker struct {
//	    name  string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewBaker(name string) *Baker {
//	    return &Baker{name: name, guard: guard.NewConstructorGuard()}
//	}
//
//	func (b *Baker) Validate() error {
//	    return b.guard.Validate(ErrBakerIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the guard was not created by NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
