// Package guard provides ConstructorGuard, a marker embedded into value objects,
// commands and queries to tell a constructed instance apart from its zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set only by NewConstructorGuard. A struct embedding it
// fails validation when it was built as a literal instead of through its
// constructor, which keeps unvalidated addresses, payments or commands out of
// the order aggregate.
//
// Example:
//
//	var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress")
//
//	type Address struct {
//	    street string
//	    guard  guard.ConstructorGuard
//	}
//
//	func (a Address) Validate() error {
//	    return a.guard.Validate(ErrAddressIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard and validationError otherwise.
// A nil validationError falls back to ErrDefaultConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
