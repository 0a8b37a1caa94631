package session

import "errors"

var (
	// ErrUnknownClass indicates the class is not among the configured specs.
	ErrUnknownClass = errors.New("unknown class")
	// ErrUnknownAttribute indicates the attribute is not in the current class spec.
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrTypeMismatch indicates the value's shape doesn't match the attribute kind.
	ErrTypeMismatch = errors.New("attribute value type mismatch")
	// ErrNoSpecs indicates the state was constructed without any class specs.
	ErrNoSpecs = errors.New("no class specs configured")
)
