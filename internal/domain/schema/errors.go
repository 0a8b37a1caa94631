package schema

import "errors"

var (
	// ErrSpecNotFound indicates no candidate spec file exists for the class.
	ErrSpecNotFound = errors.New("class spec not found")
	// ErrSpecInvalid indicates the spec parsed but violates attribute rules.
	ErrSpecInvalid = errors.New("class spec invalid")
)
