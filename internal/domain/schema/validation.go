package schema

import (
	"fmt"
	"slices"
)

// Validate checks the spec against the attribute rules and normalizes
// defaults in place: an absent default becomes the kind's natural zero
// (first enum option, false, empty string). After a successful Validate
// every attribute carries a concrete, type-correct Default.
func (s *ClassSpec) Validate() error {
	if len(s.Attributes) == 0 {
		return fmt.Errorf("%w: no attributes declared", ErrSpecInvalid)
	}

	seen := make(map[string]bool, len(s.Attributes))
	for i := range s.Attributes {
		attr := &s.Attributes[i]
		if attr.Name == "" {
			return fmt.Errorf("%w: attribute %d has no name", ErrSpecInvalid, i)
		}
		if seen[attr.Name] {
			return fmt.Errorf("%w: duplicate attribute %q", ErrSpecInvalid, attr.Name)
		}
		seen[attr.Name] = true

		if err := normalizeDefault(attr); err != nil {
			return err
		}
	}
	return nil
}

func normalizeDefault(attr *Attribute) error {
	switch attr.Kind {
	case KindEnum:
		if len(attr.Options) == 0 {
			return fmt.Errorf("%w: enum attribute %q has no options", ErrSpecInvalid, attr.Name)
		}
		if attr.Default == nil {
			attr.Default = attr.Options[0]
			return nil
		}
		value, ok := attr.Default.(string)
		if !ok {
			return fmt.Errorf("%w: enum attribute %q default is not a string", ErrSpecInvalid, attr.Name)
		}
		if !slices.Contains(attr.Options, value) {
			return fmt.Errorf("%w: enum attribute %q default %q not among options", ErrSpecInvalid, attr.Name, value)
		}
	case KindBool:
		if attr.Default == nil {
			attr.Default = false
			return nil
		}
		if _, ok := attr.Default.(bool); !ok {
			return fmt.Errorf("%w: bool attribute %q default is not a bool", ErrSpecInvalid, attr.Name)
		}
	case KindText:
		if attr.Default == nil {
			attr.Default = ""
			return nil
		}
		if _, ok := attr.Default.(string); !ok {
			return fmt.Errorf("%w: text attribute %q default is not a string", ErrSpecInvalid, attr.Name)
		}
	default:
		return fmt.Errorf("%w: attribute %q has unknown kind %q", ErrSpecInvalid, attr.Name, attr.Kind)
	}
	return nil
}
