package session

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/ganot/labelcap/internal/domain/schema"
)

// State holds the operator's current class selection and its attribute
// values. Values always cover exactly the attributes of the current class's
// spec, each type-matching its definition. Not safe for concurrent use; the
// collector drives it from a single goroutine.
type State struct {
	classes []string
	specs   map[string]*schema.ClassSpec
	current string
	values  map[string]any
	logger  *slog.Logger
}

// NewState builds session state over validated class specs. The first spec's
// class becomes current, seeded with its defaults.
func NewState(specs []*schema.ClassSpec, logger *slog.Logger) (*State, error) {
	if len(specs) == 0 {
		return nil, ErrNoSpecs
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	state := &State{
		specs:  make(map[string]*schema.ClassSpec, len(specs)),
		logger: logger,
	}
	for _, spec := range specs {
		if _, dup := state.specs[spec.ClassID]; dup {
			return nil, fmt.Errorf("duplicate class %q", spec.ClassID)
		}
		state.classes = append(state.classes, spec.ClassID)
		state.specs[spec.ClassID] = spec
	}

	state.current = state.classes[0]
	state.values = state.specs[state.current].Defaults()
	return state, nil
}

// Classes returns configured class IDs in configuration order.
func (s *State) Classes() []string {
	return slices.Clone(s.classes)
}

// CurrentClass returns the active class ID.
func (s *State) CurrentClass() string {
	return s.current
}

// Spec returns the active class's spec.
func (s *State) Spec() *schema.ClassSpec {
	return s.specs[s.current]
}

// Values returns a copy of the current attribute values. Mutating the
// returned map never affects the session.
func (s *State) Values() map[string]any {
	values := make(map[string]any, len(s.values))
	for name, value := range s.values {
		values[name] = value
	}
	return values
}

// SwitchClass makes classID current and replaces all attribute values with
// the new class's defaults. No stale keys survive the switch.
func (s *State) SwitchClass(classID string) error {
	spec, ok := s.specs[classID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownClass, classID)
	}

	s.current = classID
	s.values = spec.Defaults()
	s.logger.Info("class switched", "class", classID)
	return nil
}

// SetAttribute replaces a single attribute value. On any error the state is
// left untouched.
func (s *State) SetAttribute(name string, value any) error {
	attr, ok := s.specs[s.current].Attribute(name)
	if !ok {
		return fmt.Errorf("%w: %q (class %s)", ErrUnknownAttribute, name, s.current)
	}
	if err := checkValue(attr, value); err != nil {
		return err
	}

	s.values[name] = value
	s.logger.Debug("attribute updated", "class", s.current, "attribute", name, "value", value)
	return nil
}

// Reset re-seeds the current class's defaults.
func (s *State) Reset() {
	s.values = s.specs[s.current].Defaults()
	s.logger.Info("attributes reset", "class", s.current)
}

func checkValue(attr *schema.Attribute, value any) error {
	switch attr.Kind {
	case schema.KindEnum:
		text, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %q expects one of %v", ErrTypeMismatch, attr.Name, attr.Options)
		}
		if !slices.Contains(attr.Options, text) {
			return fmt.Errorf("%w: %q not among options of %q", ErrTypeMismatch, text, attr.Name)
		}
	case schema.KindBool:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%w: %q expects a bool", ErrTypeMismatch, attr.Name)
		}
	case schema.KindText:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%w: %q expects a string", ErrTypeMismatch, attr.Name)
		}
	default:
		// Only reachable with a spec that skipped validation.
		return fmt.Errorf("%w: %q has unknown kind %q", ErrTypeMismatch, attr.Name, attr.Kind)
	}
	return nil
}
