package schema

// Kind identifies the value type of an attribute.
type Kind string

const (
	KindEnum Kind = "enum"
	KindBool Kind = "bool"
	KindText Kind = "text"
)

// Attribute describes one labeled property of a class. Name is the stable
// key used in metadata and CSV columns; Label is display text only.
type Attribute struct {
	Name    string   `yaml:"name" json:"name"`
	Label   string   `yaml:"label,omitempty" json:"label,omitempty"`
	Kind    Kind     `yaml:"type" json:"type"`
	Options []string `yaml:"options,omitempty" json:"options,omitempty"`
	Default any      `yaml:"default,omitempty" json:"default,omitempty"`
}

// ClassSpec is the ordered attribute schema for one class. Loaded once at
// startup and immutable afterwards.
type ClassSpec struct {
	ClassID    string      `yaml:"-" json:"-"`
	Attributes []Attribute `yaml:"attributes" json:"attributes"`
}

// Attribute returns the attribute with the given name, if declared.
func (s *ClassSpec) Attribute(name string) (*Attribute, bool) {
	for i := range s.Attributes {
		if s.Attributes[i].Name == name {
			return &s.Attributes[i], true
		}
	}
	return nil, false
}

// Defaults returns a fresh map of attribute name to default value. The map
// is never aliased to the spec's own storage, so callers may mutate it.
func (s *ClassSpec) Defaults() map[string]any {
	values := make(map[string]any, len(s.Attributes))
	for _, attr := range s.Attributes {
		values[attr.Name] = attr.Default
	}
	return values
}

// Names returns attribute names in declared order.
func (s *ClassSpec) Names() []string {
	names := make([]string, 0, len(s.Attributes))
	for _, attr := range s.Attributes {
		names = append(names, attr.Name)
	}
	return names
}
