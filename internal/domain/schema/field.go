package schema

// Control identifies the widget used to edit an attribute value.
type Control string

const (
	ControlRadio    Control = "radio"
	ControlCheckbox Control = "checkbox"
	ControlTextbox  Control = "textbox"
)

// FieldDescriptor is a renderer-agnostic projection of an attribute into a
// form field. The rendering layer consumes these without ever seeing the
// spec itself.
type FieldDescriptor struct {
	Name    string
	Label   string
	Control Control
	Options []string
	Initial any
}

// DescribeField maps an attribute onto its form field. Kind is a closed
// enumeration, so the dispatch is a plain three-way switch.
func DescribeField(attr Attribute) FieldDescriptor {
	field := FieldDescriptor{
		Name:    attr.Name,
		Label:   attr.Label,
		Initial: attr.Default,
	}
	if field.Label == "" {
		field.Label = attr.Name
	}

	switch attr.Kind {
	case KindEnum:
		field.Control = ControlRadio
		field.Options = append([]string(nil), attr.Options...)
	case KindBool:
		field.Control = ControlCheckbox
	case KindText:
		field.Control = ControlTextbox
	}
	return field
}

// DescribeClass returns field descriptors for every attribute, in declared
// order.
func DescribeClass(spec *ClassSpec) []FieldDescriptor {
	fields := make([]FieldDescriptor, 0, len(spec.Attributes))
	for _, attr := range spec.Attributes {
		fields = append(fields, DescribeField(attr))
	}
	return fields
}
