package schema

// Builtin returns the built-in spec for one of the stock classes, or nil if
// the class has none. These mirror the specs shipped under states/ and are
// used as a fallback when a configured spec file cannot be loaded.
func Builtin(classID string) *ClassSpec {
	var spec *ClassSpec
	switch classID {
	case "PET":
		spec = &ClassSpec{
			ClassID: classID,
			Attributes: []Attribute{
				{Name: "container_name", Label: "Название тары", Kind: KindText},
				{Name: "deformation", Label: "Деформация", Kind: KindEnum, Options: []string{"none", "light", "strong"}},
				{Name: "fill", Label: "Заполненность", Kind: KindEnum, Options: []string{"empty", "half", "full"}},
				{Name: "transparency", Label: "Прозрачность", Kind: KindEnum, Options: []string{"transparent", "semi", "opaque"}},
				{Name: "label", Label: "Этикетка", Kind: KindEnum, Options: []string{"attached", "partial", "missing"}},
				{Name: "volume", Label: "Объём, л", Kind: KindEnum, Options: []string{"0.5", "1.0", "1.5", "2.0"}},
				{Name: "wet", Label: "Мокрая", Kind: KindBool},
				{Name: "condensate", Label: "Конденсат", Kind: KindBool},
				{Name: "glare", Label: "Блики", Kind: KindBool},
				{Name: "dirt", Label: "Грязь", Kind: KindBool},
			},
		}
	case "CAN":
		spec = &ClassSpec{
			ClassID: classID,
			Attributes: []Attribute{
				{Name: "container_name", Label: "Название тары", Kind: KindText},
				{Name: "deformation", Label: "Деформация", Kind: KindEnum, Options: []string{"none", "light", "strong"}},
				{Name: "fill", Label: "Заполненность", Kind: KindEnum, Options: []string{"empty", "half", "full"}},
				{Name: "finish", Label: "Крышка", Kind: KindEnum, Options: []string{"sealed", "opened"}},
				{Name: "decoration", Label: "Оформление", Kind: KindEnum, Options: []string{"printed", "plain"}},
				{Name: "volume", Label: "Объём, л", Kind: KindEnum, Options: []string{"0.33", "0.45", "0.5", "1.0"}},
				{Name: "wet", Label: "Мокрая", Kind: KindBool},
				{Name: "glare", Label: "Блики", Kind: KindBool},
				{Name: "label_attached", Label: "Этикетка наклеена", Kind: KindBool},
				{Name: "dirt", Label: "Грязь", Kind: KindBool},
			},
		}
	case "FOREIGN":
		spec = &ClassSpec{
			ClassID: classID,
			Attributes: []Attribute{
				{Name: "subtype", Label: "Подтип", Kind: KindEnum, Options: []string{"glass", "paper", "plastic", "metal", "organic", "other"}},
				{Name: "is_container", Label: "Является тарой", Kind: KindBool},
				{Name: "material", Label: "Материал", Kind: KindEnum, Options: []string{"glass", "paper", "plastic", "metal", "mixed", "unknown"}},
				{Name: "multiple_items", Label: "Несколько предметов", Kind: KindBool},
			},
		}
	default:
		return nil
	}

	// Builtin specs are hand-maintained; normalize like loaded ones.
	if err := spec.Validate(); err != nil {
		panic(err)
	}
	return spec
}
