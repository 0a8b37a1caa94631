package schema_test

import (
	"testing"

	"github.com/ganot/labelcap/internal/domain/schema"
	"github.com/stretchr/testify/require"
)

func TestValidate_NormalizesAbsentDefaults(t *testing.T) {
	spec := &schema.ClassSpec{
		ClassID: "PET",
		Attributes: []schema.Attribute{
			{Name: "fill", Kind: schema.KindEnum, Options: []string{"empty", "full"}},
			{Name: "wet", Kind: schema.KindBool},
			{Name: "note", Kind: schema.KindText},
		},
	}
	require.NoError(t, spec.Validate())

	require.Equal(t, map[string]any{
		"fill": "empty",
		"wet":  false,
		"note": "",
	}, spec.Defaults())
}

func TestValidate_EmptySpec(t *testing.T) {
	spec := &schema.ClassSpec{ClassID: "PET"}
	require.ErrorIs(t, spec.Validate(), schema.ErrSpecInvalid)
}

func TestDefaults_NotAliased(t *testing.T) {
	spec := &schema.ClassSpec{
		ClassID: "PET",
		Attributes: []schema.Attribute{
			{Name: "fill", Kind: schema.KindEnum, Options: []string{"empty", "full"}},
		},
	}
	require.NoError(t, spec.Validate())

	first := spec.Defaults()
	first["fill"] = "full"
	require.Equal(t, "empty", spec.Defaults()["fill"])
}

func TestBuiltin_StockClassesValid(t *testing.T) {
	for _, classID := range []string{"PET", "CAN", "FOREIGN"} {
		spec := schema.Builtin(classID)
		require.NotNil(t, spec, classID)
		require.Equal(t, classID, spec.ClassID)
		require.NotEmpty(t, spec.Attributes)
	}
	require.Nil(t, schema.Builtin("GLASS"))
}
