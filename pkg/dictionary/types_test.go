package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/radvalue/pkg/valuebox"
)

func TestEnumeration(t *testing.T) {
	e := NewEnumeration("Service-Type", map[string]uint32{
		"Login-User":  1,
		"Framed-User": 2,
		"Framed":      2,
	})

	var _ valuebox.EnumTable = e

	assert.Equal(t, "Service-Type", e.Name())
	assert.Equal(t, 3, e.Len())

	value, ok := e.EnumByName("Framed-User")
	require.True(t, ok)
	assert.Equal(t, uint32(2), value)

	name, ok := e.EnumByValue(2)
	require.True(t, ok)
	assert.Equal(t, "Framed", name, "the lexically smallest alias wins")

	_, ok = e.EnumByName("framed")
	assert.False(t, ok, "names are case sensitive")

	_, ok = e.EnumByValue(9)
	assert.False(t, ok)
}

func TestAttributeEnum(t *testing.T) {
	tests := []struct {
		name    string
		attr    *AttributeDefinition
		wantNil bool
	}{
		{
			name:    "no values",
			attr:    &AttributeDefinition{Name: "Session-Timeout", DataType: valuebox.TypeInteger},
			wantNil: true,
		},
		{
			name:    "non enumerable type",
			attr:    &AttributeDefinition{Name: "User-Name", DataType: valuebox.TypeString, Values: map[string]uint32{"x": 1}},
			wantNil: true,
		},
		{
			name: "integer with values",
			attr: &AttributeDefinition{Name: "Acct-Status-Type", DataType: valuebox.TypeInteger, Values: map[string]uint32{"Start": 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enum := tt.attr.Enum()
			if tt.wantNil {
				assert.Nil(t, enum)
				return
			}
			require.NotNil(t, enum)
			assert.Same(t, enum, tt.attr.Enum())
			assert.Equal(t, tt.attr.Name, enum.Name())
		})
	}
}

func TestAttributeEnumDrivesValues(t *testing.T) {
	attr := &AttributeDefinition{
		Name:     "Acct-Status-Type",
		DataType: valuebox.TypeInteger,
		Values:   map[string]uint32{"Start": 1, "Stop": 2},
	}

	v, err := valuebox.Parse("Stop", attr.DataType, attr.Enum(), valuebox.QuoteNone)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v.Uint64())
	assert.Equal(t, "Stop", v.String())
}
