package valuebox

import (
	"testing"

	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfo(t *testing.T) {
	tests := []struct {
		typ        Type
		fixed      int
		min, max   int
		enumerable bool
	}{
		{TypeString, 0, 0, MaxLength, false},
		{TypeOctets, 0, 0, MaxLength, false},
		{TypeABinary, 0, 32, MaxLength, false},
		{TypeIPv4Addr, 4, 4, 4, false},
		{TypeIPv4Prefix, 6, 6, 6, false},
		{TypeIPv6Addr, 16, 16, 16, false},
		{TypeIPv6Prefix, 18, 2, 18, false},
		{TypeEthernet, 6, 6, 6, false},
		{TypeByte, 1, 1, 1, true},
		{TypeShort, 2, 2, 2, true},
		{TypeInteger, 4, 4, 4, true},
		{TypeInteger64, 8, 8, 8, true},
		{TypeSigned, 4, 4, 4, true},
		{TypeTimeval, 16, 16, 16, false},
		{TypeDate, 4, 4, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			info, err := Info(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.fixed, info.FixedSize)
			assert.Equal(t, tt.min, info.MinLength)
			assert.Equal(t, tt.max, info.MaxLength)
			assert.Equal(t, tt.enumerable, info.Enumerable)
			assert.Equal(t, tt.enumerable, tt.typ.IsEnumerable())
		})
	}
}

func TestInfoRejectsNonDataKinds(t *testing.T) {
	for _, typ := range []Type{TypeInvalid, TypeTLV, TypeStruct, TypeExtended, TypeLongExtended,
		TypeEVS, TypeVSA, TypeVendor, TypeBad} {
		t.Run(typ.String(), func(t *testing.T) {
			_, err := Info(typ)
			assert.True(t, merry.Is(err, ErrInvalidType))
			assert.False(t, typ.IsData())
		})
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		name string
		want Type
	}{
		{"string", TypeString},
		{"octets", TypeOctets},
		{"ipaddr", TypeIPv4Addr},
		{"ipv4addr", TypeIPv4Addr},
		{"ipv6prefix", TypeIPv6Prefix},
		{"combo-ip", TypeComboIPAddr},
		{"ether", TypeEthernet},
		{"integer64", TypeInteger64},
		{"uint32", TypeInteger},
		{"date", TypeDate},
		{"tlv", TypeTLV},
		{"vsa", TypeVSA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseType(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseType("float128")
	assert.True(t, merry.Is(err, ErrInvalidType))
}

func TestTypeTextRoundTrip(t *testing.T) {
	for typ := TypeString; typ <= TypeVendor; typ++ {
		text, err := typ.MarshalText()
		require.NoError(t, err)

		var got Type
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, typ, got)
	}
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, TypeComboIPAddr.IsCombo())
	assert.True(t, TypeComboIPPrefix.IsCombo())
	assert.False(t, TypeIPv4Addr.IsCombo())

	assert.True(t, TypeTLV.IsStructural())
	assert.False(t, TypeBad.IsStructural())

	assert.True(t, TypeIPv4Addr.IsFixed())
	assert.False(t, TypeOctets.IsFixed())
	assert.False(t, TypeTLV.IsFixed())

	assert.Equal(t, "bad", TypeBad.String())
	assert.Equal(t, "invalid", TypeInvalid.String())
}
