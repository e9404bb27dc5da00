package packet

import (
	"bytes"
	"testing"

	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttribute(t *testing.T) {
	attr, err := NewAttribute(1, []byte("test"))
	require.NoError(t, err)
	assert.Equal(t, uint8(1), attr.Type)
	assert.Equal(t, uint8(6), attr.Length)
	assert.Equal(t, "Type=1, Length=6, Value=74657374", attr.String())

	_, err = NewAttribute(1, make([]byte, MaxAttributeValueLength))
	assert.NoError(t, err)

	_, err = NewAttribute(1, make([]byte, MaxAttributeValueLength+1))
	assert.True(t, merry.Is(err, ErrValueTooLong))
}

func TestVendorAttributeRoundTrip(t *testing.T) {
	va := NewVendorAttribute(14988, 8, []byte("10M/10M"))
	assert.Equal(t, "VendorID=14988, Type=8, Value=31304d2f31304d", va.String())

	attr, err := va.ToVSA()
	require.NoError(t, err)
	assert.Equal(t, uint8(AttrVendorSpecific), attr.Type)
	assert.Equal(t, []byte{0, 0, 0x3a, 0x8c, 8, 9}, attr.Value[:VendorSpecificHeaderLength])

	parsed, err := ParseVSA(attr)
	require.NoError(t, err)
	assert.Equal(t, va, parsed)
}

func TestParseVSAErrors(t *testing.T) {
	tests := []struct {
		name string
		attr *Attribute
		kind error
	}{
		{"not vendor specific", &Attribute{Type: 1, Value: make([]byte, 8)}, ErrNotVendorSpecific},
		{"too short", &Attribute{Type: AttrVendorSpecific, Value: []byte{0, 0, 0, 9, 1}}, ErrMalformedAttribute},
		{"bad vendor length", &Attribute{Type: AttrVendorSpecific, Value: []byte{0, 0, 0, 9, 1, 7, 'a'}}, ErrMalformedAttribute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseVSA(tt.attr)
			assert.True(t, merry.Is(err, tt.kind))
		})
	}
}

func TestEncodeDecodeAttributes(t *testing.T) {
	a, err := NewAttribute(1, []byte("bob"))
	require.NoError(t, err)
	b, err := NewAttribute(5, []byte{0, 0, 0, 7})
	require.NoError(t, err)
	empty, err := NewAttribute(24, nil)
	require.NoError(t, err)

	data := EncodeAttributes([]*Attribute{a, b, empty})
	assert.Equal(t, []byte{1, 5, 'b', 'o', 'b', 5, 6, 0, 0, 0, 7, 24, 2}, data)

	attrs, err := DecodeAttributes(data)
	require.NoError(t, err)
	require.Len(t, attrs, 3)
	assert.Equal(t, a, attrs[0])
	assert.Equal(t, b, attrs[1])
	assert.Empty(t, attrs[2].Value)

	data[2] = 'X'
	assert.True(t, bytes.Equal([]byte("bob"), attrs[0].Value), "decoded values do not alias the buffer")
}

func TestDecodeAttributesErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"incomplete header", []byte{1}},
		{"length below header", []byte{1, 1}},
		{"beyond buffer", []byte{1, 10, 'a'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAttributes(tt.data)
			assert.True(t, merry.Is(err, ErrMalformedAttribute))
		})
	}

	attrs, err := DecodeAttributes(nil)
	require.NoError(t, err)
	assert.Empty(t, attrs)
}
