package valuebox

import (
	"math"
	"testing"

	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkRoundTrip(t *testing.T) {
	v4prefix, err := NewIPv4Prefix([4]byte{10, 1, 0, 0}, 16)
	require.NoError(t, err)

	values := []*Value{
		NewString("text"), NewOctets([]byte{0, 1, 2}), NewABinary(make([]byte, 32)),
		NewBool(true), NewByte(0xfe, nil), NewShort(0xbeef, nil), NewInteger(0xdeadbeef, nil),
		NewInteger64(math.MaxUint64, nil), NewSize(1 << 40), NewSigned(math.MinInt32, nil),
		NewDecimal(-0.5), NewTimeval(Timeval{Sec: 1700000000, Usec: 123456}), NewDate(math.MaxUint32),
		NewIPv4Addr([4]byte{192, 0, 2, 1}), v4prefix, NewIPv6Addr([16]byte{0: 0x20, 1: 0x01, 15: 1}),
		NewIfID([8]byte{1, 2, 3, 4, 5, 6, 7, 8}), NewEthernet([6]byte{1, 2, 3, 4, 5, 6}),
	}

	for _, v := range values {
		t.Run(v.Type().String(), func(t *testing.T) {
			data, err := ToNetwork(v)
			require.NoError(t, err)
			assert.Equal(t, v.Length(), len(data))

			back, err := FromNetwork(v.Type(), data, nil)
			require.NoError(t, err)
			assert.Equal(t, v, back)
		})
	}
}

func TestFromNetwork(t *testing.T) {
	t.Run("length checked", func(t *testing.T) {
		_, err := FromNetwork(TypeInteger, []byte{1, 2}, nil)
		assert.True(t, merry.Is(err, ErrLengthOutOfRange))

		_, err = FromNetwork(TypeABinary, []byte{1}, nil)
		assert.True(t, merry.Is(err, ErrLengthOutOfRange))
	})

	t.Run("combo resolves by length", func(t *testing.T) {
		v, err := FromNetwork(TypeComboIPAddr, []byte{192, 0, 2, 1}, nil)
		require.NoError(t, err)
		assert.Equal(t, TypeIPv4Addr, v.Type())

		v, err = FromNetwork(TypeComboIPAddr, make([]byte, 16), nil)
		require.NoError(t, err)
		assert.Equal(t, TypeIPv6Addr, v.Type())

		v, err = FromNetwork(TypeComboIPPrefix, []byte{0, 8, 10, 0, 0, 0}, nil)
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.0/8", v.String())

		_, err = FromNetwork(TypeComboIPAddr, make([]byte, 5), nil)
		assert.True(t, merry.Is(err, ErrLengthOutOfRange))
	})

	t.Run("short ipv6 prefix is padded", func(t *testing.T) {
		v, err := FromNetwork(TypeIPv6Prefix, []byte{0, 32, 0x20, 0x01, 0x0d, 0xb8}, nil)
		require.NoError(t, err)
		assert.Equal(t, "2001:db8::/32", v.String())
		assert.Equal(t, IPv6PrefixSize, v.Length())
	})

	t.Run("prefix host bits masked", func(t *testing.T) {
		v, err := FromNetwork(TypeIPv4Prefix, []byte{0, 24, 192, 0, 2, 77}, nil)
		require.NoError(t, err)
		assert.Equal(t, "192.0.2.0/24", v.String())
	})

	t.Run("prefix length bounds", func(t *testing.T) {
		_, err := FromNetwork(TypeIPv4Prefix, []byte{0, 33, 0, 0, 0, 0}, nil)
		assert.True(t, merry.Is(err, ErrInvalidPrefixLength))
	})

	t.Run("enum attached", func(t *testing.T) {
		v, err := FromNetwork(TypeInteger, []byte{0, 0, 0, 1}, acctStatusType)
		require.NoError(t, err)
		assert.Equal(t, "Start", v.String())
	})

	t.Run("non data kinds", func(t *testing.T) {
		_, err := FromNetwork(TypeTLV, []byte{1}, nil)
		assert.True(t, merry.Is(err, ErrInvalidType))
	})
}
