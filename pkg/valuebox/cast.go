package valuebox

import (
	"bytes"
	"encoding/binary"
	"math"
)

// v4MappedPrefix is the ::ffff:0:0/96 prefix used to carry IPv4 addresses in IPv6.
var v4MappedPrefix = [12]byte{10: 0xff, 11: 0xff}

const v4MappedBits = 96

// Cast converts src to kind dst. src is never modified.
//
// The result carries enum when dst supports enumeration aliases, and the tainted
// flag of src.
func Cast(dst Type, enum EnumTable, src *Value) (*Value, error) {
	if err := checkType(dst, "cast"); err != nil {
		return nil, err
	}
	if err := checkValid(src, "cast"); err != nil {
		return nil, err
	}

	out, err := cast(dst, enum, src)
	if err != nil {
		return nil, err
	}
	out.SetEnum(enum)
	out.tainted = src.tainted
	return out, nil
}

func cast(dst Type, enum EnumTable, src *Value) (*Value, error) {
	if dst == src.typ {
		return src.Copy()
	}

	if !dst.IsData() {
		return nil, invalidCast(src.typ, dst, "can only cast to data types")
	}

	if src.typ == TypeString {
		return Parse(string(src.Bytes()), dst, enum, QuoteNone)
	}

	switch dst {
	case TypeOctets:
		b, err := ToNetwork(src)
		if err != nil {
			return nil, err
		}
		return newValue(TypeOctets, bytesDatum(b), nil), nil

	case TypeString:
		s, err := Print(src, QuoteNone)
		if err != nil {
			return nil, err
		}
		return newValue(TypeString, bytesDatum(s), nil), nil

	case TypeComboIPAddr:
		if src.typ == TypeIPv4Addr || src.typ == TypeIPv6Addr {
			return src.Copy()
		}
		return nil, invalidCast(src.typ, dst, "")

	case TypeComboIPPrefix:
		if src.typ == TypeIPv4Prefix || src.typ == TypeIPv6Prefix {
			return src.Copy()
		}
		return nil, invalidCast(src.typ, dst, "")
	}

	d, handled, err := castSpecial(dst, src)
	if !handled {
		d, handled, err = castInteger(dst, src)
	}
	if !handled {
		d, handled, err = castAddress(dst, src)
	}
	if !handled {
		d, err = castRaw(dst, src)
	}
	if err != nil {
		return nil, err
	}
	return newValue(dst, d, nil), nil
}

func invalidCast(src, dst Type, reason string) error {
	if reason == "" {
		return newError(ErrInvalidCast, "invalid cast from %s to %s", src, dst)
	}
	return newError(ErrInvalidCast, "invalid cast from %s to %s, %s", src, dst, reason)
}

// castSpecial covers the big-endian reinterpretations between ifid, ether and integer64.
func castSpecial(dst Type, src *Value) (datum, bool, error) {
	switch {
	case src.typ == TypeIfID && dst == TypeInteger64:
		id := src.IfID()
		return uintDatum(binary.BigEndian.Uint64(id[:])), true, nil

	case src.typ == TypeInteger64 && dst == TypeIfID:
		var id ifidDatum
		binary.BigEndian.PutUint64(id[:], src.Uint64())
		return id, true, nil

	case src.typ == TypeInteger64 && dst == TypeEthernet:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], src.Uint64())
		if b[0] != 0 || b[1] != 0 {
			return nil, true, newError(ErrIntegerOverflow, "integer64 value %d does not fit in 48 bits", src.Uint64())
		}
		return etherDatum(b[2:]), true, nil

	case src.typ == TypeEthernet && dst == TypeInteger64:
		var b [8]byte
		mac := src.datum.(etherDatum)
		copy(b[2:], mac[:])
		return uintDatum(binary.BigEndian.Uint64(b[:])), true, nil
	}
	return nil, false, nil
}

// castInteger implements the promotion table of the integer family. Widening is
// always allowed, narrowing only when the value fits.
func castInteger(dst Type, src *Value) (datum, bool, error) {
	switch dst {
	case TypeShort, TypeInteger, TypeInteger64, TypeSize, TypeSigned, TypeTimeval, TypeDecimal:
	default:
		return nil, false, nil
	}

	if src.typ == TypeOctets {
		d, err := castFromOctets(dst, src)
		return d, true, err
	}

	overflow := func(limit uint64) error {
		return newError(ErrIntegerOverflow, "%s value %d is larger than %d and would overflow %s",
			src.typ, src.Uint64(), limit, dst)
	}
	negative := func() error {
		return newError(ErrIntegerOverflow, "%s value %d is negative and cannot be cast to %s",
			src.typ, src.Int32(), dst)
	}

	switch dst {
	case TypeShort:
		if src.typ == TypeByte {
			return uintDatum(src.Uint64()), true, nil
		}

	case TypeInteger:
		switch src.typ {
		case TypeByte, TypeShort, TypeDate:
			return uintDatum(src.Uint64()), true, nil
		case TypeInteger64, TypeSize:
			if src.Uint64() > math.MaxUint32 {
				return nil, true, overflow(math.MaxUint32)
			}
			return uintDatum(src.Uint64()), true, nil
		case TypeSigned:
			if src.Int32() < 0 {
				return nil, true, negative()
			}
			return uintDatum(uint64(src.Int32())), true, nil
		case TypeIPv4Addr:
			addr := src.datum.(ipv4Datum)
			return uintDatum(binary.BigEndian.Uint32(addr[:])), true, nil
		}

	case TypeInteger64, TypeSize:
		switch src.typ {
		case TypeByte, TypeShort, TypeInteger, TypeDate, TypeInteger64, TypeSize:
			return uintDatum(src.Uint64()), true, nil
		case TypeSigned:
			if src.Int32() < 0 {
				return nil, true, negative()
			}
			return uintDatum(uint64(src.Int32())), true, nil
		}

	case TypeSigned:
		switch src.typ {
		case TypeByte, TypeShort:
			return signedDatum(int32(src.Uint64())), true, nil
		case TypeInteger, TypeInteger64, TypeSize:
			if src.Uint64() > math.MaxInt32 {
				return nil, true, overflow(math.MaxInt32)
			}
			return signedDatum(int32(src.Uint64())), true, nil
		}

	case TypeTimeval:
		switch src.typ {
		case TypeByte, TypeShort, TypeInteger, TypeDate, TypeInteger64, TypeSize:
			if src.Uint64() > math.MaxInt64 {
				return nil, true, overflow(math.MaxInt64)
			}
			return timevalDatum(Timeval{Sec: int64(src.Uint64())}), true, nil
		case TypeSigned:
			return timevalDatum(Timeval{Sec: int64(src.Int32())}), true, nil
		}

	case TypeDecimal:
		switch src.typ {
		case TypeByte, TypeShort, TypeInteger, TypeInteger64, TypeSize:
			return decimalDatum(float64(src.Uint64())), true, nil
		case TypeSigned:
			return decimalDatum(float64(src.Int32())), true, nil
		case TypeTimeval:
			tv := src.Timeval()
			return decimalDatum(float64(tv.Sec) + float64(tv.Usec)/1e6), true, nil
		}
	}

	return nil, true, invalidCast(src.typ, dst, "")
}

// castFromOctets reads the leading bytes of an octets value as dst in network order.
func castFromOctets(dst Type, src *Value) (datum, error) {
	size := typeInfos[dst].FixedSize
	b := src.Bytes()
	if len(b) < size {
		return nil, newError(ErrBufferTooSmall,
			"invalid cast from octets to %s, source length %d is smaller than destination size %d",
			dst, len(b), size)
	}
	return decodeDatum(dst, b[:size])
}

// castAddress converts between IPv4 and IPv6 addresses and prefixes. Prefixes are
// expected to have their host bits cleared already.
func castAddress(dst Type, src *Value) (datum, bool, error) {
	switch src.typ {
	case TypeIPv4Addr, TypeIPv4Prefix, TypeIPv6Addr, TypeIPv6Prefix:
	default:
		return nil, false, nil
	}

	switch dst {
	case TypeIPv4Addr:
		switch s := src.datum.(type) {
		case ipv6Datum:
			addr, err := unmapV4(s[:], src.typ, dst)
			return ipv4Datum(addr), true, err
		case ipv4PrefixDatum:
			if s[1] != 32 {
				return nil, true, prefixToAddr(src.typ, dst, 32)
			}
			return ipv4Datum(s[2:]), true, nil
		case ipv6PrefixDatum:
			if s[1] != 128 {
				return nil, true, prefixToAddr(src.typ, dst, 128)
			}
			addr, err := unmapV4(s[2:], src.typ, dst)
			return ipv4Datum(addr), true, err
		}

	case TypeIPv6Addr:
		switch s := src.datum.(type) {
		case ipv4Datum:
			return ipv6Datum(mapV4(s)), true, nil
		case ipv4PrefixDatum:
			if s[1] != 32 {
				return nil, true, prefixToAddr(src.typ, dst, 32)
			}
			return ipv6Datum(mapV4([4]byte(s[2:]))), true, nil
		case ipv6PrefixDatum:
			if s[1] != 128 {
				return nil, true, prefixToAddr(src.typ, dst, 128)
			}
			return ipv6Datum(s[2:]), true, nil
		}

	case TypeIPv4Prefix:
		var d ipv4PrefixDatum
		switch s := src.datum.(type) {
		case ipv4Datum:
			d[1] = 32
			copy(d[2:], s[:])
			return d, true, nil
		case ipv6Datum:
			addr, err := unmapV4(s[:], src.typ, dst)
			if err != nil {
				return nil, true, err
			}
			d[1] = 32
			copy(d[2:], addr[:])
			return d, true, nil
		case ipv6PrefixDatum:
			if s[1] < v4MappedBits {
				return nil, true, newError(ErrNotV4MappedAddress,
					"invalid cast from %s to %s, prefix length %d is shorter than the IPv4-IPv6 mapping prefix",
					src.typ, dst, s[1])
			}
			addr, err := unmapV4(s[2:], src.typ, dst)
			if err != nil {
				return nil, true, err
			}
			d[1] = s[1] - v4MappedBits
			copy(d[2:], addr[:])
			return d, true, nil
		}

	case TypeIPv6Prefix:
		var d ipv6PrefixDatum
		switch s := src.datum.(type) {
		case ipv4Datum:
			d[1] = 128
			mapped := mapV4(s)
			copy(d[2:], mapped[:])
			return d, true, nil
		case ipv4PrefixDatum:
			d[1] = v4MappedBits + s[1]
			mapped := mapV4([4]byte(s[2:]))
			copy(d[2:], mapped[:])
			return d, true, nil
		case ipv6Datum:
			d[1] = 128
			copy(d[2:], s[:])
			return d, true, nil
		}
	}

	return nil, false, nil
}

func mapV4(addr [4]byte) [16]byte {
	var out [16]byte
	copy(out[:], v4MappedPrefix[:])
	copy(out[len(v4MappedPrefix):], addr[:])
	return out
}

func unmapV4(addr []byte, src, dst Type) ([4]byte, error) {
	if !bytes.Equal(addr[:len(v4MappedPrefix)], v4MappedPrefix[:]) {
		return [4]byte{}, newError(ErrNotV4MappedAddress,
			"invalid cast from %s to %s, no IPv4-IPv6 mapping prefix", src, dst)
	}
	return [4]byte(addr[len(v4MappedPrefix):]), nil
}

func prefixToAddr(src, dst Type, bits int) error {
	return newError(ErrInvalidPrefixLength,
		"invalid cast from %s to %s, only /%d prefixes may be cast to address types", src, dst, bits)
}

// castRaw reinterprets the network form of src as dst once the length fits dst.
func castRaw(dst Type, src *Value) (datum, error) {
	info := typeInfos[dst]
	length := src.Length()
	if length < info.MinLength || length > info.MaxLength {
		return nil, newError(ErrLengthOutOfRange,
			"invalid cast from %s to %s, length should be between %d and %d but is %d",
			src.typ, dst, info.MinLength, info.MaxLength, length)
	}

	b, err := ToNetwork(src)
	if err != nil {
		return nil, err
	}
	return decodeDatum(dst, b)
}
