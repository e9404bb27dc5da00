package valuebox

import (
	"bytes"
	"encoding/binary"
	"math"
)

// ToNetwork serializes v in network byte order. Variable length kinds are copied,
// prefixes keep their two byte header.
func ToNetwork(v *Value) ([]byte, error) {
	if err := checkValid(v, "to network"); err != nil {
		return nil, err
	}

	switch d := v.datum.(type) {
	case bytesDatum:
		return bytes.Clone(nonNil(d)), nil
	case boolDatum:
		if d {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case uintDatum:
		return putUint(uint64(d), typeInfos[v.typ].FixedSize), nil
	case signedDatum:
		return binary.BigEndian.AppendUint32(nil, uint32(d)), nil
	case decimalDatum:
		return binary.BigEndian.AppendUint64(nil, math.Float64bits(float64(d))), nil
	case timevalDatum:
		out := binary.BigEndian.AppendUint64(make([]byte, 0, 16), uint64(d.Sec))
		return binary.BigEndian.AppendUint64(out, uint64(d.Usec)), nil
	case ipv4Datum:
		return bytes.Clone(d[:]), nil
	case ipv4PrefixDatum:
		return bytes.Clone(d[:]), nil
	case ipv6Datum:
		return bytes.Clone(d[:]), nil
	case ipv6PrefixDatum:
		return bytes.Clone(d[:]), nil
	case ifidDatum:
		return bytes.Clone(d[:]), nil
	case etherDatum:
		return bytes.Clone(d[:]), nil
	}

	return nil, newError(ErrUnsupportedType, "cannot serialize values of type %s", v.typ)
}

// FromNetwork builds a value of kind typ from its network byte order form. The
// polymorphic combo kinds resolve to the concrete kind matching the data length.
func FromNetwork(typ Type, data []byte, enum EnumTable) (*Value, error) {
	if err := checkType(typ, "from network"); err != nil {
		return nil, err
	}
	if !typ.IsData() {
		return nil, newError(ErrInvalidType, "cannot decode values of type %s", typ)
	}

	switch typ {
	case TypeComboIPAddr:
		switch len(data) {
		case 4:
			typ = TypeIPv4Addr
		case 16:
			typ = TypeIPv6Addr
		default:
			return nil, newError(ErrLengthOutOfRange, "combo-ip must be 4 or 16 bytes, got %d", len(data))
		}
	case TypeComboIPPrefix:
		switch len(data) {
		case IPv4PrefixSize:
			typ = TypeIPv4Prefix
		case IPv6PrefixSize:
			typ = TypeIPv6Prefix
		default:
			return nil, newError(ErrLengthOutOfRange, "combo-prefix must be %d or %d bytes, got %d",
				IPv4PrefixSize, IPv6PrefixSize, len(data))
		}
	}

	info := typeInfos[typ]
	if len(data) < info.MinLength || len(data) > info.MaxLength {
		return nil, newError(ErrLengthOutOfRange, "%s must be %d-%d bytes, got %d",
			typ, info.MinLength, info.MaxLength, len(data))
	}

	d, err := decodeDatum(typ, data)
	if err != nil {
		return nil, err
	}
	return newValue(typ, d, enum), nil
}

// decodeDatum assumes the length of data has been checked against typ.
func decodeDatum(typ Type, data []byte) (datum, error) {
	switch typ {
	case TypeString, TypeOctets, TypeABinary:
		return bytesDatum(bytes.Clone(nonNil(data))), nil
	case TypeBool:
		return boolDatum(data[0] != 0), nil
	case TypeByte, TypeShort, TypeInteger, TypeInteger64, TypeSize, TypeDate:
		return uintDatum(getUint(data)), nil
	case TypeSigned:
		return signedDatum(int32(binary.BigEndian.Uint32(data))), nil
	case TypeDecimal:
		return decimalDatum(math.Float64frombits(binary.BigEndian.Uint64(data))), nil
	case TypeTimeval:
		tv := Timeval{
			Sec:  int64(binary.BigEndian.Uint64(data)),
			Usec: int64(binary.BigEndian.Uint64(data[8:])),
		}
		return timevalDatum(normalizeTimeval(tv)), nil
	case TypeIPv4Addr:
		return ipv4Datum(data), nil
	case TypeIPv6Addr:
		return ipv6Datum(data), nil
	case TypeIfID:
		return ifidDatum(data), nil
	case TypeEthernet:
		return etherDatum(data), nil
	case TypeIPv4Prefix:
		if data[1] > 32 {
			return nil, newError(ErrInvalidPrefixLength, "IPv4 prefix length %d exceeds 32", data[1])
		}
		var d ipv4PrefixDatum
		copy(d[:], data)
		d[0] = 0
		maskBits(d[2:], int(d[1]))
		return d, nil
	case TypeIPv6Prefix:
		// the address part may be truncated to the significant bytes
		if data[1] > 128 {
			return nil, newError(ErrInvalidPrefixLength, "IPv6 prefix length %d exceeds 128", data[1])
		}
		var d ipv6PrefixDatum
		copy(d[:], data)
		d[0] = 0
		maskBits(d[2:], int(d[1]))
		return d, nil
	}
	return nil, newError(ErrUnsupportedType, "cannot decode values of type %s", typ)
}

func putUint(i uint64, size int) []byte {
	out := make([]byte, size)
	switch size {
	case 1:
		out[0] = byte(i)
	case 2:
		binary.BigEndian.PutUint16(out, uint16(i))
	case 4:
		binary.BigEndian.PutUint32(out, uint32(i))
	case 8:
		binary.BigEndian.PutUint64(out, i)
	}
	return out
}

func getUint(data []byte) uint64 {
	var i uint64
	for _, b := range data {
		i = i<<8 | uint64(b)
	}
	return i
}
