package valuebox

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math"
	"net/netip"
	"strconv"
	"strings"
	"time"
)

// maxFixedInput bounds the text accepted for fixed size kinds.
const maxFixedInput = 256

// DateLayout is the layout used to print dates and the first layout tried when parsing them.
const DateLayout = "Jan _2 2006 15:04:05 MST"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse converts text into a value of kind typ. A combo-ip kind resolves to ipaddr or
// ipv6addr, the resolved kind is reported by the returned value's Type.
//
// enum is consulted for names of enumerable kinds, quote selects the unescaping mode
// for strings.
func Parse(in string, typ Type, enum EnumTable, quote Quote) (*Value, error) {
	if err := checkType(typ, "parse"); err != nil {
		return nil, err
	}

	switch {
	case typ.IsStructural(), typ == TypeBad, typ == TypeComboIPPrefix:
		return nil, newError(ErrInvalidType, "cannot parse values of type %s", typ)
	case typ.IsFixed() && len(in) >= maxFixedInput:
		return nil, newError(ErrBufferTooSmall, "%d bytes of input exceed the %d byte limit for %s",
			len(in), maxFixedInput-1, typ)
	}

	d, resolved, err := parseDatum(in, typ, enum, quote)
	if err != nil {
		return nil, err
	}
	return newValue(resolved, d, enum), nil
}

// FromString parses text into v. On failure v is left invalid.
func (v *Value) FromString(in string, typ Type, enum EnumTable, quote Quote) error {
	v.Clear()
	parsed, err := Parse(in, typ, enum, quote)
	if err != nil {
		return err
	}
	return v.Steal(parsed)
}

func parseDatum(in string, typ Type, enum EnumTable, quote Quote) (datum, Type, error) {
	switch typ {
	case TypeString:
		return bytesDatum(Unescape([]byte(in), quote)), typ, nil

	case TypeOctets:
		if !hasHexPrefix(in) {
			return bytesDatum(in), typ, nil
		}
		b, err := decodeHex(in[2:])
		if err != nil {
			return nil, typ, err
		}
		return bytesDatum(b), typ, nil

	case TypeABinary:
		b, err := parseABinary(in)
		if err != nil {
			return nil, typ, err
		}
		return bytesDatum(b), typ, nil

	case TypeIPv4Addr:
		addr, bits, err := parseIPv4(in, false)
		if err != nil {
			return nil, typ, err
		}
		if bits != 32 {
			return nil, typ, newError(ErrInvalidPrefixLength,
				"invalid IPv4 mask length \"/%d\", only \"/32\" permitted for non-prefix types", bits)
		}
		return ipv4Datum(addr), typ, nil

	case TypeIPv4Prefix:
		addr, bits, err := parseIPv4(in, true)
		if err != nil {
			return nil, typ, err
		}
		var d ipv4PrefixDatum
		d[1] = uint8(bits)
		copy(d[2:], addr[:])
		maskBits(d[2:], bits)
		return d, typ, nil

	case TypeIPv6Addr:
		addr, bits, err := parseIPv6(in)
		if err != nil {
			return nil, typ, err
		}
		if bits != 128 {
			return nil, typ, newError(ErrInvalidPrefixLength,
				"invalid IPv6 mask length \"/%d\", only \"/128\" permitted for non-prefix types", bits)
		}
		return ipv6Datum(addr), typ, nil

	case TypeIPv6Prefix:
		addr, bits, err := parseIPv6(in)
		if err != nil {
			return nil, typ, err
		}
		var d ipv6PrefixDatum
		d[1] = uint8(bits)
		copy(d[2:], addr[:])
		maskBits(d[2:], bits)
		return d, typ, nil

	case TypeComboIPAddr:
		if addr, bits, err := parseIPv6(in); err == nil && bits == 128 {
			return ipv6Datum(addr), TypeIPv6Addr, nil
		}
		if addr, bits, err := parseIPv4(in, false); err == nil && bits == 32 {
			return ipv4Datum(addr), TypeIPv4Addr, nil
		}
		return nil, typ, newError(ErrParse, "failed to parse %q as an IPv4 or IPv6 address", in)

	case TypeIfID:
		id, err := parseIfID(in)
		if err != nil {
			return nil, typ, err
		}
		return ifidDatum(id), typ, nil

	case TypeEthernet:
		mac, err := parseEthernet(in)
		if err != nil {
			return nil, typ, err
		}
		return etherDatum(mac), typ, nil

	case TypeBool:
		switch strings.ToLower(strings.TrimSpace(in)) {
		case "yes", "true", "1":
			return boolDatum(true), typ, nil
		case "no", "false", "0":
			return boolDatum(false), typ, nil
		}
		return nil, typ, newError(ErrParse, "failed parsing %q as a boolean", in)

	case TypeByte, TypeShort, TypeInteger, TypeInteger64, TypeSize:
		i, err := parseUnsigned(in, typ, enum)
		if err != nil {
			return nil, typ, err
		}
		return uintDatum(i), typ, nil

	case TypeSigned:
		i, err := parseSigned(in, enum)
		if err != nil {
			return nil, typ, err
		}
		return signedDatum(i), typ, nil

	case TypeDecimal:
		f, err := strconv.ParseFloat(strings.TrimSpace(in), 64)
		if err != nil {
			return nil, typ, newError(ErrParse, "failed parsing %q as a decimal", in)
		}
		return decimalDatum(f), typ, nil

	case TypeTimeval:
		tv, err := parseTimeval(in)
		if err != nil {
			return nil, typ, err
		}
		return timevalDatum(tv), typ, nil

	case TypeDate:
		sec, err := parseDate(in)
		if err != nil {
			return nil, typ, err
		}
		return uintDatum(sec), typ, nil
	}

	return nil, typ, newError(ErrInvalidType, "cannot parse values of type %s", typ)
}

func hasHexPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func decodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, newError(ErrOddHexLength, "length of hex string is not even, got %d bytes", len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, merryWrap(ErrParse, err, "invalid hex data")
	}
	return b, nil
}

func parseABinary(in string) ([]byte, error) {
	var b []byte
	if hasHexPrefix(in) {
		decoded, err := decodeHex(in[2:])
		if err != nil {
			return nil, err
		}
		if len(decoded) > abinaryFilterSize {
			return nil, newError(ErrLengthOutOfRange, "hex data is too large for an ascend filter, %d > %d bytes",
				len(decoded), abinaryFilterSize)
		}
		b = decoded
	} else {
		b = []byte(in)
	}
	if len(b) < abinaryFilterSize {
		padded := make([]byte, abinaryFilterSize)
		copy(padded, b)
		b = padded
	}
	return b, nil
}

// parseUnsigned handles all unsigned integer kinds. Text that is not a number is
// looked up in enum.
func parseUnsigned(in string, typ Type, enum EnumTable) (uint64, error) {
	s := strings.TrimSpace(in)
	bitSize := typeInfos[typ].FixedSize * 8

	base := 10
	digits := s
	if hasHexPrefix(s) && typ != TypeInteger64 && typ != TypeSize {
		base = 16
		digits = s[2:]
	}

	i, err := strconv.ParseUint(digits, base, bitSize)
	if err == nil {
		return i, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, newError(ErrValueOutOfRange, "%s value %q is larger than %d", typ, s, maxUnsigned(bitSize))
	}
	if isNegativeNumber(s) {
		return 0, newError(ErrValueOutOfRange, "%s value %q is negative", typ, s)
	}
	if enum == nil {
		return 0, newError(ErrParse, "failed parsing %q as %s", in, typ)
	}

	e, ok := enum.EnumByName(s)
	if !ok {
		return 0, newError(ErrUnknownEnumValue, "unknown or invalid value %q for attribute %s", s, enum.Name())
	}
	if uint64(e) > maxUnsigned(bitSize) {
		return 0, newError(ErrValueOutOfRange, "value %d of %q does not fit in %s", e, s, typ)
	}
	return uint64(e), nil
}

func parseSigned(in string, enum EnumTable) (int32, error) {
	s := strings.TrimSpace(in)

	i, err := strconv.ParseInt(s, 10, 32)
	if err == nil {
		return int32(i), nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, newError(ErrValueOutOfRange, "signed value %q does not fit in 32 bits", s)
	}
	if enum == nil {
		return 0, newError(ErrParse, "failed parsing %q as signed", in)
	}

	e, ok := enum.EnumByName(s)
	if !ok {
		return 0, newError(ErrUnknownEnumValue, "unknown or invalid value %q for attribute %s", s, enum.Name())
	}
	if e > math.MaxInt32 {
		return 0, newError(ErrValueOutOfRange, "value %d of %q does not fit in signed", e, s)
	}
	return int32(e), nil
}

func maxUnsigned(bitSize int) uint64 {
	if bitSize >= 64 {
		return math.MaxUint64
	}
	return 1<<uint(bitSize) - 1
}

func isNegativeNumber(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 10, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

// parseIPv4 accepts dotted quads with an optional /bits suffix. When shorthand is set,
// prefixes with fewer than four octets such as "10/8" are accepted.
func parseIPv4(in string, shorthand bool) ([4]byte, int, error) {
	var addr [4]byte
	s := strings.TrimSpace(in)

	if s == "*" {
		return addr, 32, nil
	}

	host, bits, hasBits, err := splitPrefix(s, 32)
	if err != nil {
		return addr, 0, err
	}
	if strings.Contains(host, ":") {
		return addr, 0, newError(ErrParse, "%q is an IPv6 address, expected IPv4", in)
	}

	if a, err := netip.ParseAddr(host); err == nil && a.Is4() {
		return a.As4(), bits, nil
	}

	if !shorthand || !hasBits {
		return addr, 0, newError(ErrParse, "failed to parse %q as an IPv4 address", in)
	}

	octets := strings.Split(host, ".")
	if len(octets) > 4 {
		return addr, 0, newError(ErrParse, "failed to parse %q as an IPv4 prefix", in)
	}
	for i, o := range octets {
		n, err := strconv.ParseUint(o, 10, 8)
		if err != nil {
			return addr, 0, newError(ErrParse, "failed to parse %q as an IPv4 prefix", in)
		}
		addr[i] = byte(n)
	}
	return addr, bits, nil
}

func parseIPv6(in string) ([16]byte, int, error) {
	var addr [16]byte
	s := strings.TrimSpace(in)

	host, bits, _, err := splitPrefix(s, 128)
	if err != nil {
		return addr, 0, err
	}
	if strings.Contains(host, "%") {
		return addr, 0, newError(ErrParse, "scoped address %q is not supported", in)
	}

	a, err := netip.ParseAddr(host)
	if err != nil {
		return addr, 0, merryWrap(ErrParse, err, "failed to parse %q as an IPv6 address", in)
	}
	if !a.Is6() {
		return addr, 0, newError(ErrParse, "%q is an IPv4 address, expected IPv6", in)
	}
	return a.As16(), bits, nil
}

// splitPrefix separates "addr/bits". Without a suffix bits is max.
func splitPrefix(s string, max int) (string, int, bool, error) {
	host, suffix, found := strings.Cut(s, "/")
	if !found {
		return host, max, false, nil
	}
	bits, err := strconv.ParseUint(suffix, 10, 8)
	if err != nil || int(bits) > max {
		return "", 0, true, newError(ErrInvalidPrefixLength, "invalid prefix length %q, must be 0-%d", suffix, max)
	}
	return host, int(bits), true, nil
}

func parseIfID(in string) ([8]byte, error) {
	var id [8]byte
	groups := strings.Split(strings.TrimSpace(in), ":")
	if len(groups) != 4 {
		return id, newError(ErrParse, "failed to parse interface-id string %q", in)
	}
	for i, g := range groups {
		if g == "" || len(g) > 4 {
			return id, newError(ErrParse, "failed to parse interface-id string %q", in)
		}
		n, err := strconv.ParseUint(g, 16, 16)
		if err != nil {
			return id, newError(ErrParse, "failed to parse interface-id string %q", in)
		}
		binary.BigEndian.PutUint16(id[i*2:], uint16(n))
	}
	return id, nil
}

func parseEthernet(in string) ([6]byte, error) {
	var mac [6]byte
	s := strings.TrimSpace(in)

	if isDigits(s) {
		n, err := strconv.ParseUint(s, 10, 48)
		if err != nil {
			return mac, newError(ErrInvalidEthernetAddress, "Ethernet address %q does not fit in 48 bits", in)
		}
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], n)
		copy(mac[:], b[2:])
		return mac, nil
	}

	groups := strings.Split(s, ":")
	if len(groups) != len(mac) {
		return mac, newError(ErrInvalidEthernetAddress, "failed to parse Ethernet address %q", in)
	}
	for i, g := range groups {
		if g == "" || len(g) > 2 {
			return mac, newError(ErrInvalidEthernetAddress, "failed to parse Ethernet address %q", in)
		}
		n, err := strconv.ParseUint(g, 16, 8)
		if err != nil {
			return mac, newError(ErrInvalidEthernetAddress, "failed to parse Ethernet address %q", in)
		}
		mac[i] = byte(n)
	}
	return mac, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseTimeval reads "[-]sec[.usec]". Negative values are normalized so that
// Usec stays positive, "-1.5" becomes {-2, 500000}.
func parseTimeval(in string) (Timeval, error) {
	s := strings.TrimSpace(in)
	s, negative := strings.CutPrefix(s, "-")
	secText, usecText, hasFraction := strings.Cut(s, ".")

	if !isDigits(secText) {
		return Timeval{}, newError(ErrParse, "failed parsing %q as a timeval", in)
	}
	sec, err := strconv.ParseInt(secText, 10, 64)
	if err != nil {
		return Timeval{}, newError(ErrParse, "failed parsing %q as a timeval", in)
	}

	var usec int64
	if hasFraction {
		if !isDigits(usecText) || len(usecText) > 6 {
			return Timeval{}, newError(ErrParse, "invalid microseconds in timeval %q", in)
		}
		usec, _ = strconv.ParseInt(usecText+strings.Repeat("0", 6-len(usecText)), 10, 64)
	}
	if negative {
		return normalizeTimeval(Timeval{Sec: -sec, Usec: -usec}), nil
	}
	return Timeval{Sec: sec, Usec: usec}, nil
}

func parseDate(in string) (uint32, error) {
	s := strings.TrimSpace(in)

	if isDigits(s) {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return 0, newError(ErrParse, "date %q does not fit in 32 bits", in)
		}
		return uint32(n), nil
	}

	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err != nil {
			continue
		}
		sec := t.Unix()
		if sec < 0 || sec > math.MaxUint32 {
			return 0, newError(ErrParse, "date %q does not fit in 32 bits", in)
		}
		return uint32(sec), nil
	}
	return 0, newError(ErrParse, "failed to parse time string %q", in)
}
