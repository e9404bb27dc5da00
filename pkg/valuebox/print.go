package valuebox

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"
)

// Print renders v as text. Strings are wrapped in quote and escaped for it unless
// quote is QuoteNone; dates are wrapped in quote too. Values with an enumeration
// table print their alias when one exists.
func Print(v *Value, quote Quote) (string, error) {
	if err := checkValid(v, "print"); err != nil {
		return "", err
	}

	if name, ok := enumAlias(v); ok {
		return name, nil
	}

	switch d := v.datum.(type) {
	case bytesDatum:
		if v.typ != TypeString {
			return "0x" + hex.EncodeToString(d), nil
		}
		if quote == QuoteNone {
			return string(d), nil
		}
		return string(quote) + string(Escape(d, quote)) + string(quote), nil

	case boolDatum:
		if d {
			return "yes", nil
		}
		return "no", nil

	case uintDatum:
		if v.typ == TypeDate {
			s := time.Unix(int64(d), 0).In(time.Local).Format(DateLayout)
			if quote != QuoteNone {
				s = string(quote) + s + string(quote)
			}
			return s, nil
		}
		return strconv.FormatUint(uint64(d), 10), nil

	case signedDatum:
		return strconv.FormatInt(int64(d), 10), nil

	case decimalDatum:
		return strconv.FormatFloat(float64(d), 'g', -1, 64), nil

	case timevalDatum:
		if d.Sec < 0 && d.Usec > 0 {
			return fmt.Sprintf("-%d.%06d", -(d.Sec + 1), usecPerSec-d.Usec), nil
		}
		return fmt.Sprintf("%d.%06d", d.Sec, d.Usec), nil

	case ipv4Datum, ipv6Datum:
		return v.Addr().String(), nil

	case ipv4PrefixDatum, ipv6PrefixDatum:
		p := v.Prefix()
		return p.Addr().String() + "/" + strconv.Itoa(p.Bits()), nil

	case ifidDatum:
		return fmt.Sprintf("%x:%x:%x:%x",
			binary.BigEndian.Uint16(d[0:]), binary.BigEndian.Uint16(d[2:]),
			binary.BigEndian.Uint16(d[4:]), binary.BigEndian.Uint16(d[6:])), nil

	case etherDatum:
		return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", d[0], d[1], d[2], d[3], d[4], d[5]), nil
	}

	return "", newError(ErrUnsupportedType, "cannot print values of type %s", v.typ)
}

// String implements fmt.Stringer. Invalid values print as an empty string.
func (v *Value) String() string {
	if !v.IsValid() {
		return ""
	}
	s, err := Print(v, QuoteNone)
	if err != nil {
		return ""
	}
	return s
}

// EnumName returns the enumeration name of v's integer value, if its table has one.
func (v *Value) EnumName() (string, bool) {
	return enumAlias(v)
}

func enumAlias(v *Value) (string, bool) {
	if v.enum == nil || !v.typ.IsEnumerable() {
		return "", false
	}
	i, err := Cast(TypeInteger, nil, v)
	if err != nil {
		return "", false
	}
	return v.enum.EnumByValue(uint32(i.Uint64()))
}

// Snprint writes the rendering of v into out, always NUL terminated when out is not
// empty. written excludes the terminator; required is the length of the full
// rendering, so required >= len(out) means the output was truncated.
//
// Truncated quoted strings keep their closing quote and never split an escape
// sequence. Truncated hex output contains whole bytes only.
func Snprint(out []byte, v *Value, quote Quote) (written, required int, err error) {
	full, err := Print(v, quote)
	if err != nil {
		if len(out) > 0 {
			out[0] = 0
		}
		return 0, 0, err
	}

	required = len(full)
	if len(out) == 0 {
		return 0, required, nil
	}
	if required < len(out) {
		copy(out, full)
		out[required] = 0
		return required, required, nil
	}

	// truncated
	avail := len(out) - 1
	_, isAlias := enumAlias(v)
	switch {
	case isAlias:
		written = copy(out, full[:avail])

	case v.typ == TypeString && quote != QuoteNone:
		written = snprintQuoted(out, v.Bytes(), quote)

	case v.typ == TypeOctets || v.typ == TypeABinary:
		n := avail
		if n > 2 && (n-2)%2 != 0 {
			n--
		}
		written = copy(out, full[:n])

	default:
		written = copy(out, full[:avail])
	}
	out[written] = 0
	return written, required, nil
}

// snprintQuoted fits as many escaped units of in as possible between the quotes.
func snprintQuoted(out, in []byte, quote Quote) int {
	if len(out) < 3 {
		return 0
	}

	// opening quote, closing quote and terminator
	limit := len(out) - 2
	n := copy(out, []byte{byte(quote)})
	for i := 0; i < len(in); {
		size := 1
		if in[i] >= utf8.RuneSelf {
			if r, s := utf8.DecodeRune(in[i:]); r != utf8.RuneError || s > 1 {
				size = s
			}
		}
		unit := Escape(in[i:i+size], quote)
		if n+len(unit) > limit {
			break
		}
		n += copy(out[n:], unit)
		i += size
	}
	out[n] = byte(quote)
	return n + 1
}
