// Package jsonvalue maps values to and from JSON scalars.
package jsonvalue

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/ansel1/merry"
	"github.com/goccy/go-json"

	"github.com/vitalvas/radvalue/pkg/valuebox"
)

// FromJSON converts a decoded JSON scalar into a value. in is what a JSON decoder
// produces: nil, bool, string, json.Number, float64, []any or map[string]any.
// Go integer kinds are accepted as well.
//
// The natural kind of the scalar is cast to dst afterwards; pass
// valuebox.TypeInvalid to keep the natural kind.
func FromJSON(in any, dst valuebox.Type, enum valuebox.EnumTable) (*valuebox.Value, error) {
	v, err := natural(in)
	if err != nil {
		return nil, err
	}

	if dst == valuebox.TypeInvalid || dst == v.Type() {
		v.SetEnum(enum)
		return v, nil
	}

	return valuebox.Cast(dst, enum, v)
}

// Decode parses a single JSON document and converts it with FromJSON. Numbers keep
// their literal form, null, arrays and objects keep their compacted text.
func Decode(data []byte, dst valuebox.Type, enum valuebox.EnumTable) (*valuebox.Value, error) {
	var in any
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, merry.Here(valuebox.ErrParse).WithCause(err).Append("invalid JSON")
	}

	raw := bytes.TrimSpace(data)
	switch in.(type) {
	case float64:
		in = json.Number(raw)
	case nil, []any, map[string]any:
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, merry.Here(valuebox.ErrParse).WithCause(err).Append("invalid JSON")
		}
		in = buf.String()
	}

	return FromJSON(in, dst, enum)
}

func natural(in any) (*valuebox.Value, error) {
	switch x := in.(type) {
	case string:
		return valuebox.NewString(x), nil
	case bool:
		return valuebox.NewBool(x), nil
	case float64:
		return valuebox.NewDecimal(x), nil
	case float32:
		return valuebox.NewDecimal(float64(x)), nil
	case json.Number:
		return fromNumber(x)
	case int:
		return fromInt(int64(x))
	case int8:
		return fromInt(int64(x))
	case int16:
		return fromInt(int64(x))
	case int32:
		return fromInt(int64(x))
	case int64:
		return fromInt(x)
	case uint:
		return fromUint(uint64(x)), nil
	case uint8:
		return fromUint(uint64(x)), nil
	case uint16:
		return fromUint(uint64(x)), nil
	case uint32:
		return fromUint(uint64(x)), nil
	case uint64:
		return fromUint(x), nil
	}

	// null, arrays and objects are kept as their JSON text
	text, err := json.Marshal(in)
	if err != nil {
		return nil, merry.Here(valuebox.ErrUnsupportedType).WithCause(err).Appendf("cannot represent %T as JSON", in)
	}
	return valuebox.NewString(string(text)), nil
}

func fromNumber(n json.Number) (*valuebox.Value, error) {
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		f, err := n.Float64()
		if err != nil {
			return nil, merry.Here(valuebox.ErrParse).WithCause(err).Appendf("invalid JSON number %s", s)
		}
		return valuebox.NewDecimal(f), nil
	}

	if strings.HasPrefix(s, "-") {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, merry.Here(valuebox.ErrIntegerOverflow).Appendf("JSON number %s is below the signed 32 bit range", s)
		}
		return fromInt(i)
	}

	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, merry.Here(valuebox.ErrIntegerOverflow).Appendf("JSON number %s does not fit 64 bits", s)
	}
	return fromUint(u), nil
}

func fromInt(i int64) (*valuebox.Value, error) {
	if i >= 0 {
		return fromUint(uint64(i)), nil
	}
	if i < math.MinInt32 {
		return nil, merry.Here(valuebox.ErrIntegerOverflow).Appendf("JSON number %d is below the signed 32 bit range", i)
	}
	return valuebox.NewSigned(int32(i), nil), nil
}

// fromUint picks the smallest unsigned kind holding u.
func fromUint(u uint64) *valuebox.Value {
	switch {
	case u <= math.MaxUint8:
		return valuebox.NewByte(uint8(u), nil)
	case u <= math.MaxUint16:
		return valuebox.NewShort(uint16(u), nil)
	case u <= math.MaxUint32:
		return valuebox.NewInteger(uint32(u), nil)
	default:
		return valuebox.NewInteger64(u, nil)
	}
}

// ToJSON converts v to a JSON scalar. Integer kinds become numbers, except 64 bit
// values above the signed 64 bit range which become strings. Booleans stay
// booleans and everything else is its unquoted display text.
func ToJSON(v *valuebox.Value) (any, error) {
	if v == nil || !v.IsValid() {
		return nil, merry.Here(valuebox.ErrInvalidType).Append("cannot convert an invalid value to JSON")
	}

	switch v.Type() {
	case valuebox.TypeBool:
		return v.Bool(), nil
	case valuebox.TypeByte, valuebox.TypeShort, valuebox.TypeInteger:
		return v.Uint64(), nil
	case valuebox.TypeInteger64, valuebox.TypeSize:
		u := v.Uint64()
		if u > math.MaxInt64 {
			return strconv.FormatUint(u, 10), nil
		}
		return u, nil
	case valuebox.TypeSigned:
		return int64(v.Int32()), nil
	}

	return valuebox.Print(v, valuebox.QuoteNone)
}

// Marshal returns the JSON encoding of v's scalar.
func Marshal(v *valuebox.Value) ([]byte, error) {
	scalar, err := ToJSON(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(scalar)
}
