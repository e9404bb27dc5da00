package valuebox

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"fmt"
)

// Operator is a comparison operator understood by CompareOp.
type Operator int

const (
	OpEQ Operator = iota
	OpNE
	OpLT
	OpLE
	OpGT
	OpGE
)

var operatorNames = [...]string{
	OpEQ: "==",
	OpNE: "!=",
	OpLT: "<",
	OpLE: "<=",
	OpGT: ">",
	OpGE: ">=",
}

func (op Operator) String() string {
	if op >= 0 && int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// ParseOperator maps an operator token to an Operator. Both "=" and "==" mean equality.
func ParseOperator(s string) (Operator, error) {
	if s == "=" {
		return OpEQ, nil
	}
	for op, name := range operatorNames {
		if name == s {
			return Operator(op), nil
		}
	}
	return OpEQ, newError(ErrParse, "unknown comparison operator %q", s)
}

// Compare orders two values of the same kind and returns -1, 0 or +1.
//
// Byte sequences compare like memcmp over the shorter length, then by length.
// IPv4 addresses compare numerically.
func Compare(a, b *Value) (int, error) {
	if err := checkValid(a, "compare"); err != nil {
		return 0, err
	}
	if err := checkValid(b, "compare"); err != nil {
		return 0, err
	}
	if a.typ != b.typ {
		return 0, newError(ErrTypeMismatch, "cannot compare %s with %s", a.typ, b.typ)
	}

	switch x := a.datum.(type) {
	case bytesDatum:
		return bytes.Compare(x, b.datum.(bytesDatum)), nil
	case boolDatum:
		y := b.datum.(boolDatum)
		switch {
		case x == y:
			return 0, nil
		case !bool(x):
			return -1, nil
		default:
			return 1, nil
		}
	case uintDatum:
		return cmp.Compare(x, b.datum.(uintDatum)), nil
	case signedDatum:
		return cmp.Compare(x, b.datum.(signedDatum)), nil
	case decimalDatum:
		return cmp.Compare(x, b.datum.(decimalDatum)), nil
	case timevalDatum:
		y := b.datum.(timevalDatum)
		if c := cmp.Compare(x.Sec, y.Sec); c != 0 {
			return c, nil
		}
		return cmp.Compare(x.Usec, y.Usec), nil
	case ipv4Datum:
		y := b.datum.(ipv4Datum)
		return cmp.Compare(binary.BigEndian.Uint32(x[:]), binary.BigEndian.Uint32(y[:])), nil
	case ipv4PrefixDatum:
		y := b.datum.(ipv4PrefixDatum)
		return bytes.Compare(x[:], y[:]), nil
	case ipv6Datum:
		y := b.datum.(ipv6Datum)
		return bytes.Compare(x[:], y[:]), nil
	case ipv6PrefixDatum:
		y := b.datum.(ipv6PrefixDatum)
		return bytes.Compare(x[:], y[:]), nil
	case ifidDatum:
		y := b.datum.(ifidDatum)
		return bytes.Compare(x[:], y[:]), nil
	case etherDatum:
		y := b.datum.(etherDatum)
		return bytes.Compare(x[:], y[:]), nil
	}

	return 0, newError(ErrUnsupportedType, "cannot compare values of type %s", a.typ)
}

// CompareOp evaluates "a op b". When a prefix is involved on either side the
// comparison is a subnet test: a < b holds when a is a proper subnet of b.
func CompareOp(op Operator, a, b *Value) (bool, error) {
	if err := checkValid(a, "compare"); err != nil {
		return false, err
	}
	if err := checkValid(b, "compare"); err != nil {
		return false, err
	}
	if op < OpEQ || op > OpGE {
		return false, precondition("compare", "unknown operator %d", int(op))
	}

	aNet, aAddr, aFamily := netOf(a)
	bNet, bAddr, bFamily := netOf(b)
	if aFamily != 0 && bFamily != 0 {
		if aFamily != bFamily {
			return false, newError(ErrIncompatibleAddressFamily, "cannot compare %s with %s", a.typ, b.typ)
		}
		if a.typ != b.typ || a.typ == TypeIPv4Prefix || a.typ == TypeIPv6Prefix {
			return cidrCompareOp(op, aNet, aAddr, bNet, bAddr), nil
		}
	}

	c, err := Compare(a, b)
	if err != nil {
		return false, err
	}

	switch op {
	case OpEQ:
		return c == 0, nil
	case OpNE:
		return c != 0, nil
	case OpLT:
		return c < 0, nil
	case OpLE:
		return c <= 0, nil
	case OpGT:
		return c > 0, nil
	default:
		return c >= 0, nil
	}
}

// netOf returns the prefix length, address bytes and family (4 or 6) of address
// kinds. Other kinds report family 0.
func netOf(v *Value) (int, []byte, int) {
	switch d := v.datum.(type) {
	case ipv4Datum:
		return 32, d[:], 4
	case ipv4PrefixDatum:
		return int(d[1]), d[2:], 4
	case ipv6Datum:
		return 128, d[:], 6
	case ipv6PrefixDatum:
		return int(d[1]), d[2:], 6
	}
	return 0, nil, 0
}

func cidrCompareOp(op Operator, aNet int, a []byte, bNet int, b []byte) bool {
	if aNet == bNet {
		equal := bytes.Equal(a, b)
		switch op {
		case OpEQ, OpLE, OpGE:
			return equal
		case OpNE:
			return !equal
		default:
			return false
		}
	}

	switch op {
	case OpEQ:
		return false
	case OpNE:
		return true
	case OpLT, OpLE:
		// 192/8 < 192.168/16 is false
		if aNet < bNet {
			return false
		}
	case OpGT, OpGE:
		// 192/16 > 192.168/8 is false
		if aNet > bNet {
			return false
		}
	}

	return prefixEqual(a, b, min(aNet, bNet))
}

// prefixEqual reports whether the first bits of a and b match.
func prefixEqual(a, b []byte, bits int) bool {
	i := 0
	for ; bits >= 8; bits -= 8 {
		if a[i] != b[i] {
			return false
		}
		i++
	}
	if bits == 0 {
		return true
	}
	mask := ^byte(1<<(8-bits) - 1)
	return a[i]&mask == b[i]&mask
}
