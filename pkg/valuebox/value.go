// Package valuebox implements the typed value container used for RADIUS attribute
// values: parsing from text, casting between kinds, comparison, network byte order
// serialization and printing.
package valuebox

import (
	"bytes"
	"net"
	"net/netip"
	"time"
)

// EnumTable maps integer values of an attribute to symbolic names. Tables are owned
// by the dictionary; a Value only keeps a reference for printing and parsing.
type EnumTable interface {
	// Name is the name of the attribute owning the table, used in error messages.
	Name() string
	EnumByName(name string) (uint32, bool)
	EnumByValue(value uint32) (string, bool)
}

// Timeval is a {seconds, microseconds} pair.
type Timeval struct {
	Sec  int64
	Usec int64
}

// Time converts the pair to a time.Time.
func (tv Timeval) Time() time.Time {
	return time.Unix(tv.Sec, tv.Usec*int64(time.Microsecond))
}

// datum is the payload of a Value. Each kind maps to exactly one implementation.
type datum interface {
	isDatum()
}

type (
	bytesDatum      []byte
	boolDatum       bool
	uintDatum       uint64 // byte, short, integer, integer64, size, date
	signedDatum     int32
	decimalDatum    float64
	timevalDatum    Timeval
	ipv4Datum       [4]byte
	ipv4PrefixDatum [IPv4PrefixSize]byte
	ipv6Datum       [16]byte
	ipv6PrefixDatum [IPv6PrefixSize]byte
	ifidDatum       [8]byte
	etherDatum      [6]byte
)

func (bytesDatum) isDatum()      {}
func (boolDatum) isDatum()       {}
func (uintDatum) isDatum()       {}
func (signedDatum) isDatum()     {}
func (decimalDatum) isDatum()    {}
func (timevalDatum) isDatum()    {}
func (ipv4Datum) isDatum()       {}
func (ipv4PrefixDatum) isDatum() {}
func (ipv6Datum) isDatum()       {}
func (ipv6PrefixDatum) isDatum() {}
func (ifidDatum) isDatum()       {}
func (etherDatum) isDatum()      {}

// Value is a typed attribute value. The zero Value is invalid; values are created by
// the constructors, Parse, Cast, FromNetwork or Steal.
//
// A Value must not be mutated concurrently.
type Value struct {
	typ     Type
	tainted bool
	enum    EnumTable
	datum   datum
}

func newValue(t Type, d datum, enum EnumTable) *Value {
	v := &Value{datum: d}
	if t.IsEnumerable() {
		v.enum = enum
	}
	v.typ = t
	return v
}

// NewString returns a string value.
func NewString(s string) *Value {
	return newValue(TypeString, bytesDatum(s), nil)
}

// NewOctets returns an octets value holding a copy of b.
func NewOctets(b []byte) *Value {
	return newValue(TypeOctets, bytesDatum(bytes.Clone(nonNil(b))), nil)
}

// NewABinary returns an Ascend binary filter value holding a copy of b.
func NewABinary(b []byte) *Value {
	return newValue(TypeABinary, bytesDatum(bytes.Clone(nonNil(b))), nil)
}

// NewBool returns a boolean value.
func NewBool(b bool) *Value {
	return newValue(TypeBool, boolDatum(b), nil)
}

// NewByte returns an 8 bit unsigned value.
func NewByte(i uint8, enum EnumTable) *Value {
	return newValue(TypeByte, uintDatum(i), enum)
}

// NewShort returns a 16 bit unsigned value.
func NewShort(i uint16, enum EnumTable) *Value {
	return newValue(TypeShort, uintDatum(i), enum)
}

// NewInteger returns a 32 bit unsigned value.
func NewInteger(i uint32, enum EnumTable) *Value {
	return newValue(TypeInteger, uintDatum(i), enum)
}

// NewInteger64 returns a 64 bit unsigned value.
func NewInteger64(i uint64, enum EnumTable) *Value {
	return newValue(TypeInteger64, uintDatum(i), enum)
}

// NewSize returns a size value.
func NewSize(i uint64) *Value {
	return newValue(TypeSize, uintDatum(i), nil)
}

// NewSigned returns a 32 bit signed value.
func NewSigned(i int32, enum EnumTable) *Value {
	return newValue(TypeSigned, signedDatum(i), enum)
}

// NewDecimal returns a 64 bit floating point value.
func NewDecimal(f float64) *Value {
	return newValue(TypeDecimal, decimalDatum(f), nil)
}

// NewTimeval returns a {seconds, microseconds} value.
func NewTimeval(tv Timeval) *Value {
	return newValue(TypeTimeval, timevalDatum(normalizeTimeval(tv)), nil)
}

// NewDate returns a date value holding seconds since the epoch.
func NewDate(sec uint32) *Value {
	return newValue(TypeDate, uintDatum(sec), nil)
}

// NewIPv4Addr returns an IPv4 address value.
func NewIPv4Addr(addr [4]byte) *Value {
	return newValue(TypeIPv4Addr, ipv4Datum(addr), nil)
}

// NewIPv6Addr returns an IPv6 address value.
func NewIPv6Addr(addr [16]byte) *Value {
	return newValue(TypeIPv6Addr, ipv6Datum(addr), nil)
}

// NewIPv4Prefix returns an IPv4 prefix value. Host bits beyond bits are cleared.
func NewIPv4Prefix(addr [4]byte, bits uint8) (*Value, error) {
	if bits > 32 {
		return nil, newError(ErrInvalidPrefixLength, "IPv4 prefix length %d exceeds 32", bits)
	}
	var d ipv4PrefixDatum
	d[1] = bits
	copy(d[2:], addr[:])
	maskBits(d[2:], int(bits))
	return newValue(TypeIPv4Prefix, d, nil), nil
}

// NewIPv6Prefix returns an IPv6 prefix value. Host bits beyond bits are cleared.
func NewIPv6Prefix(addr [16]byte, bits uint8) (*Value, error) {
	if bits > 128 {
		return nil, newError(ErrInvalidPrefixLength, "IPv6 prefix length %d exceeds 128", bits)
	}
	var d ipv6PrefixDatum
	d[1] = bits
	copy(d[2:], addr[:])
	maskBits(d[2:], int(bits))
	return newValue(TypeIPv6Prefix, d, nil), nil
}

// NewPrefix returns an IPv4 or IPv6 prefix value depending on the family of p.
func NewPrefix(p netip.Prefix) (*Value, error) {
	if !p.IsValid() {
		return nil, newError(ErrInvalidPrefixLength, "invalid prefix %s", p)
	}
	if p.Addr().Is4() {
		return NewIPv4Prefix(p.Addr().As4(), uint8(p.Bits()))
	}
	return NewIPv6Prefix(p.Addr().As16(), uint8(p.Bits()))
}

// NewAddr returns an IPv4 or IPv6 address value depending on the family of a.
func NewAddr(a netip.Addr) (*Value, error) {
	switch {
	case a.Is4():
		return NewIPv4Addr(a.As4()), nil
	case a.Is6() && a.Zone() == "":
		return NewIPv6Addr(a.As16()), nil
	default:
		return nil, newError(ErrParse, "invalid address %s", a)
	}
}

// NewIfID returns an interface-id value.
func NewIfID(id [8]byte) *Value {
	return newValue(TypeIfID, ifidDatum(id), nil)
}

// NewEthernet returns an Ethernet address value.
func NewEthernet(mac [6]byte) *Value {
	return newValue(TypeEthernet, etherDatum(mac), nil)
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

// Type returns the kind of the value, TypeInvalid after Clear.
func (v *Value) Type() Type {
	return v.typ
}

// IsValid reports whether v holds data.
func (v *Value) IsValid() bool {
	return v != nil && v.typ != TypeInvalid
}

// Length returns the length of the value in bytes. Fixed kinds report their fixed size.
func (v *Value) Length() int {
	if !v.IsValid() {
		return 0
	}
	if b, ok := v.datum.(bytesDatum); ok {
		return len(b)
	}
	return typeInfos[v.typ].FixedSize
}

// Tainted reports whether the value was derived from untrusted input.
func (v *Value) Tainted() bool {
	return v.tainted
}

// SetTainted sets or clears the provenance flag.
func (v *Value) SetTainted(tainted bool) {
	v.tainted = tainted
}

// Enum returns the enumeration table attached to the value, if any.
func (v *Value) Enum() EnumTable {
	return v.enum
}

// SetEnum attaches an enumeration table. It is ignored for kinds without aliases.
func (v *Value) SetEnum(enum EnumTable) {
	if v.typ.IsEnumerable() {
		v.enum = enum
		return
	}
	v.enum = nil
}

// Copy returns a deep copy of v.
func (v *Value) Copy() (*Value, error) {
	if err := checkValid(v, "copy"); err != nil {
		return nil, err
	}
	out := &Value{
		tainted: v.tainted,
		enum:    v.enum,
		datum:   v.datum,
	}
	if b, ok := v.datum.(bytesDatum); ok {
		out.datum = bytesDatum(bytes.Clone(nonNil(b)))
	}
	out.typ = v.typ
	return out, nil
}

// Steal moves the contents of src into v, releasing whatever v held. src is left
// invalid; its buffer now belongs to v.
func (v *Value) Steal(src *Value) error {
	if err := checkValid(src, "steal"); err != nil {
		return err
	}
	if v == src {
		return nil
	}
	v.Clear()
	v.tainted = src.tainted
	v.enum = src.enum
	v.datum = src.datum
	v.typ = src.typ

	src.datum = nil
	src.enum = nil
	src.tainted = false
	src.typ = TypeInvalid
	return nil
}

// Clear releases the datum and marks the value invalid. Clearing an invalid value is
// a no-op.
func (v *Value) Clear() {
	if v.typ == TypeInvalid {
		return
	}
	v.datum = nil
	v.enum = nil
	v.tainted = false
	v.typ = TypeInvalid
}

// Bytes returns the buffer of a string, octets or abinary value. The returned slice
// is owned by v and must not be modified.
func (v *Value) Bytes() []byte {
	if b, ok := v.datum.(bytesDatum); ok {
		return b
	}
	return nil
}

// Bool returns the datum of a bool value.
func (v *Value) Bool() bool {
	b, _ := v.datum.(boolDatum)
	return bool(b)
}

// Uint64 returns the datum of an unsigned integer kind (byte, short, integer,
// integer64, size, date).
func (v *Value) Uint64() uint64 {
	i, _ := v.datum.(uintDatum)
	return uint64(i)
}

// Int32 returns the datum of a signed value.
func (v *Value) Int32() int32 {
	i, _ := v.datum.(signedDatum)
	return int32(i)
}

// Decimal returns the datum of a decimal value.
func (v *Value) Decimal() float64 {
	f, _ := v.datum.(decimalDatum)
	return float64(f)
}

// Timeval returns the datum of a timeval value.
func (v *Value) Timeval() Timeval {
	tv, _ := v.datum.(timevalDatum)
	return Timeval(tv)
}

// Date returns the datum of a date value as a time.Time.
func (v *Value) Date() time.Time {
	if v.typ != TypeDate {
		return time.Time{}
	}
	return time.Unix(int64(v.Uint64()), 0)
}

// Addr returns the address of an address or prefix value.
func (v *Value) Addr() netip.Addr {
	switch d := v.datum.(type) {
	case ipv4Datum:
		return netip.AddrFrom4(d)
	case ipv6Datum:
		return netip.AddrFrom16(d)
	case ipv4PrefixDatum:
		return netip.AddrFrom4([4]byte(d[2:]))
	case ipv6PrefixDatum:
		return netip.AddrFrom16([16]byte(d[2:]))
	default:
		return netip.Addr{}
	}
}

// Prefix returns the prefix of a prefix value. Address kinds report a full length prefix.
func (v *Value) Prefix() netip.Prefix {
	switch d := v.datum.(type) {
	case ipv4Datum:
		return netip.PrefixFrom(v.Addr(), 32)
	case ipv6Datum:
		return netip.PrefixFrom(v.Addr(), 128)
	case ipv4PrefixDatum:
		return netip.PrefixFrom(v.Addr(), int(d[1]))
	case ipv6PrefixDatum:
		return netip.PrefixFrom(v.Addr(), int(d[1]))
	default:
		return netip.Prefix{}
	}
}

// IfID returns the datum of an interface-id value.
func (v *Value) IfID() [8]byte {
	id, _ := v.datum.(ifidDatum)
	return id
}

// HardwareAddr returns the datum of an Ethernet value.
func (v *Value) HardwareAddr() net.HardwareAddr {
	mac, ok := v.datum.(etherDatum)
	if !ok {
		return nil
	}
	return net.HardwareAddr(mac[:])
}

const usecPerSec = 1000000

// normalizeTimeval brings Usec into [0, usecPerSec), borrowing from Sec.
func normalizeTimeval(tv Timeval) Timeval {
	tv.Sec += tv.Usec / usecPerSec
	tv.Usec %= usecPerSec
	if tv.Usec < 0 {
		tv.Usec += usecPerSec
		tv.Sec--
	}
	return tv
}

// maskBits clears all bits of addr after the first bits.
func maskBits(addr []byte, bits int) {
	for i := range addr {
		switch {
		case bits >= 8:
			bits -= 8
		case bits > 0:
			addr[i] &= ^byte(0xff >> uint(bits))
			bits = 0
		default:
			addr[i] = 0
		}
	}
}
