package valuebox

import (
	"fmt"
	"math"
)

// Type identifies the kind of data held by a Value.
type Type uint8

const (
	TypeInvalid Type = iota

	TypeString
	TypeOctets
	TypeABinary

	TypeIPv4Addr
	TypeIPv4Prefix
	TypeIPv6Addr
	TypeIPv6Prefix
	TypeIfID
	TypeComboIPAddr
	TypeComboIPPrefix
	TypeEthernet

	TypeBool
	TypeByte
	TypeShort
	TypeInteger
	TypeInteger64
	TypeSize
	TypeSigned
	TypeTimeval
	TypeDecimal
	TypeDate

	// Structural kinds group other attributes and never carry a value.
	TypeTLV
	TypeStruct
	TypeExtended
	TypeLongExtended
	TypeEVS
	TypeVSA
	TypeVendor

	TypeBad
)

const (
	// MaxLength is the upper bound used for variable length kinds.
	MaxLength = math.MaxUint16

	// IPv4PrefixSize is reserved byte + prefix length + 4 address bytes.
	IPv4PrefixSize = 6
	// IPv6PrefixSize is reserved byte + prefix length + 16 address bytes.
	IPv6PrefixSize = 18

	abinaryFilterSize = 32
)

// TypeInfo describes the layout of a data-bearing kind.
type TypeInfo struct {
	Name string
	// FixedSize is the size of the datum in network byte order, 0 for variable length kinds.
	FixedSize int
	MinLength int
	MaxLength int
	// Enumerable is set for kinds which may print and parse named aliases.
	Enumerable bool
}

// IsFixed reports whether the kind has a fixed size.
func (ti TypeInfo) IsFixed() bool {
	return ti.FixedSize > 0
}

var typeInfos = [...]TypeInfo{
	TypeString:  {Name: "string", MinLength: 0, MaxLength: MaxLength},
	TypeOctets:  {Name: "octets", MinLength: 0, MaxLength: MaxLength},
	TypeABinary: {Name: "abinary", MinLength: abinaryFilterSize, MaxLength: MaxLength},

	TypeIPv4Addr:      {Name: "ipaddr", FixedSize: 4, MinLength: 4, MaxLength: 4},
	TypeIPv4Prefix:    {Name: "ipv4prefix", FixedSize: IPv4PrefixSize, MinLength: IPv4PrefixSize, MaxLength: IPv4PrefixSize},
	TypeIPv6Addr:      {Name: "ipv6addr", FixedSize: 16, MinLength: 16, MaxLength: 16},
	TypeIPv6Prefix:    {Name: "ipv6prefix", FixedSize: IPv6PrefixSize, MinLength: 2, MaxLength: IPv6PrefixSize},
	TypeIfID:          {Name: "ifid", FixedSize: 8, MinLength: 8, MaxLength: 8},
	TypeComboIPAddr:   {Name: "combo-ip", FixedSize: 16, MinLength: 4, MaxLength: 16},
	TypeComboIPPrefix: {Name: "combo-prefix", FixedSize: IPv6PrefixSize, MinLength: IPv4PrefixSize, MaxLength: IPv6PrefixSize},
	TypeEthernet:      {Name: "ether", FixedSize: 6, MinLength: 6, MaxLength: 6},

	TypeBool:      {Name: "bool", FixedSize: 1, MinLength: 1, MaxLength: 1},
	TypeByte:      {Name: "byte", FixedSize: 1, MinLength: 1, MaxLength: 1, Enumerable: true},
	TypeShort:     {Name: "short", FixedSize: 2, MinLength: 2, MaxLength: 2, Enumerable: true},
	TypeInteger:   {Name: "integer", FixedSize: 4, MinLength: 4, MaxLength: 4, Enumerable: true},
	TypeInteger64: {Name: "integer64", FixedSize: 8, MinLength: 8, MaxLength: 8, Enumerable: true},
	TypeSize:      {Name: "size", FixedSize: 8, MinLength: 8, MaxLength: 8, Enumerable: true},
	TypeSigned:    {Name: "signed", FixedSize: 4, MinLength: 4, MaxLength: 4, Enumerable: true},
	TypeTimeval:   {Name: "timeval", FixedSize: 16, MinLength: 16, MaxLength: 16},
	TypeDecimal:   {Name: "decimal", FixedSize: 8, MinLength: 8, MaxLength: 8},
	TypeDate:      {Name: "date", FixedSize: 4, MinLength: 4, MaxLength: 4},
}

var structuralNames = map[Type]string{
	TypeTLV:          "tlv",
	TypeStruct:       "struct",
	TypeExtended:     "extended",
	TypeLongExtended: "long-extended",
	TypeEVS:          "evs",
	TypeVSA:          "vsa",
	TypeVendor:       "vendor",
}

var typesByName = func() map[string]Type {
	m := make(map[string]Type, len(typeInfos)+len(structuralNames))
	for t := TypeString; t <= TypeDate; t++ {
		m[typeInfos[t].Name] = t
	}
	for t, name := range structuralNames {
		m[name] = t
	}
	// Aliases used by dictionaries in the wild.
	m["ipv4addr"] = TypeIPv4Addr
	m["ethernet"] = TypeEthernet
	m["boolean"] = TypeBool
	m["uint8"] = TypeByte
	m["uint16"] = TypeShort
	m["uint32"] = TypeInteger
	m["uint64"] = TypeInteger64
	m["int32"] = TypeSigned
	return m
}()

// Info returns the registry entry for a data-bearing kind.
func Info(t Type) (TypeInfo, error) {
	if !t.IsData() {
		return TypeInfo{}, newError(ErrInvalidType, "%s is not a data type", t)
	}
	return typeInfos[t], nil
}

// IsData reports whether values of this kind can exist.
func (t Type) IsData() bool {
	return t >= TypeString && t <= TypeDate
}

// IsStructural reports whether t is one of the grouping kinds.
func (t Type) IsStructural() bool {
	return t >= TypeTLV && t <= TypeVendor
}

// IsFixed reports whether t is a data kind with a fixed size.
func (t Type) IsFixed() bool {
	return t.IsData() && typeInfos[t].FixedSize > 0
}

// IsEnumerable reports whether values of kind t may carry an enumeration table.
func (t Type) IsEnumerable() bool {
	return t.IsData() && typeInfos[t].Enumerable
}

// IsCombo reports whether t is one of the polymorphic address kinds.
func (t Type) IsCombo() bool {
	return t == TypeComboIPAddr || t == TypeComboIPPrefix
}

func (t Type) isBytes() bool {
	return t == TypeString || t == TypeOctets || t == TypeABinary
}

func (t Type) String() string {
	if t.IsData() {
		return typeInfos[t].Name
	}
	if name, ok := structuralNames[t]; ok {
		return name
	}
	switch t {
	case TypeInvalid:
		return "invalid"
	case TypeBad:
		return "bad"
	default:
		return fmt.Sprintf("Type-%d", uint8(t))
	}
}

// ParseType looks up a kind by its dictionary name.
func ParseType(name string) (Type, error) {
	if t, ok := typesByName[name]; ok {
		return t, nil
	}
	return TypeInvalid, newError(ErrInvalidType, "unknown data type %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) (err error) {
	*t, err = ParseType(string(text))
	return
}
