package packet

import (
	"fmt"

	"github.com/ansel1/merry"

	"github.com/vitalvas/radvalue/pkg/dictionary"
	"github.com/vitalvas/radvalue/pkg/valuebox"
)

// Pair is a typed attribute value together with its definition
type Pair struct {
	Attr *dictionary.AttributeDefinition
	// VendorID is 0 for standard attributes
	VendorID uint32
	Value    *valuebox.Value
}

// NewPair binds value to the named attribute, casting it to the attribute type if needed.
func NewPair(dict *dictionary.Dictionary, name string, value *valuebox.Value) (*Pair, error) {
	attr, err := dict.LookupByName(name)
	if err != nil {
		return nil, err
	}

	if value.Type() != attr.DataType {
		cast, err := valuebox.Cast(attr.DataType, attr.Enum(), value)
		if err != nil {
			return nil, merry.Prependf(err, "attribute %s", attr.Name)
		}
		value = cast
	} else {
		value.SetEnum(attr.Enum())
	}

	return &Pair{
		Attr:     attr,
		VendorID: dict.VendorID(attr),
		Value:    value,
	}, nil
}

// ParsePair parses text as a value of the named attribute.
func ParsePair(dict *dictionary.Dictionary, name, text string, quote valuebox.Quote) (*Pair, error) {
	attr, err := dict.LookupByName(name)
	if err != nil {
		return nil, err
	}

	value, err := valuebox.Parse(text, attr.DataType, attr.Enum(), quote)
	if err != nil {
		return nil, merry.Prependf(err, "attribute %s", attr.Name)
	}

	return &Pair{
		Attr:     attr,
		VendorID: dict.VendorID(attr),
		Value:    value,
	}, nil
}

// String formats the pair as "Name = value" with strings double quoted.
func (p *Pair) String() string {
	text, err := valuebox.Print(p.Value, valuebox.QuoteDouble)
	if err != nil {
		return p.Attr.Name + " = <invalid>"
	}
	return p.Attr.Name + " = " + text
}

// Encode converts the pair to a wire attribute, wrapping vendor attributes in Vendor-Specific.
func (p *Pair) Encode() (*Attribute, error) {
	if p.Attr.ID > 255 {
		return nil, merry.Here(ErrMalformedAttribute).Appendf("attribute %s: id %d does not fit one byte", p.Attr.Name, p.Attr.ID)
	}

	data, err := valuebox.ToNetwork(p.Value)
	if err != nil {
		return nil, merry.Prependf(err, "attribute %s", p.Attr.Name)
	}

	if p.VendorID != 0 {
		return NewVendorAttribute(p.VendorID, uint8(p.Attr.ID), data).ToVSA()
	}

	return NewAttribute(uint8(p.Attr.ID), data)
}

// DecodePair converts a wire attribute to a pair. Values received from the
// network are marked tainted. Unknown attributes and values which do not decode
// as their dictionary type become raw octets named Attr-N (Attr-26.V.N for vendors).
func DecodePair(dict *dictionary.Dictionary, attr *Attribute) (*Pair, error) {
	data := attr.Value
	raw := &dictionary.AttributeDefinition{
		ID:       uint32(attr.Type),
		Name:     fmt.Sprintf("Attr-%d", attr.Type),
		DataType: valuebox.TypeOctets,
	}

	var (
		def      *dictionary.AttributeDefinition
		vendorID uint32
		found    bool
	)

	if attr.Type == AttrVendorSpecific {
		vsa, err := ParseVSA(attr)
		if err != nil {
			return nil, err
		}

		data = vsa.Value
		vendorID = vsa.VendorID
		raw.ID = uint32(vsa.VendorType)
		raw.Name = fmt.Sprintf("Attr-%d.%d.%d", AttrVendorSpecific, vsa.VendorID, vsa.VendorType)

		def, found = dict.LookupVendorAttributeByID(vsa.VendorID, uint32(vsa.VendorType))
	} else {
		def, found = dict.LookupStandardByID(uint32(attr.Type))
	}

	if found {
		if value, err := valuebox.FromNetwork(def.DataType, data, def.Enum()); err == nil {
			value.SetTainted(true)
			return &Pair{Attr: def, VendorID: vendorID, Value: value}, nil
		}
	}

	value, err := valuebox.FromNetwork(valuebox.TypeOctets, data, nil)
	if err != nil {
		return nil, err
	}
	value.SetTainted(true)

	return &Pair{Attr: raw, VendorID: vendorID, Value: value}, nil
}

// EncodePairs serializes pairs as back to back attributes
func EncodePairs(pairs []*Pair) ([]byte, error) {
	attrs := make([]*Attribute, 0, len(pairs))
	for _, pair := range pairs {
		attr, err := pair.Encode()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}

	return EncodeAttributes(attrs), nil
}

// DecodePairs parses back to back attributes into pairs
func DecodePairs(dict *dictionary.Dictionary, data []byte) ([]*Pair, error) {
	attrs, err := DecodeAttributes(data)
	if err != nil {
		return nil, err
	}

	pairs := make([]*Pair, 0, len(attrs))
	for _, attr := range attrs {
		pair, err := DecodePair(dict, attr)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}

	return pairs, nil
}
