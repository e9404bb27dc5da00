package packet

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ansel1/merry"
)

var (
	ErrMalformedAttribute = errors.New("malformed attribute")
	ErrValueTooLong       = errors.New("attribute value too long")
	ErrNotVendorSpecific  = errors.New("not a vendor-specific attribute")
	ErrUnknownAttribute   = errors.New("unknown attribute")
)

// Attribute represents a RADIUS attribute
type Attribute struct {
	Type   uint8
	Length uint8
	Value  []byte
}

// VendorAttribute represents a vendor-specific attribute (VSA)
type VendorAttribute struct {
	VendorID   uint32
	VendorType uint8
	Value      []byte
}

// NewAttribute creates a new RADIUS attribute
func NewAttribute(attrType uint8, value []byte) (*Attribute, error) {
	if len(value) > MaxAttributeValueLength {
		return nil, merry.Here(ErrValueTooLong).Appendf("attribute %d: %d bytes, at most %d fit", attrType, len(value), MaxAttributeValueLength)
	}

	return &Attribute{
		Type:   attrType,
		Length: uint8(len(value) + AttributeHeaderLength),
		Value:  value,
	}, nil
}

// NewVendorAttribute creates a new vendor-specific attribute
func NewVendorAttribute(vendorID uint32, vendorType uint8, value []byte) *VendorAttribute {
	return &VendorAttribute{
		VendorID:   vendorID,
		VendorType: vendorType,
		Value:      value,
	}
}

// String returns a string representation of the attribute
func (a *Attribute) String() string {
	return fmt.Sprintf("Type=%d, Length=%d, Value=%x", a.Type, a.Length, a.Value)
}

// String returns a string representation of the vendor attribute
func (va *VendorAttribute) String() string {
	return fmt.Sprintf("VendorID=%d, Type=%d, Value=%x", va.VendorID, va.VendorType, va.Value)
}

// ToVSA converts a VendorAttribute to a standard Attribute (Type 26 - Vendor-Specific)
func (va *VendorAttribute) ToVSA() (*Attribute, error) {
	// Vendor-Id(4) + Vendor-Type(1) + Vendor-Length(1) + Vendor-Data
	vsaValue := make([]byte, VendorSpecificHeaderLength+len(va.Value))
	binary.BigEndian.PutUint32(vsaValue, va.VendorID)
	vsaValue[4] = va.VendorType
	vsaValue[5] = uint8(len(va.Value) + 2)
	copy(vsaValue[VendorSpecificHeaderLength:], va.Value)

	return NewAttribute(AttrVendorSpecific, vsaValue)
}

// ParseVSA parses a Vendor-Specific Attribute (Type 26) into VendorAttribute
func ParseVSA(attr *Attribute) (*VendorAttribute, error) {
	if attr.Type != AttrVendorSpecific {
		return nil, merry.Here(ErrNotVendorSpecific).Appendf("attribute type %d", attr.Type)
	}

	if len(attr.Value) < VendorSpecificHeaderLength {
		return nil, merry.Here(ErrMalformedAttribute).Appendf("invalid VSA length: %d", len(attr.Value))
	}

	vendorLength := attr.Value[5]
	if int(vendorLength) != len(attr.Value)-4 {
		return nil, merry.Here(ErrMalformedAttribute).Appendf("invalid vendor length: %d, expected %d", vendorLength, len(attr.Value)-4)
	}

	return &VendorAttribute{
		VendorID:   binary.BigEndian.Uint32(attr.Value),
		VendorType: attr.Value[4],
		Value:      attr.Value[VendorSpecificHeaderLength:],
	}, nil
}

// EncodeAttributes serializes attributes back to back
func EncodeAttributes(attrs []*Attribute) []byte {
	size := 0
	for _, attr := range attrs {
		size += int(attr.Length)
	}

	data := make([]byte, 0, size)
	for _, attr := range attrs {
		data = append(data, attr.Type, attr.Length)
		data = append(data, attr.Value...)
	}

	return data
}

// DecodeAttributes splits a buffer of back to back attributes
func DecodeAttributes(data []byte) ([]*Attribute, error) {
	attrs := make([]*Attribute, 0)

	offset := 0
	for offset < len(data) {
		if offset+AttributeHeaderLength > len(data) {
			return nil, merry.Here(ErrMalformedAttribute).Appendf("incomplete attribute header at offset %d", offset)
		}

		attrType := data[offset]
		attrLength := data[offset+1]

		if attrLength < AttributeHeaderLength {
			return nil, merry.Here(ErrMalformedAttribute).Appendf("invalid attribute length: %d", attrLength)
		}

		if offset+int(attrLength) > len(data) {
			return nil, merry.Here(ErrMalformedAttribute).Appendf("attribute extends beyond buffer: offset %d, length %d, buffer length %d",
				offset, attrLength, len(data))
		}

		attrValue := make([]byte, int(attrLength)-AttributeHeaderLength)
		copy(attrValue, data[offset+AttributeHeaderLength:offset+int(attrLength)])

		attrs = append(attrs, &Attribute{
			Type:   attrType,
			Length: attrLength,
			Value:  attrValue,
		})
		offset += int(attrLength)
	}

	return attrs, nil
}
