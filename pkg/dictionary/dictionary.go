package dictionary

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ansel1/merry"

	"github.com/vitalvas/radvalue/pkg/valuebox"
)

var (
	ErrDuplicateAttribute = errors.New("duplicate attribute")
	ErrVendorConflict     = errors.New("vendor conflict")
	ErrInvalidDefinition  = errors.New("invalid attribute definition")
	ErrAttributeNotFound  = errors.New("attribute not found")
	ErrLoad               = errors.New("dictionary load failed")
)

// Dictionary provides fast lookup for RADIUS attributes
type Dictionary struct {
	// Fast lookup maps for standard attributes
	standardByID   map[uint32]*AttributeDefinition
	standardByName map[string]*AttributeDefinition

	// Fast lookup maps for vendor attributes
	// vendorByID maps vendor ID to vendor definition
	vendorByID map[uint32]*VendorDefinition
	// vendorAttrByID maps "vendorID:attrID" to attribute definition
	vendorAttrByID map[string]*AttributeDefinition
	// vendorAttrByName maps "vendorName:attrName" to attribute definition
	vendorAttrByName map[string]*AttributeDefinition

	// byName holds every attribute, standard and vendor, by its own name
	byName map[string]*AttributeDefinition
	// vendorOf maps vendor attributes to their vendor ID
	vendorOf map[*AttributeDefinition]uint32
}

// New creates a new empty dictionary with fast lookup indices
func New() *Dictionary {
	return &Dictionary{
		standardByID:     make(map[uint32]*AttributeDefinition),
		standardByName:   make(map[string]*AttributeDefinition),
		vendorByID:       make(map[uint32]*VendorDefinition),
		vendorAttrByID:   make(map[string]*AttributeDefinition),
		vendorAttrByName: make(map[string]*AttributeDefinition),
		byName:           make(map[string]*AttributeDefinition),
		vendorOf:         make(map[*AttributeDefinition]uint32),
	}
}

func validate(attr *AttributeDefinition) error {
	if attr == nil {
		return merry.Here(ErrInvalidDefinition).Append("nil attribute")
	}
	if attr.Name == "" {
		return merry.Here(ErrInvalidDefinition).Appendf("attribute %d has no name", attr.ID)
	}
	if !attr.DataType.IsData() && !attr.DataType.IsStructural() {
		return merry.Here(ErrInvalidDefinition).Appendf("attribute %q has unusable data type %s", attr.Name, attr.DataType)
	}
	if len(attr.Values) == 0 {
		return nil
	}
	if !attr.DataType.IsEnumerable() {
		return merry.Here(ErrInvalidDefinition).Appendf("attribute %q of type %s can not have named values", attr.Name, attr.DataType)
	}

	limit := uint32(math.MaxUint32)
	switch attr.DataType {
	case valuebox.TypeByte:
		limit = math.MaxUint8
	case valuebox.TypeShort:
		limit = math.MaxUint16
	case valuebox.TypeSigned:
		limit = math.MaxInt32
	}
	for name, value := range attr.Values {
		if name == "" {
			return merry.Here(ErrInvalidDefinition).Appendf("attribute %q has an unnamed value %d", attr.Name, value)
		}
		if value > limit {
			return merry.Here(ErrInvalidDefinition).Appendf("value %s=%d does not fit %s attribute %q", name, value, attr.DataType, attr.Name)
		}
	}
	return nil
}

// checkNames verifies that none of attrs is already known and that attrs do not
// repeat a name or an ID among themselves.
func (d *Dictionary) checkNames(attrs []*AttributeDefinition, owner string) error {
	names := make(map[string]struct{}, len(attrs))
	ids := make(map[uint32]struct{}, len(attrs))

	for _, attr := range attrs {
		if err := validate(attr); err != nil {
			return err
		}

		if _, exists := d.byName[attr.Name]; exists {
			return merry.Here(ErrDuplicateAttribute).Appendf("attribute name %q already exists", attr.Name)
		}
		if _, exists := names[attr.Name]; exists {
			return merry.Here(ErrDuplicateAttribute).Appendf("attribute name %q repeated in %s", attr.Name, owner)
		}
		if _, exists := ids[attr.ID]; exists {
			return merry.Here(ErrDuplicateAttribute).Appendf("attribute id %d repeated in %s", attr.ID, owner)
		}

		names[attr.Name] = struct{}{}
		ids[attr.ID] = struct{}{}
	}

	return nil
}

// AddStandardAttributes adds standard RFC attributes to the dictionary.
// Returns an error if any attribute name conflicts with existing standard or vendor attributes.
func (d *Dictionary) AddStandardAttributes(attrs []*AttributeDefinition) error {
	if err := d.checkNames(attrs, "standard attributes"); err != nil {
		return err
	}

	for _, attr := range attrs {
		if existing, exists := d.standardByID[attr.ID]; exists {
			return merry.Here(ErrDuplicateAttribute).Appendf("attribute id %d already defined as %q", attr.ID, existing.Name)
		}
	}

	for _, attr := range attrs {
		d.standardByID[attr.ID] = attr
		d.standardByName[attr.Name] = attr
		d.byName[attr.Name] = attr
	}

	return nil
}

// AddVendor adds a vendor and its attributes to the dictionary. A vendor already
// present under the same ID and name gets the new attributes appended.
func (d *Dictionary) AddVendor(vendor *VendorDefinition) error {
	if vendor == nil {
		return merry.Here(ErrInvalidDefinition).Append("nil vendor")
	}
	if vendor.ID == 0 || vendor.Name == "" {
		return merry.Here(ErrInvalidDefinition).Appendf("vendor %q with ID %d needs both a name and a non-zero ID", vendor.Name, vendor.ID)
	}

	owner := fmt.Sprintf("vendor %s", vendor.Name)
	if err := d.checkNames(vendor.Attributes, owner); err != nil {
		return err
	}

	existing, exists := d.vendorByID[vendor.ID]
	if exists {
		if existing.Name != vendor.Name {
			return merry.Here(ErrVendorConflict).Appendf("vendor ID %d defined as both %q and %q", vendor.ID, existing.Name, vendor.Name)
		}
		for _, attr := range vendor.Attributes {
			if _, taken := d.vendorAttrByID[vendorKey(vendor.ID, attr.ID)]; taken {
				return merry.Here(ErrDuplicateAttribute).Appendf("attribute id %d already defined for %s", attr.ID, owner)
			}
		}

		merged := *existing
		merged.Attributes = append(append([]*AttributeDefinition(nil), existing.Attributes...), vendor.Attributes...)
		d.vendorByID[vendor.ID] = &merged
	} else {
		d.vendorByID[vendor.ID] = vendor
	}

	for _, attr := range vendor.Attributes {
		d.vendorAttrByID[vendorKey(vendor.ID, attr.ID)] = attr
		d.vendorAttrByName[vendor.Name+":"+attr.Name] = attr
		d.byName[attr.Name] = attr
		d.vendorOf[attr] = vendor.ID
	}

	return nil
}

// Merge adds every standard attribute and vendor of other to d.
func (d *Dictionary) Merge(other *Dictionary) error {
	if other == nil {
		return nil
	}

	std := make([]*AttributeDefinition, 0, len(other.standardByID))
	for _, attr := range other.standardByID {
		std = append(std, attr)
	}
	sortAttributes(std)

	if err := d.AddStandardAttributes(std); err != nil {
		return err
	}

	for _, vendor := range other.GetAllVendors() {
		if err := d.AddVendor(vendor); err != nil {
			return err
		}
	}

	return nil
}

func vendorKey(vendorID, attrID uint32) string {
	return fmt.Sprintf("%d:%d", vendorID, attrID)
}

// LookupStandardByID finds a standard attribute by ID
func (d *Dictionary) LookupStandardByID(id uint32) (*AttributeDefinition, bool) {
	attr, exists := d.standardByID[id]
	return attr, exists
}

// LookupStandardByName finds a standard attribute by name
func (d *Dictionary) LookupStandardByName(name string) (*AttributeDefinition, bool) {
	attr, exists := d.standardByName[name]
	return attr, exists
}

// LookupVendorByID finds a vendor by ID
func (d *Dictionary) LookupVendorByID(vendorID uint32) (*VendorDefinition, bool) {
	vendor, exists := d.vendorByID[vendorID]
	return vendor, exists
}

// LookupVendorAttributeByID finds a vendor attribute by vendor ID and attribute ID
func (d *Dictionary) LookupVendorAttributeByID(vendorID, attrID uint32) (*AttributeDefinition, bool) {
	attr, exists := d.vendorAttrByID[vendorKey(vendorID, attrID)]
	return attr, exists
}

// LookupVendorAttributeByName finds a vendor attribute by vendor name and attribute name
func (d *Dictionary) LookupVendorAttributeByName(vendorName, attrName string) (*AttributeDefinition, bool) {
	attr, exists := d.vendorAttrByName[vendorName+":"+attrName]
	return attr, exists
}

// LookupByName finds an attribute by its name. "Vendor:Attribute" selects a
// vendor attribute explicitly, a plain name matches standard and vendor attributes.
func (d *Dictionary) LookupByName(name string) (*AttributeDefinition, error) {
	if attr, exists := d.byName[name]; exists {
		return attr, nil
	}

	if vendorName, attrName, found := strings.Cut(name, ":"); found {
		if attr, exists := d.LookupVendorAttributeByName(vendorName, attrName); exists {
			return attr, nil
		}
	}

	return nil, merry.Here(ErrAttributeNotFound).Appendf("unknown attribute %q", name)
}

// VendorID returns the vendor an attribute of this dictionary belongs to, 0 for
// standard attributes.
func (d *Dictionary) VendorID(attr *AttributeDefinition) uint32 {
	return d.vendorOf[attr]
}

// GetAllVendors returns all vendors in the dictionary ordered by ID
func (d *Dictionary) GetAllVendors() []*VendorDefinition {
	vendors := make([]*VendorDefinition, 0, len(d.vendorByID))
	for _, vendor := range d.vendorByID {
		vendors = append(vendors, vendor)
	}
	sort.Slice(vendors, func(i, j int) bool {
		return vendors[i].ID < vendors[j].ID
	})
	return vendors
}

// GetStandardAttributes returns the standard attributes ordered by ID
func (d *Dictionary) GetStandardAttributes() []*AttributeDefinition {
	attrs := make([]*AttributeDefinition, 0, len(d.standardByID))
	for _, attr := range d.standardByID {
		attrs = append(attrs, attr)
	}
	sortAttributes(attrs)
	return attrs
}

func sortAttributes(attrs []*AttributeDefinition) {
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].ID < attrs[j].ID
	})
}
