package dictionary

import (
	"sort"
	"sync"

	"github.com/vitalvas/radvalue/pkg/valuebox"
)

// AttributeDefinition defines a RADIUS attribute
type AttributeDefinition struct {
	ID          uint32            `yaml:"id" json:"id"`
	Name        string            `yaml:"name" json:"name"`
	DataType    valuebox.Type     `yaml:"data_type" json:"data_type"`
	Values      map[string]uint32 `yaml:"values,omitempty" json:"values,omitempty"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`

	enumOnce sync.Once
	enum     *Enumeration
}

// VendorDefinition defines a vendor and its attributes
type VendorDefinition struct {
	ID          uint32                 `yaml:"id" json:"id"`
	Name        string                 `yaml:"name" json:"name"`
	Description string                 `yaml:"description,omitempty" json:"description,omitempty"`
	Attributes  []*AttributeDefinition `yaml:"attributes" json:"attributes"`
}

// File is the on-disk layout of a dictionary file.
type File struct {
	Attributes []*AttributeDefinition `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Vendors    []*VendorDefinition    `yaml:"vendors,omitempty" json:"vendors,omitempty"`
}

// Enumeration is the set of named values of one attribute. It implements
// valuebox.EnumTable.
type Enumeration struct {
	attr    string
	byName  map[string]uint32
	byValue map[uint32]string
}

// NewEnumeration indexes values of the attribute named attr. When several names
// share a value the lexically smallest one is used for printing.
func NewEnumeration(attr string, values map[string]uint32) *Enumeration {
	e := &Enumeration{
		attr:    attr,
		byName:  make(map[string]uint32, len(values)),
		byValue: make(map[uint32]string, len(values)),
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := values[name]
		e.byName[name] = value
		if _, exists := e.byValue[value]; !exists {
			e.byValue[value] = name
		}
	}

	return e
}

func (e *Enumeration) Name() string {
	return e.attr
}

func (e *Enumeration) EnumByName(name string) (uint32, bool) {
	value, ok := e.byName[name]
	return value, ok
}

func (e *Enumeration) EnumByValue(value uint32) (string, bool) {
	name, ok := e.byValue[value]
	return name, ok
}

// Len returns the number of names in the enumeration.
func (e *Enumeration) Len() int {
	return len(e.byName)
}

// Enum returns the enumeration table of the attribute, or nil when it has no
// named values or its type can not carry them. The table is built on first use.
func (a *AttributeDefinition) Enum() valuebox.EnumTable {
	if len(a.Values) == 0 || !a.DataType.IsEnumerable() {
		return nil
	}
	a.enumOnce.Do(func() {
		a.enum = NewEnumeration(a.Name, a.Values)
	})
	return a.enum
}
