package dictionary

import (
	"testing"

	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/radvalue/pkg/valuebox"
)

func testStandardAttributes() []*AttributeDefinition {
	return []*AttributeDefinition{
		{ID: 1, Name: "User-Name", DataType: valuebox.TypeString},
		{ID: 8, Name: "Framed-IP-Address", DataType: valuebox.TypeIPv4Addr},
		{
			ID:       40,
			Name:     "Acct-Status-Type",
			DataType: valuebox.TypeInteger,
			Values:   map[string]uint32{"Start": 1, "Stop": 2, "Interim-Update": 3},
		},
	}
}

func testVendor() *VendorDefinition {
	return &VendorDefinition{
		ID:   14988,
		Name: "Mikrotik",
		Attributes: []*AttributeDefinition{
			{ID: 3, Name: "Mikrotik-Group", DataType: valuebox.TypeString},
			{ID: 10, Name: "Mikrotik-Host-IP", DataType: valuebox.TypeIPv4Addr},
		},
	}
}

func TestNew(t *testing.T) {
	dict := New()
	require.NotNil(t, dict)
	assert.Empty(t, dict.GetAllVendors())
	assert.Empty(t, dict.GetStandardAttributes())
}

func TestAddStandardAttributes(t *testing.T) {
	dict := New()
	require.NoError(t, dict.AddStandardAttributes(testStandardAttributes()))

	attr, exists := dict.LookupStandardByID(8)
	require.True(t, exists)
	assert.Equal(t, "Framed-IP-Address", attr.Name)

	attr, exists = dict.LookupStandardByName("Acct-Status-Type")
	require.True(t, exists)
	assert.Equal(t, uint32(40), attr.ID)

	_, exists = dict.LookupStandardByID(99)
	assert.False(t, exists)

	attrs := dict.GetStandardAttributes()
	require.Len(t, attrs, 3)
	assert.Equal(t, uint32(1), attrs[0].ID)
	assert.Equal(t, uint32(40), attrs[2].ID)
}

func TestAddStandardAttributesErrors(t *testing.T) {
	tests := []struct {
		name  string
		attrs []*AttributeDefinition
		kind  error
	}{
		{
			name:  "duplicate name",
			attrs: []*AttributeDefinition{{ID: 200, Name: "User-Name", DataType: valuebox.TypeString}},
			kind:  ErrDuplicateAttribute,
		},
		{
			name:  "duplicate id",
			attrs: []*AttributeDefinition{{ID: 1, Name: "Other-Name", DataType: valuebox.TypeString}},
			kind:  ErrDuplicateAttribute,
		},
		{
			name: "repeated within batch",
			attrs: []*AttributeDefinition{
				{ID: 100, Name: "A", DataType: valuebox.TypeString},
				{ID: 101, Name: "A", DataType: valuebox.TypeString},
			},
			kind: ErrDuplicateAttribute,
		},
		{
			name:  "missing name",
			attrs: []*AttributeDefinition{{ID: 100, DataType: valuebox.TypeString}},
			kind:  ErrInvalidDefinition,
		},
		{
			name:  "missing data type",
			attrs: []*AttributeDefinition{{ID: 100, Name: "No-Type"}},
			kind:  ErrInvalidDefinition,
		},
		{
			name:  "nil attribute",
			attrs: []*AttributeDefinition{nil},
			kind:  ErrInvalidDefinition,
		},
		{
			name: "values on string",
			attrs: []*AttributeDefinition{
				{ID: 100, Name: "Bad-Enum", DataType: valuebox.TypeString, Values: map[string]uint32{"A": 1}},
			},
			kind: ErrInvalidDefinition,
		},
		{
			name: "value wider than byte",
			attrs: []*AttributeDefinition{
				{ID: 100, Name: "Bad-Byte", DataType: valuebox.TypeByte, Values: map[string]uint32{"Big": 256}},
			},
			kind: ErrInvalidDefinition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dict := New()
			require.NoError(t, dict.AddStandardAttributes(testStandardAttributes()))

			err := dict.AddStandardAttributes(tt.attrs)
			require.Error(t, err)
			assert.True(t, merry.Is(err, tt.kind), err.Error())
		})
	}
}

func TestAddVendor(t *testing.T) {
	dict := New()
	require.NoError(t, dict.AddStandardAttributes(testStandardAttributes()))
	require.NoError(t, dict.AddVendor(testVendor()))

	vendor, exists := dict.LookupVendorByID(14988)
	require.True(t, exists)
	assert.Equal(t, "Mikrotik", vendor.Name)

	attr, exists := dict.LookupVendorAttributeByID(14988, 10)
	require.True(t, exists)
	assert.Equal(t, "Mikrotik-Host-IP", attr.Name)

	attr, exists = dict.LookupVendorAttributeByName("Mikrotik", "Mikrotik-Group")
	require.True(t, exists)
	assert.Equal(t, uint32(3), attr.ID)

	_, exists = dict.LookupVendorAttributeByID(9, 10)
	assert.False(t, exists)

	assert.Equal(t, uint32(14988), dict.VendorID(attr))

	userName, _ := dict.LookupStandardByName("User-Name")
	assert.Equal(t, uint32(0), dict.VendorID(userName))
}

func TestAddVendorErrors(t *testing.T) {
	tests := []struct {
		name   string
		vendor *VendorDefinition
		kind   error
	}{
		{"nil vendor", nil, ErrInvalidDefinition},
		{"zero id", &VendorDefinition{Name: "Zero"}, ErrInvalidDefinition},
		{"empty name", &VendorDefinition{ID: 10}, ErrInvalidDefinition},
		{"id taken by another name", &VendorDefinition{ID: 14988, Name: "Other"}, ErrVendorConflict},
		{
			"conflicts with standard attribute",
			&VendorDefinition{ID: 9, Name: "Cisco", Attributes: []*AttributeDefinition{
				{ID: 1, Name: "User-Name", DataType: valuebox.TypeString},
			}},
			ErrDuplicateAttribute,
		},
		{
			"conflicts with vendor attribute",
			&VendorDefinition{ID: 9, Name: "Cisco", Attributes: []*AttributeDefinition{
				{ID: 1, Name: "Mikrotik-Group", DataType: valuebox.TypeString},
			}},
			ErrDuplicateAttribute,
		},
		{
			"attribute id taken in merged vendor",
			&VendorDefinition{ID: 14988, Name: "Mikrotik", Attributes: []*AttributeDefinition{
				{ID: 3, Name: "Mikrotik-Group-Again", DataType: valuebox.TypeString},
			}},
			ErrDuplicateAttribute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dict := New()
			require.NoError(t, dict.AddStandardAttributes(testStandardAttributes()))
			require.NoError(t, dict.AddVendor(testVendor()))

			err := dict.AddVendor(tt.vendor)
			require.Error(t, err)
			assert.True(t, merry.Is(err, tt.kind), err.Error())
		})
	}
}

func TestAddVendorMergesSameVendor(t *testing.T) {
	dict := New()
	original := testVendor()
	require.NoError(t, dict.AddVendor(original))

	require.NoError(t, dict.AddVendor(&VendorDefinition{
		ID:   14988,
		Name: "Mikrotik",
		Attributes: []*AttributeDefinition{
			{ID: 8, Name: "Mikrotik-Rate-Limit", DataType: valuebox.TypeString},
		},
	}))

	vendor, exists := dict.LookupVendorByID(14988)
	require.True(t, exists)
	assert.Len(t, vendor.Attributes, 3)
	assert.Len(t, original.Attributes, 2, "the original definition is not modified")

	_, exists = dict.LookupVendorAttributeByID(14988, 8)
	assert.True(t, exists)
}

func TestLookupByName(t *testing.T) {
	dict := New()
	require.NoError(t, dict.AddStandardAttributes(testStandardAttributes()))
	require.NoError(t, dict.AddVendor(testVendor()))

	tests := []struct {
		name   string
		lookup string
		wantID uint32
	}{
		{"standard", "User-Name", 1},
		{"vendor plain", "Mikrotik-Host-IP", 10},
		{"vendor qualified", "Mikrotik:Mikrotik-Group", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr, err := dict.LookupByName(tt.lookup)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, attr.ID)
		})
	}

	_, err := dict.LookupByName("Unknown-Attribute")
	assert.True(t, merry.Is(err, ErrAttributeNotFound))

	_, err = dict.LookupByName("Cisco:User-Name-X")
	assert.True(t, merry.Is(err, ErrAttributeNotFound))
}

func TestMerge(t *testing.T) {
	a := New()
	require.NoError(t, a.AddStandardAttributes(testStandardAttributes()))

	b := New()
	require.NoError(t, b.AddVendor(testVendor()))
	require.NoError(t, b.AddStandardAttributes([]*AttributeDefinition{
		{ID: 44, Name: "Acct-Session-Id", DataType: valuebox.TypeString},
	}))

	require.NoError(t, a.Merge(b))
	require.NoError(t, a.Merge(nil))

	_, err := a.LookupByName("Acct-Session-Id")
	assert.NoError(t, err)
	_, err = a.LookupByName("Mikrotik-Group")
	assert.NoError(t, err)

	err = a.Merge(b)
	assert.True(t, merry.Is(err, ErrDuplicateAttribute))
}

func TestGetAllVendorsOrdered(t *testing.T) {
	dict := New()
	require.NoError(t, dict.AddVendor(&VendorDefinition{ID: 14988, Name: "Mikrotik"}))
	require.NoError(t, dict.AddVendor(&VendorDefinition{ID: 9, Name: "Cisco"}))
	require.NoError(t, dict.AddVendor(&VendorDefinition{ID: 529, Name: "Ascend"}))

	vendors := dict.GetAllVendors()
	require.Len(t, vendors, 3)
	assert.Equal(t, []uint32{9, 529, 14988}, []uint32{vendors[0].ID, vendors[1].ID, vendors[2].ID})
}
