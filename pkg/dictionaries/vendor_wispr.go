package dictionaries

import (
	"github.com/vitalvas/radvalue/pkg/dictionary"
	"github.com/vitalvas/radvalue/pkg/valuebox"
)

// WISPrVendorDefinition defines the WISPr vendor and its attributes
var WISPrVendorDefinition = &dictionary.VendorDefinition{
	ID:          14122,
	Name:        "WISPr",
	Description: "WISPr (Wireless Internet Service Provider roaming)",
	Attributes: []*dictionary.AttributeDefinition{
		{ID: 1, Name: "WISPr-Location-Id", DataType: valuebox.TypeString},
		{ID: 2, Name: "WISPr-Location-Name", DataType: valuebox.TypeString},
		{ID: 3, Name: "WISPr-Logoff-URL", DataType: valuebox.TypeString},
		{ID: 4, Name: "WISPr-Redirection-URL", DataType: valuebox.TypeString},
		{ID: 5, Name: "WISPr-Bandwidth-Min-Up", DataType: valuebox.TypeInteger},
		{ID: 6, Name: "WISPr-Bandwidth-Min-Down", DataType: valuebox.TypeInteger},
		{ID: 7, Name: "WISPr-Bandwidth-Max-Up", DataType: valuebox.TypeInteger},
		{ID: 8, Name: "WISPr-Bandwidth-Max-Down", DataType: valuebox.TypeInteger},
		{ID: 9, Name: "WISPr-Session-Terminate-Time", DataType: valuebox.TypeString},
	},
}
