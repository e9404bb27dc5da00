package dictionaries

import (
	"github.com/vitalvas/radvalue/pkg/dictionary"
	"github.com/vitalvas/radvalue/pkg/valuebox"
)

// AscendVendorDefinition defines the Ascend vendor and its attributes
var AscendVendorDefinition = &dictionary.VendorDefinition{
	ID:          529,
	Name:        "Ascend",
	Description: "Ascend Communications (Lucent) attributes",
	Attributes: []*dictionary.AttributeDefinition{
		{ID: 135, Name: "Ascend-Client-Primary-DNS", DataType: valuebox.TypeIPv4Addr},
		{ID: 136, Name: "Ascend-Client-Secondary-DNS", DataType: valuebox.TypeIPv4Addr},
		{ID: 151, Name: "Ascend-Session-Svr-Key", DataType: valuebox.TypeString},
		{ID: 152, Name: "Ascend-Multicast-Rate-Limit", DataType: valuebox.TypeInteger},
		{ID: 194, Name: "Ascend-Maximum-Time", DataType: valuebox.TypeInteger},
		{
			ID:       195,
			Name:     "Ascend-Disconnect-Cause",
			DataType: valuebox.TypeInteger,
			Values: map[string]uint32{
				"No-Reason":         0,
				"Not-Applicable":    1,
				"Unknown":           2,
				"Call-Disconnected": 3,
				"Idle-Timeout":      100,
				"Session-Timeout":   101,
			},
		},
		{ID: 197, Name: "Ascend-Data-Rate", DataType: valuebox.TypeInteger},
		{ID: 198, Name: "Ascend-PreSession-Time", DataType: valuebox.TypeInteger},
		{ID: 242, Name: "Ascend-Data-Filter", DataType: valuebox.TypeABinary},
		{ID: 243, Name: "Ascend-Call-Filter", DataType: valuebox.TypeABinary},
		{ID: 244, Name: "Ascend-Idle-Limit", DataType: valuebox.TypeInteger},
		{ID: 255, Name: "Ascend-Xmit-Rate", DataType: valuebox.TypeInteger},
	},
}
