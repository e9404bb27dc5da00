package dictionaries

import (
	"github.com/vitalvas/radvalue/pkg/dictionary"
	"github.com/vitalvas/radvalue/pkg/valuebox"
)

// MikrotikVendorDefinition defines the Mikrotik vendor and its attributes
var MikrotikVendorDefinition = &dictionary.VendorDefinition{
	ID:          14988,
	Name:        "Mikrotik",
	Description: "Mikrotik RouterOS RADIUS attributes",
	Attributes: []*dictionary.AttributeDefinition{
		{ID: 1, Name: "Mikrotik-Recv-Limit", DataType: valuebox.TypeInteger},
		{ID: 2, Name: "Mikrotik-Xmit-Limit", DataType: valuebox.TypeInteger},
		{ID: 3, Name: "Mikrotik-Group", DataType: valuebox.TypeString},
		{ID: 4, Name: "Mikrotik-Wireless-Forward", DataType: valuebox.TypeInteger},
		{ID: 5, Name: "Mikrotik-Wireless-Skip-Dot1x", DataType: valuebox.TypeInteger},
		{
			ID:       6,
			Name:     "Mikrotik-Wireless-Enc-Algo",
			DataType: valuebox.TypeInteger,
			Values: map[string]uint32{
				"No-encryption": 0,
				"40-bit-WEP":    1,
				"104-bit-WEP":   2,
				"AES-CCM":       3,
				"TKIP":          4,
			},
		},
		{ID: 7, Name: "Mikrotik-Wireless-Enc-Key", DataType: valuebox.TypeString},
		{ID: 8, Name: "Mikrotik-Rate-Limit", DataType: valuebox.TypeString},
		{ID: 9, Name: "Mikrotik-Realm", DataType: valuebox.TypeString},
		{ID: 10, Name: "Mikrotik-Host-IP", DataType: valuebox.TypeIPv4Addr},
		{ID: 11, Name: "Mikrotik-Mark-Id", DataType: valuebox.TypeString},
		{ID: 12, Name: "Mikrotik-Advertise-URL", DataType: valuebox.TypeString},
		{ID: 13, Name: "Mikrotik-Advertise-Interval", DataType: valuebox.TypeInteger},
		{ID: 14, Name: "Mikrotik-Recv-Limit-Gigawords", DataType: valuebox.TypeInteger},
		{ID: 15, Name: "Mikrotik-Xmit-Limit-Gigawords", DataType: valuebox.TypeInteger},
		{ID: 16, Name: "Mikrotik-Wireless-PSK", DataType: valuebox.TypeString},
		{ID: 17, Name: "Mikrotik-Total-Limit", DataType: valuebox.TypeInteger},
		{ID: 18, Name: "Mikrotik-Total-Limit-Gigawords", DataType: valuebox.TypeInteger},
		{ID: 19, Name: "Mikrotik-Address-List", DataType: valuebox.TypeString},
		{ID: 20, Name: "Mikrotik-Wireless-MPKey", DataType: valuebox.TypeString},
		{ID: 21, Name: "Mikrotik-Wireless-Comment", DataType: valuebox.TypeString},
		{ID: 22, Name: "Mikrotik-Delegated-IPv6-Pool", DataType: valuebox.TypeString},
		{ID: 23, Name: "Mikrotik-DHCP-Option-Set", DataType: valuebox.TypeString},
		{ID: 24, Name: "Mikrotik-DHCP-Option-Param-STR1", DataType: valuebox.TypeString},
		{ID: 25, Name: "Mikrotik-DHCP-Option-ParamSTR2", DataType: valuebox.TypeString},
		{ID: 26, Name: "Mikrotik-Wireless-VLANID", DataType: valuebox.TypeInteger},
		{ID: 27, Name: "Mikrotik-Wireless-VLANID-Type", DataType: valuebox.TypeInteger},
		{ID: 28, Name: "Mikrotik-Wireless-Minsignal", DataType: valuebox.TypeString},
		{ID: 29, Name: "Mikrotik-Wireless-Maxsignal", DataType: valuebox.TypeString},
	},
}
