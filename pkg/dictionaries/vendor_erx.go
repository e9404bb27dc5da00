package dictionaries

import (
	"github.com/vitalvas/radvalue/pkg/dictionary"
	"github.com/vitalvas/radvalue/pkg/valuebox"
)

var erxStatistics = map[string]uint32{
	"disable": 0,
	"enable":  1,
}

// ERXVendorDefinition defines the Juniper ERX (Unisphere) vendor and its attributes
var ERXVendorDefinition = &dictionary.VendorDefinition{
	ID:          4874,
	Name:        "ERX",
	Description: "Juniper ERX / Unisphere attributes",
	Attributes: []*dictionary.AttributeDefinition{
		{ID: 1, Name: "ERX-Virtual-Router-Name", DataType: valuebox.TypeString},
		{ID: 2, Name: "ERX-Address-Pool-Name", DataType: valuebox.TypeString},
		{ID: 3, Name: "ERX-Local-Loopback-Interface", DataType: valuebox.TypeString},
		{ID: 4, Name: "ERX-Primary-Dns", DataType: valuebox.TypeIPv4Addr},
		{ID: 5, Name: "ERX-Secondary-Dns", DataType: valuebox.TypeIPv4Addr},
		{ID: 6, Name: "ERX-Primary-Wins", DataType: valuebox.TypeIPv4Addr},
		{ID: 7, Name: "ERX-Secondary-Wins", DataType: valuebox.TypeIPv4Addr},
		{ID: 8, Name: "ERX-Tunnel-Virtual-Router", DataType: valuebox.TypeString},
		{ID: 10, Name: "ERX-Ingress-Policy-Name", DataType: valuebox.TypeString},
		{ID: 11, Name: "ERX-Egress-Policy-Name", DataType: valuebox.TypeString},
		{ID: 12, Name: "ERX-Ingress-Statistics", DataType: valuebox.TypeInteger, Values: erxStatistics},
		{ID: 13, Name: "ERX-Egress-Statistics", DataType: valuebox.TypeInteger, Values: erxStatistics},
		{ID: 47, Name: "ERX-Ipv6-Primary-Dns", DataType: valuebox.TypeIPv6Addr},
		{ID: 48, Name: "ERX-Ipv6-Secondary-Dns", DataType: valuebox.TypeIPv6Addr},
		{ID: 100, Name: "ERX-Ipv6-Delegated-Pool-Name", DataType: valuebox.TypeString},
		{ID: 138, Name: "ERX-Acct-Request-Reason", DataType: valuebox.TypeInteger},
		{ID: 151, Name: "ERX-Ipv6-Interface-Id", DataType: valuebox.TypeIfID},
		{ID: 175, Name: "ERX-Ipv6-Framed-Prefix", DataType: valuebox.TypeIPv6Prefix},
	},
}
