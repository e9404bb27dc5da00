package packet

const (
	// AttributeHeaderLength is the length of attribute header (Type + Length)
	AttributeHeaderLength = 2
	// MaxAttributeValueLength is the largest value a single attribute can carry
	MaxAttributeValueLength = 255 - AttributeHeaderLength
	// VendorSpecificHeaderLength is the length of the VSA value header (Vendor-Id + Vendor-Type + Vendor-Length)
	VendorSpecificHeaderLength = 6
	// AttrVendorSpecific is the Vendor-Specific attribute type
	AttrVendorSpecific = 26
)
