package domain

import "fmt"

type Vendor string

func (v Vendor) String() string {
	return string(v)
}

const (
	VendorAmigo  Vendor = "amigo"
	VendorCortin Vendor = "cortin"
	VendorInter  Vendor = "inter"
)

var Vendors = []Vendor{
	VendorAmigo,
	VendorCortin,
	VendorInter,
}

func (v Vendor) DisplayName() string {
	switch v {
	case VendorAmigo:
		return "Amigo"
	case VendorCortin:
		return "Cortin"
	case VendorInter:
		return "Inter"
	default:
		return "Unknown"
	}
}

// ParseVendor maps an external vendor identifier to a known Vendor.
func ParseVendor(s string) (Vendor, error) {
	for _, v := range Vendors {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVendor, s)
}
