package enums

import "fmt"

// VendorCategory groups vendors and the budget lines that track them.
type VendorCategory string

const (
	VendorCategoryVenue          VendorCategory = "venue"
	VendorCategoryCatering       VendorCategory = "catering"
	VendorCategoryPhotography    VendorCategory = "photography"
	VendorCategoryVideography    VendorCategory = "videography"
	VendorCategoryFlorist        VendorCategory = "florist"
	VendorCategoryMusic          VendorCategory = "music"
	VendorCategoryAttire         VendorCategory = "attire"
	VendorCategoryBeauty         VendorCategory = "beauty"
	VendorCategoryCake           VendorCategory = "cake"
	VendorCategoryStationery     VendorCategory = "stationery"
	VendorCategoryTransportation VendorCategory = "transportation"
	VendorCategoryOfficiant      VendorCategory = "officiant"
	VendorCategoryRentals        VendorCategory = "rentals"
	VendorCategoryOther          VendorCategory = "other"
)

var vendorCategoryLabels = map[VendorCategory]string{
	VendorCategoryVenue:          "Venue",
	VendorCategoryCatering:       "Catering",
	VendorCategoryPhotography:    "Photography",
	VendorCategoryVideography:    "Videography",
	VendorCategoryFlorist:        "Flowers & Decor",
	VendorCategoryMusic:          "Music & Entertainment",
	VendorCategoryAttire:         "Attire",
	VendorCategoryBeauty:         "Hair & Makeup",
	VendorCategoryCake:           "Cake & Desserts",
	VendorCategoryStationery:     "Stationery",
	VendorCategoryTransportation: "Transportation",
	VendorCategoryOfficiant:      "Officiant",
	VendorCategoryRentals:        "Rentals",
	VendorCategoryOther:          "Other",
}

// String implements fmt.Stringer.
func (v VendorCategory) String() string {
	return string(v)
}

// Label returns the human-facing budget category name.
func (v VendorCategory) Label() string {
	if label, ok := vendorCategoryLabels[v]; ok {
		return label
	}
	return vendorCategoryLabels[VendorCategoryOther]
}

// IsValid reports whether the value is a known VendorCategory.
func (v VendorCategory) IsValid() bool {
	_, ok := vendorCategoryLabels[v]
	return ok
}

// ParseVendorCategory converts raw input into a VendorCategory.
func ParseVendorCategory(value string) (VendorCategory, error) {
	candidate := VendorCategory(value)
	if candidate.IsValid() {
		return candidate, nil
	}
	return "", fmt.Errorf("invalid vendor category %q", value)
}
