package entities

import "strings"

// ItemCode represents an inventory item identifier (e.g. CHDM-001)
type ItemCode string

// POCode represents a purchase order line identifier (e.g. WEG002121)
type POCode string

// SCAC represents a Standard Carrier Alpha Code
type SCAC string

// UnsetSCAC marks an inventory row that no carrier row has been matched to
const UnsetSCAC SCAC = "NaN"

// IsSet reports whether the code holds a real carrier code
func (s SCAC) IsSet() bool {
	return s != UnsetSCAC && strings.TrimSpace(string(s)) != ""
}

// String returns the code as text
func (s SCAC) String() string {
	return string(s)
}
