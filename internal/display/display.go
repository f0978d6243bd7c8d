// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans.
// Dropdown values, JSON fields and map keys keep the raw site code;
// labels, legends and CLI tables use these names.
package display

import (
	"fmt"
	"strconv"
	"strings"
)

// --- Launch Sites ---

var siteNames = map[string]string{
	"CCAFS LC-40":  "Cape Canaveral Launch Complex 40",
	"VAFB SLC-4E":  "Vandenberg Space Force Base Space Launch Complex 4 East",
	"KSC LC-39A":   "Kennedy Space Center Launch Complex 39A",
	"CCAFS SLC-40": "Cape Canaveral Space Launch Complex 40",
}

// DefaultSiteNames returns a fresh copy of the built-in site name table.
func DefaultSiteNames() SiteNames {
	out := make(SiteNames, len(siteNames))
	for k, v := range siteNames {
		out[k] = v
	}
	return out
}

// SiteNames maps site codes to full names.
type SiteNames map[string]string

// Name returns the full name for code. Unknown codes are returned as-is.
func (n SiteNames) Name(code string) string {
	if name, ok := n[code]; ok && name != "" {
		return name
	}
	return code
}

// NameWithCode returns "Kennedy Space Center Launch Complex 39A (KSC LC-39A)".
func (n SiteNames) NameWithCode(code string) string {
	if name, ok := n[code]; ok && name != "" {
		return name + " (" + code + ")"
	}
	return code
}

// --- Selection ---

// AllSitesLabel labels the dropdown entry that selects every site.
const AllSitesLabel = "All Sites"

// SiteOption is one dropdown entry.
type SiteOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SiteOptions builds dropdown entries for codes, preceded by the
// all-sites entry whose value is allValue.
func (n SiteNames) SiteOptions(codes []string, allValue string) []SiteOption {
	opts := make([]SiteOption, 0, len(codes)+1)
	opts = append(opts, SiteOption{Label: AllSitesLabel, Value: allValue})
	for _, c := range codes {
		opts = append(opts, SiteOption{Label: n.Name(c), Value: c})
	}
	return opts
}

// --- Quantities ---

// Mass formats kilograms with thousands separators: 9600 -> "9,600 kg".
func Mass(kg float64) string {
	neg := kg < 0
	if neg {
		kg = -kg
	}
	s := strconv.FormatFloat(kg, 'f', -1, 64)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String() + " kg"
}

// Percent formats a 0..1 ratio: 0.375 -> "37.5%".
func Percent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}
