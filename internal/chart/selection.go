// Package chart computes the dashboard's chart descriptions from the
// current control state. Both updaters are pure functions of their inputs
// and the read-only dataset; a nil result means "render nothing".
package chart

import (
	"math"
	"strconv"
	"strings"
)

// AllSites is the dropdown value that selects every launch site.
const AllSites = "All"

// SiteMode says what the site dropdown currently selects.
type SiteMode int

const (
	SiteUnset SiteMode = iota // nothing selected yet
	SiteAll                   // the all-sites sentinel
	SiteOne                   // a single site code
)

// Selection is the value of the site dropdown.
type Selection struct {
	Mode SiteMode
	Site string // set when Mode == SiteOne
}

// ParseSelection interprets a raw dropdown value. Empty means unset and the
// sentinel is matched case-insensitively; anything else is a site code.
func ParseSelection(v string) Selection {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return Selection{Mode: SiteUnset}
	case strings.EqualFold(v, AllSites):
		return Selection{Mode: SiteAll}
	}
	return Selection{Mode: SiteOne, Site: v}
}

// Value returns the dropdown value for s.
func (s Selection) Value() string {
	switch s.Mode {
	case SiteAll:
		return AllSites
	case SiteOne:
		return s.Site
	}
	return ""
}

// Range is an inclusive payload-mass interval in kilograms.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// NewRange builds a Range, swapping the bounds when given in reverse.
func NewRange(a, b float64) Range {
	if a > b {
		a, b = b, a
	}
	return Range{Min: a, Max: b}
}

// Contains reports whether Min <= kg <= Max.
func (r Range) Contains(kg float64) bool {
	return kg >= r.Min && kg <= r.Max
}

// ParseRange reads min/max strings from the range control. A missing or
// unparsable (or non-finite) bound falls back to the corresponding bound of def.
func ParseRange(minStr, maxStr string, def Range) Range {
	lo, hi := def.Min, def.Max
	if v, ok := parseBound(minStr); ok {
		lo = v
	}
	if v, ok := parseBound(maxStr); ok {
		hi = v
	}
	return NewRange(lo, hi)
}

func parseBound(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
