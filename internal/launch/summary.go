package launch

import "math"

// SiteSummary aggregates the launches of one site.
type SiteSummary struct {
	Site       string  `json:"site"`
	Launches   int     `json:"launches"`
	Successes  int     `json:"successes"`
	MinPayload float64 `json:"min_payload_kg"`
	MaxPayload float64 `json:"max_payload_kg"`
}

// Failures returns Launches - Successes.
func (s SiteSummary) Failures() int { return s.Launches - s.Successes }

// SuccessRate returns Successes / Launches, or 0 for an empty site.
func (s SiteSummary) SuccessRate() float64 {
	if s.Launches == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Launches)
}

// Summarize returns one SiteSummary per site in first-appearance order.
func Summarize(d *Dataset) []SiteSummary {
	out := make([]SiteSummary, 0, len(d.sites))
	for _, site := range d.sites {
		s := SiteSummary{Site: site, MinPayload: math.Inf(1), MaxPayload: math.Inf(-1)}
		for _, i := range d.bySite[site] {
			r := d.records[i]
			s.Launches++
			if r.Success {
				s.Successes++
			}
			s.MinPayload = math.Min(s.MinPayload, r.PayloadMassKg)
			s.MaxPayload = math.Max(s.MaxPayload, r.PayloadMassKg)
		}
		out = append(out, s)
	}
	return out
}
