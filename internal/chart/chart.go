package chart

import (
	"slices"

	"launchdash/internal/launch"
)

// Chart titles.
const (
	titleAllSitesPie     = "Successful Launches from Different Launch Sites"
	titleSitePie         = "Launch Success of "
	titleCorrelationBase = "Correlation between Payload and Success for "
	allSitesTitle        = "All Sites"
)

// Marker shapes keyed by outcome.
const (
	MarkerCircle = "circle"
	MarkerCross  = "x"
)

// Wedge is one slice of a Pie.
type Wedge struct {
	Key   string `json:"key"`   // site code or outcome label
	Label string `json:"label"` // legend text
	Value int    `json:"value"`
}

// Pie is a proportion chart description.
type Pie struct {
	Kind   string  `json:"kind"` // "sites" or "outcomes"
	Site   string  `json:"site,omitempty"`
	Title  string  `json:"title"`
	Wedges []Wedge `json:"wedges"`
}

// Pie kinds.
const (
	PieSites    = "sites"
	PieOutcomes = "outcomes"
)

// Total returns the sum of all wedge values.
func (p *Pie) Total() int {
	n := 0
	for _, w := range p.Wedges {
		n += w.Value
	}
	return n
}

// Point is one plotted launch.
type Point struct {
	PayloadMassKg  float64 `json:"payload_mass_kg"`
	Outcome        string  `json:"outcome"`
	Booster        string  `json:"booster"`
	Marker         string  `json:"marker"`
	Site           string  `json:"site"`
	FlightNumber   int     `json:"flight_number,omitempty"`
	BoosterVersion string  `json:"booster_version,omitempty"`
}

// Scatter is a payload-vs-outcome correlation chart description.
type Scatter struct {
	Title    string   `json:"title"`
	Site     string   `json:"site,omitempty"`
	Range    Range    `json:"range"`
	Boosters []string `json:"boosters"` // legend order: first appearance among points
	Points   []Point  `json:"points"`
}

// Proportion computes the proportion chart for sel.
//
// All sites: one wedge per distinct site code (sorted by code) sized by its
// number of successful launches. One site: a Success wedge and a Failure
// wedge whose values sum to that site's launch count. Unset selections and
// site codes absent from the dataset produce no chart.
func Proportion(ds *launch.Dataset, sel Selection) *Pie {
	switch sel.Mode {
	case SiteAll:
		sites := ds.Sites()
		slices.Sort(sites)
		p := &Pie{Kind: PieSites, Title: titleAllSitesPie, Wedges: make([]Wedge, 0, len(sites))}
		for _, site := range sites {
			n := 0
			for _, r := range ds.BySite(site) {
				if r.Success {
					n++
				}
			}
			p.Wedges = append(p.Wedges, Wedge{Key: site, Label: site, Value: n})
		}
		return p

	case SiteOne:
		if !ds.HasSite(sel.Site) {
			return nil
		}
		var ok, failed int
		for _, r := range ds.BySite(sel.Site) {
			if r.Success {
				ok++
			} else {
				failed++
			}
		}
		return &Pie{
			Kind:  PieOutcomes,
			Site:  sel.Site,
			Title: titleSitePie + sel.Site,
			Wedges: []Wedge{
				{Key: launch.OutcomeSuccess, Label: launch.OutcomeSuccess, Value: ok},
				{Key: launch.OutcomeFailure, Label: launch.OutcomeFailure, Value: failed},
			},
		}
	}
	return nil
}

// Correlation computes the correlation chart for sel and rng.
//
// Records are kept when their payload lies in rng (inclusive) and, for a
// single-site selection, when they were launched from that site. An unset
// selection produces no chart; an unknown site produces a chart with no
// points.
func Correlation(ds *launch.Dataset, sel Selection, rng Range) *Scatter {
	var recs []launch.Record
	s := &Scatter{Range: rng, Boosters: []string{}, Points: []Point{}}
	switch sel.Mode {
	case SiteAll:
		recs = ds.Records()
		s.Title = titleCorrelationBase + allSitesTitle
	case SiteOne:
		recs = ds.BySite(sel.Site)
		s.Site = sel.Site
		s.Title = titleCorrelationBase + sel.Site
	default:
		return nil
	}

	seen := make(map[string]bool)
	for _, r := range recs {
		if !rng.Contains(r.PayloadMassKg) {
			continue
		}
		marker := MarkerCross
		if r.Success {
			marker = MarkerCircle
		}
		s.Points = append(s.Points, Point{
			PayloadMassKg:  r.PayloadMassKg,
			Outcome:        r.Outcome(),
			Booster:        r.BoosterCategory,
			Marker:         marker,
			Site:           r.Site,
			FlightNumber:   r.FlightNumber,
			BoosterVersion: r.BoosterVersion,
		})
		if !seen[r.BoosterCategory] {
			seen[r.BoosterCategory] = true
			s.Boosters = append(s.Boosters, r.BoosterCategory)
		}
	}
	return s
}
