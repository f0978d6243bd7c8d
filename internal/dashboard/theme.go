package dashboard

// Palette holds the chart colors.
type Palette struct {
	Sites    []string          // site wedges, by wedge index
	Outcomes map[string]string // outcome wedges and legend
	Boosters map[string]string // scatter colors by booster category
	Fallback []string          // colors for booster categories not in Boosters
	Neutral  string            // empty charts
}

// DefaultPalette is the dashboard's stock color scheme.
func DefaultPalette() Palette {
	return Palette{
		Sites: []string{"#FFEC9E", "#9AC8CD", "#FA7070", "#B0D9B1"},
		Outcomes: map[string]string{
			"Success": "#90D26D",
			"Failure": "#BF3131",
		},
		Boosters: map[string]string{
			"v1.1": "#124076",
			"FT":   "#A34343",
			"B4":   "#BB8493",
			"B5":   "#87A922",
		},
		Fallback: []string{"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A", "#19D3F3"},
		Neutral:  "#D8D9DA",
	}
}

// SiteColor returns the color of the i-th site wedge, cycling the list.
func (p Palette) SiteColor(i int) string {
	if len(p.Sites) == 0 {
		return p.Neutral
	}
	return p.Sites[i%len(p.Sites)]
}

// OutcomeColor returns the color for "Success" or "Failure".
func (p Palette) OutcomeColor(outcome string) string {
	if c, ok := p.Outcomes[outcome]; ok {
		return c
	}
	return p.Neutral
}

// BoosterColors assigns a color to each booster category. Known categories
// keep their fixed color; the rest take fallback colors in the given order.
func (p Palette) BoosterColors(boosters []string) map[string]string {
	out := make(map[string]string, len(boosters))
	next := 0
	for _, b := range boosters {
		if c, ok := p.Boosters[b]; ok {
			out[b] = c
			continue
		}
		if len(p.Fallback) == 0 {
			out[b] = p.Neutral
			continue
		}
		out[b] = p.Fallback[next%len(p.Fallback)]
		next++
	}
	return out
}
