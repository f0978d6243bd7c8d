package dashboard

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"strings"

	"launchdash/internal/chart"
	"launchdash/internal/display"
	"launchdash/internal/launch"
)

// Pie geometry.
const (
	pieWidth   = 560
	pieHeight  = 340
	pieCX      = 170.0
	pieCY      = 185.0
	pieRadius  = 130.0
	pieLegendX = 340
)

// Scatter geometry.
const (
	scWidth   = 800
	scHeight  = 370
	scLeft    = 90.0
	scRight   = 620.0
	scTop     = 50.0
	scBottom  = 300.0
	scLegendX = 650
	maxTicks  = 10
)

// renderer turns chart descriptions into inline SVG fragments.
type renderer struct {
	palette  Palette
	sites    display.SiteNames
	tickStep float64
}

// --- Pie ---

type pieView struct {
	Title  string
	Width  int
	Height int
	CX, CY float64
	Radius float64
	Empty  bool
	Total  int
	Slices []sliceView
	Legend float64
}

type sliceView struct {
	Key     string
	Label   string
	Color   string
	Value   int
	Percent string
	Path    string // empty for zero-valued slices
	Full    bool   // the slice holds every launch
	LabelX  float64
	LabelY  float64
	Tooltip string
	LegendY float64
}

func (r renderer) pieView(p *chart.Pie) pieView {
	v := pieView{
		Title:  p.Title,
		Width:  pieWidth,
		Height: pieHeight,
		CX:     pieCX,
		CY:     pieCY,
		Radius: pieRadius,
		Total:  p.Total(),
		Legend: pieLegendX,
	}
	v.Empty = v.Total == 0

	angle := -math.Pi / 2
	for i, w := range p.Wedges {
		s := sliceView{
			Key:     w.Key,
			Label:   w.Label,
			Value:   w.Value,
			LegendY: 70 + float64(i)*24,
		}
		if p.Kind == chart.PieSites {
			s.Color = r.palette.SiteColor(i)
			s.Label = r.sites.NameWithCode(w.Key)
			s.Tooltip = fmt.Sprintf("%s: %d successful launches", r.sites.Name(w.Key), w.Value)
		} else {
			s.Color = r.palette.OutcomeColor(w.Key)
			s.Tooltip = fmt.Sprintf("%s: %d launches", w.Label, w.Value)
		}
		if v.Total > 0 && w.Value > 0 {
			frac := float64(w.Value) / float64(v.Total)
			s.Percent = display.Percent(frac)
			end := angle + frac*2*math.Pi
			if w.Value == v.Total {
				s.Full = true
			} else {
				s.Path = arcPath(pieCX, pieCY, pieRadius, angle, end)
			}
			mid := (angle + end) / 2
			if s.Full {
				mid = math.Pi / 2
			}
			s.LabelX = pieCX + 0.62*pieRadius*math.Cos(mid)
			s.LabelY = pieCY + 0.62*pieRadius*math.Sin(mid)
			angle = end
		}
		v.Slices = append(v.Slices, s)
	}
	return v
}

// arcPath draws a wedge from angle a0 to a1 (radians, clockwise from +x).
func arcPath(cx, cy, r, a0, a1 float64) string {
	x0, y0 := cx+r*math.Cos(a0), cy+r*math.Sin(a0)
	x1, y1 := cx+r*math.Cos(a1), cy+r*math.Sin(a1)
	large := 0
	if a1-a0 > math.Pi {
		large = 1
	}
	return fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z",
		cx, cy, x0, y0, r, r, large, x1, y1)
}

// --- Scatter ---

type scatterView struct {
	Title    string
	Width    int
	Height   int
	Left     float64
	Right    float64
	Top      float64
	Bottom   float64
	Rows     []rowView
	Ticks    []tickView
	Points   []pointView
	Boosters []legendView
	Outcomes []legendView
	Empty    bool
	LegendX  float64
}

type rowView struct {
	Label string
	Y     float64
}

type tickView struct {
	X     float64
	Label string
}

type pointView struct {
	X, Y    float64
	Color   string
	Cross   bool
	Tooltip string
}

type legendView struct {
	Label string
	Color string
	Cross bool
	Y     float64
}

func (r renderer) scatterView(s *chart.Scatter) scatterView {
	v := scatterView{
		Title:   s.Title,
		Width:   scWidth,
		Height:  scHeight,
		Left:    scLeft,
		Right:   scRight,
		Top:     scTop,
		Bottom:  scBottom,
		Empty:   len(s.Points) == 0,
		LegendX: scLegendX,
	}
	rowY := map[string]float64{
		launch.OutcomeSuccess: scTop + (scBottom-scTop)*0.3,
		launch.OutcomeFailure: scTop + (scBottom-scTop)*0.7,
	}
	v.Rows = []rowView{
		{Label: launch.OutcomeSuccess, Y: rowY[launch.OutcomeSuccess]},
		{Label: launch.OutcomeFailure, Y: rowY[launch.OutcomeFailure]},
	}

	lo, hi := domain(s)
	x := func(kg float64) float64 {
		return scLeft + (kg-lo)/(hi-lo)*(scRight-scLeft)
	}
	for _, t := range ticks(lo, hi, r.tickStep) {
		v.Ticks = append(v.Ticks, tickView{X: x(t), Label: display.Mass(t)})
	}

	colors := r.palette.BoosterColors(s.Boosters)
	for _, p := range s.Points {
		v.Points = append(v.Points, pointView{
			X:       x(p.PayloadMassKg),
			Y:       rowY[p.Outcome],
			Color:   colors[p.Booster],
			Cross:   p.Marker == chart.MarkerCross,
			Tooltip: pointTooltip(p, r.sites),
		})
	}

	y := scTop + 20
	for _, b := range s.Boosters {
		v.Boosters = append(v.Boosters, legendView{Label: b, Color: colors[b], Y: y})
		y += 22
	}
	y += 24
	v.Outcomes = []legendView{
		{Label: launch.OutcomeSuccess, Color: "#333", Y: y},
		{Label: launch.OutcomeFailure, Color: "#333", Cross: true, Y: y + 22},
	}
	return v
}

// domain returns the x-axis extent: the selected range, widened when it is
// degenerate and replaced when unbounded.
func domain(s *chart.Scatter) (float64, float64) {
	lo, hi := s.Range.Min, s.Range.Max
	if !finite(lo) || !finite(hi) {
		lo, hi = math.Inf(1), math.Inf(-1)
		for _, p := range s.Points {
			lo = math.Min(lo, p.PayloadMassKg)
			hi = math.Max(hi, p.PayloadMassKg)
		}
		if !finite(lo) || !finite(hi) {
			lo, hi = 0, 10000
		}
	}
	if hi-lo < 1 {
		lo, hi = lo-500, hi+500
	}
	return lo, hi
}

func finite(f float64) bool { return !math.IsInf(f, 0) && !math.IsNaN(f) }

// ticks returns multiples of step (doubled until at most maxTicks fit)
// inside [lo, hi].
func ticks(lo, hi, step float64) []float64 {
	if step <= 0 {
		step = 1000
	}
	for (hi-lo)/step > maxTicks {
		step *= 2
	}
	for (hi-lo)/step < 2 && step > 1 {
		step /= 2
	}
	var out []float64
	for t := math.Ceil(lo/step) * step; t <= hi+1e-9 && len(out) <= 2*maxTicks; t += step {
		out = append(out, t)
	}
	return out
}

func pointTooltip(p chart.Point, names display.SiteNames) string {
	parts := make([]string, 0, 5)
	if p.FlightNumber > 0 {
		parts = append(parts, fmt.Sprintf("Flight %d", p.FlightNumber))
	}
	parts = append(parts, names.Name(p.Site))
	if p.BoosterVersion != "" {
		parts = append(parts, p.BoosterVersion)
	} else {
		parts = append(parts, p.Booster)
	}
	parts = append(parts, display.Mass(p.PayloadMassKg), p.Outcome)
	return strings.Join(parts, " · ")
}

// --- Templates ---

var chartTmpl = template.Must(template.New("charts").Funcs(template.FuncMap{
	"f1":   func(f float64) string { return fmt.Sprintf("%.1f", f) },
	"sub":  func(a, b float64) float64 { return a - b },
	"add":  func(a, b float64) float64 { return a + b },
	"half": func(f float64) float64 { return f / 2 },
}).Parse(tmplCharts))

func (r renderer) renderPie(p *chart.Pie) (template.HTML, error) {
	if p == nil {
		return "", nil
	}
	return execute("pie", r.pieView(p))
}

func (r renderer) renderScatter(s *chart.Scatter) (template.HTML, error) {
	if s == nil {
		return "", nil
	}
	return execute("scatter", r.scatterView(s))
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := chartTmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

const tmplCharts = `
{{define "pie"}}<figure class="chart chart-pie">
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 {{.Width}} {{.Height}}" role="img" aria-label="{{.Title}}">
<text class="chart-title" x="{{.Legend}}" y="28" text-anchor="middle">{{.Title}}</text>
{{- if .Empty}}
<circle cx="{{f1 .CX}}" cy="{{f1 .CY}}" r="{{f1 .Radius}}" class="pie-empty"/>
<text x="{{f1 .CX}}" y="{{f1 .CY}}" text-anchor="middle" class="pie-note">No successful launches</text>
{{- end}}
{{- range .Slices}}
{{- if .Full}}
<circle cx="{{f1 $.CX}}" cy="{{f1 $.CY}}" r="{{f1 $.Radius}}" fill="{{.Color}}" class="wedge" data-key="{{.Key}}"><title>{{.Tooltip}}</title></circle>
{{- else if .Path}}
<path d="{{.Path}}" fill="{{.Color}}" class="wedge" data-key="{{.Key}}"><title>{{.Tooltip}}</title></path>
{{- end}}
{{- if .Percent}}
<text x="{{f1 .LabelX}}" y="{{f1 .LabelY}}" text-anchor="middle" class="wedge-label">{{.Percent}}</text>
{{- end}}
{{- end}}
{{- range .Slices}}
<rect x="{{$.Legend}}" y="{{f1 (sub .LegendY 11)}}" width="14" height="14" fill="{{.Color}}" class="swatch"/>
<text x="{{add $.Legend 20}}" y="{{f1 .LegendY}}" class="legend-label">{{.Label}} ({{.Value}})</text>
{{- end}}
</svg>
</figure>{{end}}

{{define "scatter"}}<figure class="chart chart-scatter">
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 {{.Width}} {{.Height}}" role="img" aria-label="{{.Title}}">
<text class="chart-title" x="{{f1 .Left}}" y="28">{{.Title}}</text>
<line x1="{{f1 .Left}}" y1="{{f1 .Bottom}}" x2="{{f1 .Right}}" y2="{{f1 .Bottom}}" class="axis"/>
<line x1="{{f1 .Left}}" y1="{{f1 .Top}}" x2="{{f1 .Left}}" y2="{{f1 .Bottom}}" class="axis"/>
{{- range .Ticks}}
<line x1="{{f1 .X}}" y1="{{f1 $.Top}}" x2="{{f1 .X}}" y2="{{f1 $.Bottom}}" class="grid"/>
<text x="{{f1 .X}}" y="{{f1 (add $.Bottom 18)}}" text-anchor="middle" class="tick">{{.Label}}</text>
{{- end}}
{{- range .Rows}}
<line x1="{{f1 $.Left}}" y1="{{f1 .Y}}" x2="{{f1 $.Right}}" y2="{{f1 .Y}}" class="grid"/>
<text x="{{f1 (sub $.Left 10)}}" y="{{f1 (add .Y 4)}}" text-anchor="end" class="tick">{{.Label}}</text>
{{- end}}
<text x="{{f1 (add $.Left (sub $.Right $.Left | half))}}" y="{{f1 (add .Bottom 44)}}" text-anchor="middle" class="axis-label">Payload Mass (kg)</text>
{{- if .Empty}}
<text x="{{f1 (add $.Left (sub $.Right $.Left | half))}}" y="{{f1 (add .Top 14)}}" text-anchor="middle" class="pie-note">No launches in this payload range</text>
{{- end}}
{{- range .Points}}
{{- if .Cross}}
<path d="M {{f1 (sub .X 5)}} {{f1 (sub .Y 5)}} L {{f1 (add .X 5)}} {{f1 (add .Y 5)}} M {{f1 (sub .X 5)}} {{f1 (add .Y 5)}} L {{f1 (add .X 5)}} {{f1 (sub .Y 5)}}" stroke="{{.Color}}" class="point point-failure"><title>{{.Tooltip}}</title></path>
{{- else}}
<circle cx="{{f1 .X}}" cy="{{f1 .Y}}" r="6" fill="{{.Color}}" class="point point-success"><title>{{.Tooltip}}</title></circle>
{{- end}}
{{- end}}
<text x="{{.LegendX}}" y="{{f1 .Top}}" class="legend-head">Booster Version Category</text>
{{- range .Boosters}}
<circle cx="{{add $.LegendX 7}}" cy="{{f1 (sub .Y 4)}}" r="6" fill="{{.Color}}" class="swatch"/>
<text x="{{add $.LegendX 20}}" y="{{f1 .Y}}" class="legend-label">{{.Label}}</text>
{{- end}}
{{- range .Outcomes}}
{{- if .Cross}}
<path d="M {{add $.LegendX 2}} {{f1 (sub .Y 9)}} L {{add $.LegendX 12}} {{f1 (add .Y 1)}} M {{add $.LegendX 2}} {{f1 (add .Y 1)}} L {{add $.LegendX 12}} {{f1 (sub .Y 9)}}" stroke="{{.Color}}" class="swatch swatch-failure"/>
{{- else}}
<circle cx="{{add $.LegendX 7}}" cy="{{f1 (sub .Y 4)}}" r="6" fill="none" stroke="{{.Color}}" class="swatch"/>
{{- end}}
<text x="{{add $.LegendX 20}}" y="{{f1 .Y}}" class="legend-label">{{.Label}}</text>
{{- end}}
</svg>
</figure>{{end}}
`
