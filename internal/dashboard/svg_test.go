package dashboard

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"launchdash/internal/chart"
	"launchdash/internal/display"
	"launchdash/internal/launch"
)

func testRenderer() renderer {
	return renderer{palette: DefaultPalette(), sites: display.DefaultSiteNames(), tickStep: 1000}
}

func TestArcPath(t *testing.T) {
	got := arcPath(0, 0, 10, 0, 1.5707963267948966)
	want := "M 0.00 0.00 L 10.00 0.00 A 10.00 10.00 0 0 1 0.00 10.00 Z"
	if got != want {
		t.Errorf("arcPath = %q, want %q", got, want)
	}
	if large := arcPath(0, 0, 10, 0, 4); !strings.Contains(large, " 0 1 1 ") {
		t.Errorf("arc over pi should set large-arc flag: %q", large)
	}
}

func TestPieView_FullSlice(t *testing.T) {
	p := &chart.Pie{Kind: chart.PieOutcomes, Title: "Launch Success of X", Wedges: []chart.Wedge{
		{Key: launch.OutcomeSuccess, Label: launch.OutcomeSuccess, Value: 3},
		{Key: launch.OutcomeFailure, Label: launch.OutcomeFailure, Value: 0},
	}}
	v := testRenderer().pieView(p)
	if !v.Slices[0].Full || v.Slices[0].Percent != "100.0%" {
		t.Errorf("success slice = %+v", v.Slices[0])
	}
	if v.Slices[1].Path != "" || v.Slices[1].Full {
		t.Errorf("zero slice drawn: %+v", v.Slices[1])
	}
	if v.Slices[0].Color != "#90D26D" {
		t.Errorf("success color = %s", v.Slices[0].Color)
	}
}

func TestPieView_NearFullSliceIsArc(t *testing.T) {
	p := &chart.Pie{Kind: chart.PieOutcomes, Title: "Launch Success of X", Wedges: []chart.Wedge{
		{Key: launch.OutcomeSuccess, Label: launch.OutcomeSuccess, Value: 1},
		{Key: launch.OutcomeFailure, Label: launch.OutcomeFailure, Value: 99999},
	}}
	v := testRenderer().pieView(p)
	for i, s := range v.Slices {
		if s.Full || s.Path == "" {
			t.Errorf("slice %d should be an arc: %+v", i, s)
		}
	}
	html, err := testRenderer().renderPie(p)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(html), "<circle") {
		t.Errorf("no slice should cover the disc:\n%s", html)
	}
}

func TestRenderPie_SiteLegend(t *testing.T) {
	p := &chart.Pie{Kind: chart.PieSites, Title: "Successful Launches from Different Launch Sites", Wedges: []chart.Wedge{
		{Key: "CCAFS LC-40", Label: "CCAFS LC-40", Value: 2},
		{Key: "KSC LC-39A", Label: "KSC LC-39A", Value: 3},
	}}
	out, err := testRenderer().renderPie(p)
	if err != nil {
		t.Fatal(err)
	}
	html := string(out)
	for _, want := range []string{"<svg", "#FFEC9E", "#9AC8CD", "Kennedy Space Center Launch Complex 39A", "60.0%"} {
		if !strings.Contains(html, want) {
			t.Errorf("pie missing %q", want)
		}
	}
	if strings.Count(html, `class="wedge"`) != 2 {
		t.Errorf("want 2 wedges in %s", html)
	}
}

func TestRenderPie_NoSuccesses(t *testing.T) {
	p := &chart.Pie{Kind: chart.PieSites, Title: "t", Wedges: []chart.Wedge{{Key: "A", Label: "A", Value: 0}}}
	out, err := testRenderer().renderPie(p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "No successful launches") {
		t.Errorf("empty note missing: %s", out)
	}
}

func TestRenderNil(t *testing.T) {
	r := testRenderer()
	if out, err := r.renderPie(nil); out != "" || err != nil {
		t.Errorf("renderPie(nil) = %q, %v", out, err)
	}
	if out, err := r.renderScatter(nil); out != "" || err != nil {
		t.Errorf("renderScatter(nil) = %q, %v", out, err)
	}
}

func TestRenderScatter_MarkersAndEscaping(t *testing.T) {
	r := testRenderer()
	r.sites = display.SiteNames{"X": "<b>Pad</b>"}
	s := &chart.Scatter{
		Title:    "Correlation between Payload and Success for X",
		Site:     "X",
		Range:    chart.Range{Min: 0, Max: 1000},
		Boosters: []string{"FT", "Zeta"},
		Points: []chart.Point{
			{PayloadMassKg: 500, Outcome: launch.OutcomeSuccess, Booster: "FT", Marker: chart.MarkerCircle, Site: "X"},
			{PayloadMassKg: 900, Outcome: launch.OutcomeFailure, Booster: "Zeta", Marker: chart.MarkerCross, Site: "X"},
		},
	}
	out, err := r.renderScatter(s)
	if err != nil {
		t.Fatal(err)
	}
	html := string(out)
	if strings.Count(html, `class="point point-success"`) != 1 || strings.Count(html, `class="point point-failure"`) != 1 {
		t.Errorf("markers wrong: %s", html)
	}
	if strings.Contains(html, "<b>Pad</b>") || !strings.Contains(html, "&lt;b&gt;Pad&lt;/b&gt;") {
		t.Error("site name not escaped")
	}
	if !strings.Contains(html, "#A34343") || !strings.Contains(html, "#636EFA") {
		t.Error("booster colors missing")
	}
}

func TestScatterView_Rows(t *testing.T) {
	s := &chart.Scatter{Range: chart.Range{Min: 0, Max: 1000}, Points: []chart.Point{
		{PayloadMassKg: 0, Outcome: launch.OutcomeSuccess},
		{PayloadMassKg: 1000, Outcome: launch.OutcomeFailure},
	}}
	v := testRenderer().scatterView(s)
	if v.Points[0].X != scLeft || v.Points[1].X != scRight {
		t.Errorf("x placement = %v, %v", v.Points[0].X, v.Points[1].X)
	}
	if v.Points[0].Y >= v.Points[1].Y {
		t.Error("success row should sit above failure row")
	}
}

func TestDomain(t *testing.T) {
	tests := []struct {
		name   string
		rng    chart.Range
		lo, hi float64
	}{
		{"plain", chart.Range{Min: 0, Max: 10000}, 0, 10000},
		{"degenerate", chart.Range{Min: 9600, Max: 9600}, 9100, 10100},
	}
	for _, tc := range tests {
		lo, hi := domain(&chart.Scatter{Range: tc.rng})
		if lo != tc.lo || hi != tc.hi {
			t.Errorf("%s: domain = [%v, %v], want [%v, %v]", tc.name, lo, hi, tc.lo, tc.hi)
		}
	}
}

func TestTicks(t *testing.T) {
	want := []float64{0, 1000, 2000, 3000, 4000, 5000, 6000, 7000, 8000, 9000, 10000}
	if diff := cmp.Diff(want, ticks(0, 10000, 1000)); diff != "" {
		t.Errorf("ticks (-want +got):\n%s", diff)
	}
	if got := ticks(0, 100000, 1000); len(got) > maxTicks+1 {
		t.Errorf("too many ticks: %v", got)
	}
}
