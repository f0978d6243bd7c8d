package dashboard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSiteColor_Cycles(t *testing.T) {
	p := DefaultPalette()
	if p.SiteColor(0) != "#FFEC9E" || p.SiteColor(4) != "#FFEC9E" || p.SiteColor(3) != "#B0D9B1" {
		t.Errorf("site colors: %s %s %s", p.SiteColor(0), p.SiteColor(4), p.SiteColor(3))
	}
	if got := (Palette{Neutral: "#000"}).SiteColor(2); got != "#000" {
		t.Errorf("empty palette = %s", got)
	}
}

func TestOutcomeColor(t *testing.T) {
	p := DefaultPalette()
	if p.OutcomeColor("Success") != "#90D26D" || p.OutcomeColor("Failure") != "#BF3131" {
		t.Error("outcome colors wrong")
	}
	if p.OutcomeColor("Scrubbed") != p.Neutral {
		t.Error("unknown outcome should be neutral")
	}
}

func TestBoosterColors(t *testing.T) {
	got := DefaultPalette().BoosterColors([]string{"v1.0", "FT", "Heavy", "B5"})
	want := map[string]string{
		"v1.0":  "#636EFA",
		"FT":    "#A34343",
		"Heavy": "#EF553B",
		"B5":    "#87A922",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BoosterColors (-want +got):\n%s", diff)
	}
}
