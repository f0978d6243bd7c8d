package dashboard

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"launchdash/internal/chart"
	"launchdash/internal/display"
)

// sitesResponse is the body of GET /api/sites.
type sitesResponse struct {
	Options []display.SiteOption `json:"options"`
	Payload payloadControl       `json:"payload"`
}

type payloadControl struct {
	Min     float64     `json:"min"`
	Max     float64     `json:"max"`
	Step    float64     `json:"step"`
	Initial chart.Range `json:"initial"`
}

// chartResponse wraps an updater result; Chart is null when nothing is drawn.
type chartResponse struct {
	Chart any `json:"chart"`
}

func (s *Server) siteOptions() []display.SiteOption {
	return s.cfg.Sites.SiteOptions(s.ds.Sites(), chart.AllSites)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sel := s.selection(r)
	rng := s.payloadRange(r)

	prop, err := s.render.renderPie(s.proportion(sel))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	corr, err := s.render.renderScatter(s.correlation(sel, rng))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	p := s.cfg.Payload
	data := pageData{
		Title:       PageTitle,
		Options:     s.siteOptions(),
		Selected:    sel.Value(),
		Min:         p.Min,
		Max:         p.Max,
		Step:        p.Step,
		Low:         rng.Min,
		High:        rng.Max,
		Marks:       s.marks(),
		Proportion:  prop,
		Correlation: corr,
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleProportionFragment(w http.ResponseWriter, r *http.Request) {
	frag, err := s.render.renderPie(s.proportion(s.selection(r)))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeFragment(w, frag)
}

func (s *Server) handleCorrelationFragment(w http.ResponseWriter, r *http.Request) {
	frag, err := s.render.renderScatter(s.correlation(s.selection(r), s.payloadRange(r)))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeFragment(w, frag)
}

func (s *Server) handleSites(w http.ResponseWriter, _ *http.Request) {
	p := s.cfg.Payload
	writeJSON(w, sitesResponse{
		Options: s.siteOptions(),
		Payload: payloadControl{Min: p.Min, Max: p.Max, Step: p.Step, Initial: p.Bounds()},
	})
}

func (s *Server) handleProportionAPI(w http.ResponseWriter, r *http.Request) {
	resp := chartResponse{}
	if p := s.proportion(s.selection(r)); p != nil {
		resp.Chart = p
	}
	writeJSON(w, resp)
}

func (s *Server) handleCorrelationAPI(w http.ResponseWriter, r *http.Request) {
	resp := chartResponse{}
	if sc := s.correlation(s.selection(r), s.payloadRange(r)); sc != nil {
		resp.Chart = sc
	}
	writeJSON(w, resp)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("render failed", slog.String("path", r.URL.Path), slog.Any("err", err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeFragment(w http.ResponseWriter, frag template.HTML) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(frag))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
