// Package mcp exposes the dashboard's chart updaters as MCP tools so an
// agent can query launch proportions and payload correlations without a
// browser.
package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"launchdash/internal/chart"
	"launchdash/internal/display"
	"launchdash/internal/launch"
	"launchdash/internal/logging"
)

// Config wires a Server.
type Config struct {
	Dataset *launch.Dataset
	Sites   display.SiteNames
	Payload chart.Range // default range when a correlation call omits a bound
	Version string
}

// Server wraps the MCP SDK server around a read-only launch dataset.
type Server struct {
	MCPServer *sdkmcp.Server

	ds      *launch.Dataset
	sites   display.SiteNames
	payload chart.Range
}

// NewServer creates an MCP server with the chart tools registered.
func NewServer(cfg Config) *Server {
	if cfg.Dataset == nil {
		cfg.Dataset = launch.NewDataset(nil)
	}
	if cfg.Sites == nil {
		cfg.Sites = display.DefaultSiteNames()
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	s := &Server{
		ds:      cfg.Dataset,
		sites:   cfg.Sites,
		payload: cfg.Payload,
	}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "launchdash", Version: cfg.Version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "list_sites",
		Description: "List launch sites in dataset order with launch and success counts, plus the dropdown options the dashboard offers.",
	}, s.handleListSites)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "proportion_chart",
		Description: `Compute the success proportion chart. site="All" gives successful launches per site; a site code gives its success/failure split.`,
	}, s.handleProportion)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "correlation_chart",
		Description: `Compute payload mass vs. outcome points for site ("All" or a site code) within [min, max] kg, inclusive.`,
	}, s.handleCorrelation)
}

// Run serves over transport until ctx is canceled or the client disconnects.
func (s *Server) Run(ctx context.Context, transport sdkmcp.Transport) error {
	logging.New("mcp").Info("serving launch tools",
		"records", s.ds.Len(), "sites", len(s.ds.Sites()))
	return s.MCPServer.Run(ctx, transport)
}

// --- Tool input/output types ---

type listSitesInput struct{}

type siteEntry struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Launches    int     `json:"launches"`
	Successes   int     `json:"successes"`
	SuccessRate float64 `json:"success_rate"`
	MinPayload  float64 `json:"min_payload_kg"`
	MaxPayload  float64 `json:"max_payload_kg"`
}

type listSitesOutput struct {
	Sites   []siteEntry          `json:"sites"`
	Options []display.SiteOption `json:"options"`
	Payload chart.Range          `json:"payload"`
}

type proportionInput struct {
	Site string `json:"site" jsonschema:"All for every site, or a launch site code such as KSC LC-39A"`
}

type proportionOutput struct {
	Rendered bool       `json:"rendered"`
	Chart    *chart.Pie `json:"chart,omitempty"`
}

type correlationInput struct {
	Site string   `json:"site" jsonschema:"All for every site, or a launch site code"`
	Min  *float64 `json:"min,omitempty" jsonschema:"lower payload bound in kg (default: configured minimum)"`
	Max  *float64 `json:"max,omitempty" jsonschema:"upper payload bound in kg (default: configured maximum)"`
}

type correlationOutput struct {
	Rendered bool           `json:"rendered"`
	Chart    *chart.Scatter `json:"chart,omitempty"`
}

// --- Tool handlers ---

func (s *Server) handleListSites(_ context.Context, _ *sdkmcp.CallToolRequest, _ listSitesInput) (*sdkmcp.CallToolResult, listSitesOutput, error) {
	out := listSitesOutput{
		Sites:   []siteEntry{},
		Options: s.sites.SiteOptions(s.ds.Sites(), chart.AllSites),
		Payload: s.payload,
	}
	for _, sum := range launch.Summarize(s.ds) {
		out.Sites = append(out.Sites, siteEntry{
			Code:        sum.Site,
			Name:        s.sites.Name(sum.Site),
			Launches:    sum.Launches,
			Successes:   sum.Successes,
			SuccessRate: sum.SuccessRate(),
			MinPayload:  sum.MinPayload,
			MaxPayload:  sum.MaxPayload,
		})
	}
	return nil, out, nil
}

func (s *Server) handleProportion(_ context.Context, _ *sdkmcp.CallToolRequest, input proportionInput) (*sdkmcp.CallToolResult, proportionOutput, error) {
	sel := chart.ParseSelection(input.Site)
	if sel.Mode == chart.SiteUnset {
		return nil, proportionOutput{}, fmt.Errorf("site is required (%q or a site code)", chart.AllSites)
	}
	p := chart.Proportion(s.ds, sel)
	logging.New("mcp").Debug("proportion_chart", "site", sel.Value(), "rendered", p != nil)
	return nil, proportionOutput{Rendered: p != nil, Chart: p}, nil
}

func (s *Server) handleCorrelation(_ context.Context, _ *sdkmcp.CallToolRequest, input correlationInput) (*sdkmcp.CallToolResult, correlationOutput, error) {
	sel := chart.ParseSelection(input.Site)
	if sel.Mode == chart.SiteUnset {
		return nil, correlationOutput{}, fmt.Errorf("site is required (%q or a site code)", chart.AllSites)
	}
	lo, hi := s.payload.Min, s.payload.Max
	if input.Min != nil {
		lo = *input.Min
	}
	if input.Max != nil {
		hi = *input.Max
	}
	sc := chart.Correlation(s.ds, sel, chart.NewRange(lo, hi))
	logging.New("mcp").Debug("correlation_chart", "site", sel.Value(), "points", len(sc.Points))
	return nil, correlationOutput{Rendered: true, Chart: sc}, nil
}
