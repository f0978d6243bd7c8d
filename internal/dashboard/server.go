// Package dashboard serves the launch-records page: a site dropdown and a
// payload range control bound to the proportion and correlation charts.
//
// Charts are rendered server-side to inline SVG. The page swaps them in
// either over a WebSocket (one sequential update stream per page) or, as a
// fallback, by fetching /fragment/* endpoints. The same updaters back a
// JSON API under /api/.
package dashboard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"launchdash/internal/chart"
	"launchdash/internal/config"
	"launchdash/internal/display"
	"launchdash/internal/launch"
	"launchdash/internal/logging"
)

// PageTitle heads the dashboard page.
const PageTitle = "SpaceX Launch Records Dashboard"

const shutdownTimeout = 5 * time.Second

// Config wires a Server.
type Config struct {
	Listen   string
	Dataset  *launch.Dataset
	Sites    display.SiteNames
	Payload  config.Payload
	Palette  *Palette            // nil = DefaultPalette
	Logger   *slog.Logger        // nil = logging.New("dashboard")
	Registry *prometheus.Registry // nil = private registry with Go runtime collectors
}

// Server is the dashboard HTTP server.
type Server struct {
	cfg     Config
	ds      *launch.Dataset
	render  renderer
	log     *slog.Logger
	metrics *metrics
	mux     *http.ServeMux
}

// NewServer builds a Server and its routes. It does not listen.
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = logging.New("dashboard")
	}
	if cfg.Sites == nil {
		cfg.Sites = display.DefaultSiteNames()
	}
	if cfg.Payload.Step <= 0 || cfg.Payload.Max <= cfg.Payload.Min {
		cfg.Payload = config.Default().Payload
	}
	if cfg.Dataset == nil {
		cfg.Dataset = launch.NewDataset(nil)
	}
	palette := DefaultPalette()
	if cfg.Palette != nil {
		palette = *cfg.Palette
	}

	s := &Server{
		cfg: cfg,
		ds:  cfg.Dataset,
		render: renderer{
			palette:  palette,
			sites:    cfg.Sites,
			tickStep: cfg.Payload.Step,
		},
		log:     cfg.Logger,
		metrics: newMetrics(cfg.Registry),
		mux:     http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /fragment/proportion", s.handleProportionFragment)
	s.mux.HandleFunc("GET /fragment/correlation", s.handleCorrelationFragment)
	s.mux.HandleFunc("GET /api/sites", s.handleSites)
	s.mux.HandleFunc("GET /api/proportion", s.handleProportionAPI)
	s.mux.HandleFunc("GET /api/correlation", s.handleCorrelationAPI)
	s.mux.HandleFunc("GET /ws", s.handleLive)
	s.mux.Handle("GET /metrics", s.metrics.handler())
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(StaticFS())))
	s.mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

// Handler returns the root handler with request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// Start listens on cfg.Listen and serves until ctx is canceled, then shuts
// down gracefully. A clean shutdown returns nil.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Listen, err)
	}
	s.log.Info("dashboard listening", slog.String("url", "http://"+ln.Addr().String()))
	return s.serve(ctx, ln)
}

// StartOnAvailablePort serves on a free loopback port in the background
// and returns its address. The server stops when ctx is canceled.
func (s *Server) StartOnAvailablePort(ctx context.Context) (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("listen: %w", err)
	}
	go func() {
		if err := s.serve(ctx, ln); err != nil {
			s.log.Error("dashboard server stopped", slog.Any("err", err))
		}
	}()
	return ln.Addr().String(), nil
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.log.Info("dashboard stopped")
		return nil
	})
	return g.Wait()
}

// --- Updaters ---

func (s *Server) proportion(sel chart.Selection) *chart.Pie {
	p := chart.Proportion(s.ds, sel)
	s.metrics.observe(regionProportion, p != nil)
	return p
}

func (s *Server) correlation(sel chart.Selection, rng chart.Range) *chart.Scatter {
	sc := chart.Correlation(s.ds, sel, rng)
	s.metrics.observe(regionCorrelation, sc != nil)
	if sc != nil {
		s.metrics.points.Observe(float64(len(sc.Points)))
	}
	return sc
}

// --- Request state ---

func (s *Server) selection(r *http.Request) chart.Selection {
	return chart.ParseSelection(r.URL.Query().Get("site"))
}

func (s *Server) payloadRange(r *http.Request) chart.Range {
	q := r.URL.Query()
	return chart.ParseRange(q.Get("min"), q.Get("max"), s.cfg.Payload.Bounds())
}

func (s *Server) marks() []mark {
	p := s.cfg.Payload
	var out []mark
	for v := p.Min; v <= p.Max+1e-9; v += p.Step {
		out = append(out, mark{Value: v, Label: trimFloat(v) + " kg"})
	}
	return out
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// --- Middleware ---

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

// Hijack hands the connection to the WebSocket upgrader.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return hj.Hijack()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("took", time.Since(start)))
	})
}
