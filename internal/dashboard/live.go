package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"launchdash/internal/chart"
)

// Controls a live request can name in Changed.
const (
	controlSite    = "site"
	controlPayload = "payload"
)

// regionInputs lists, per output region, the controls it is computed from.
var regionInputs = []struct {
	region string
	inputs []string
}{
	{regionProportion, []string{controlSite}},
	{regionCorrelation, []string{controlSite, controlPayload}},
}

// liveRequest is the control state sent by the page.
type liveRequest struct {
	Site    string   `json:"site"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Changed string   `json:"changed,omitempty"`
}

// liveUpdate carries re-rendered regions. A nil field means the region was
// not recomputed; an empty string means it now shows nothing.
type liveUpdate struct {
	Proportion  *string `json:"proportion,omitempty"`
	Correlation *string `json:"correlation,omitempty"`
}

// affected returns the regions that depend on the changed control. An empty
// or unknown control recomputes every region.
func affected(changed string) map[string]bool {
	out := make(map[string]bool, len(regionInputs))
	for _, ri := range regionInputs {
		if changed == "" {
			out[ri.region] = true
			continue
		}
		for _, in := range ri.inputs {
			if in == changed {
				out[ri.region] = true
			}
		}
	}
	if len(out) == 0 {
		for _, ri := range regionInputs {
			out[ri.region] = true
		}
	}
	return out
}

func (s *Server) liveRange(req liveRequest) chart.Range {
	def := s.cfg.Payload.Bounds()
	lo, hi := def.Min, def.Max
	if req.Min != nil {
		lo = *req.Min
	}
	if req.Max != nil {
		hi = *req.Max
	}
	return chart.NewRange(lo, hi)
}

func (s *Server) update(req liveRequest) (liveUpdate, error) {
	sel := chart.ParseSelection(req.Site)
	regions := affected(req.Changed)

	var upd liveUpdate
	if regions[regionProportion] {
		frag, err := s.render.renderPie(s.proportion(sel))
		if err != nil {
			return liveUpdate{}, err
		}
		str := string(frag)
		upd.Proportion = &str
	}
	if regions[regionCorrelation] {
		frag, err := s.render.renderScatter(s.correlation(sel, s.liveRange(req)))
		if err != nil {
			return liveUpdate{}, err
		}
		str := string(frag)
		upd.Correlation = &str
	}
	return upd, nil
}

// handleLive runs one page's update channel. Messages are read and answered
// one at a time, so a page never sees two updates computed concurrently.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.Debug("websocket accept failed", slog.Any("err", err))
		return
	}
	defer c.Close(websocket.StatusInternalError, "")

	s.metrics.liveSessions.Inc()
	defer s.metrics.liveSessions.Dec()

	ctx := r.Context()
	for {
		var req liveRequest
		if err := wsjson.Read(ctx, c, &req); err != nil {
			if !closedNormally(ctx, err) {
				s.log.Debug("live read", slog.Any("err", err))
			}
			return
		}
		upd, err := s.update(req)
		if err != nil {
			s.log.Error("live render failed", slog.Any("err", err))
			c.Close(websocket.StatusInternalError, "render failed")
			return
		}
		if err := wsjson.Write(ctx, c, upd); err != nil {
			s.log.Debug("live write", slog.Any("err", err))
			return
		}
	}
}

func closedNormally(ctx context.Context, err error) bool {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return ctx.Err() != nil || errors.Is(err, context.Canceled)
}
