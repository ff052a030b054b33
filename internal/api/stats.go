package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"langcat/pkg/browser"
	"langcat/pkg/tracker"
)

type StatsHandler struct {
	tracker *tracker.Tracker
	ctrl    *browser.Controller
	live    *LiveHandler
	started time.Time
}

func NewStatsHandler(t *tracker.Tracker, ctrl *browser.Controller, live *LiveHandler) *StatsHandler {
	return &StatsHandler{
		tracker: t,
		ctrl:    ctrl,
		live:    live,
		started: time.Now(),
	}
}

type CounterDTO struct {
	FetchSuccess  int64 `json:"fetch_success"`
	FetchFailures int64 `json:"fetch_errors"`
	Searches      int64 `json:"searches"`
	ZeroResults   int64 `json:"zero_results"`
}

type CatalogStats struct {
	State   string `json:"state"`
	Records int    `json:"records"`
}

type StatsResponse struct {
	Catalog      CatalogStats          `json:"catalog"`
	LiveSessions int                   `json:"live_sessions"`
	Uptime       string                `json:"uptime"`
	Counters     map[string]CounterDTO `json:"counters"`
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{
		Catalog: CatalogStats{
			State:   h.ctrl.State().String(),
			Records: h.ctrl.Size(),
		},
		Uptime:   time.Since(h.started).Round(time.Second).String(),
		Counters: make(map[string]CounterDTO),
	}
	if h.live != nil {
		resp.LiveSessions = h.live.Sessions()
	}
	if h.tracker != nil {
		for k, s := range h.tracker.Snapshot() {
			resp.Counters[k] = CounterDTO{
				FetchSuccess:  s.FetchSuccess,
				FetchFailures: s.FetchFailures,
				Searches:      s.Searches,
				ZeroResults:   s.ZeroResults,
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Failed to encode stats response", "error", err)
	}
}
