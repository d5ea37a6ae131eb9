package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickgao/kalshi-signals/internal/api"
	"github.com/rickgao/kalshi-signals/internal/dashboard"
	"github.com/rickgao/kalshi-signals/internal/history"
	"github.com/rickgao/kalshi-signals/internal/model"
	"github.com/rickgao/kalshi-signals/internal/polls"
	"github.com/rickgao/kalshi-signals/internal/portfolio"
)

type fakeDashboard struct {
	snap       *dashboard.Snapshot
	err        error
	refreshes  int
	clears     int
	clearError error
}

func (f *fakeDashboard) Refresh(context.Context) (*dashboard.Snapshot, error) {
	f.refreshes++
	return f.snap, f.err
}

func (f *fakeDashboard) ClearCache(context.Context) error {
	f.clears++
	return f.clearError
}

type fakeStatus struct {
	err error
}

func (f fakeStatus) GetExchangeStatus(context.Context) (*api.ExchangeStatusResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &api.ExchangeStatusResponse{ExchangeActive: true, TradingActive: false}, nil
}

func testSnapshot() *dashboard.Snapshot {
	return &dashboard.Snapshot{
		CycleID:     "cycle-42",
		GeneratedAt: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
		Polls:       polls.Generic{Dem: 48, Rep: 44},
		Fair:        dashboard.FairValues{House: 74, Senate: 58},
		Signals: []model.Signal{
			{Market: "Dem House Control", Chamber: model.House, MarketPct: 60, Source: "direct (CONTROLH-2026-D)", FairPct: 74, Edge: -14, Recommendation: "Strong Sell"},
		},
		Markets: []dashboard.MarketRow{
			{Chamber: model.House, Ticker: "CONTROLH-2026-D", Title: "Dem House", Percent: 60, HasPrice: true, Volume: 2500},
		},
		Portfolio: &dashboard.Portfolio{
			Positions: []portfolio.Position{{Ticker: "CONTROLH-2026-D", Side: "Yes", Contracts: 3}},
		},
		Range: history.Quarter,
		History: []history.Series{
			{Label: "Dem House (Yes)", Ticker: "CONTROLH-2026-D", Points: []history.Point{{Time: time.Unix(100, 0), Close: 58}}},
		},
		Warnings: []string{"Combo legs sum to 120.0%"},
	}
}

func do(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	dash := &fakeDashboard{snap: testSnapshot()}
	s := NewServer(Config{RefreshInterval: 90 * time.Second}, dash)

	rec := do(t, s, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, `content="90"`)
	assert.Contains(t, body, "cycle-42")
	assert.Contains(t, body, "D 48.0% / R 44.0%")
	assert.Contains(t, body, "Strong Sell")
	assert.Contains(t, body, `class="neg"`)
	assert.Contains(t, body, "Market N/A")
	assert.Contains(t, body, "Combo data unavailable.")
	assert.Contains(t, body, "2,500")
	assert.Contains(t, body, "Price History (3M)")
	assert.Contains(t, body, "58.0%")
	assert.Contains(t, body, "Combo legs sum to 120.0%")
	assert.Equal(t, 1, dash.refreshes)
}

func TestSnapshotJSON(t *testing.T) {
	dash := &fakeDashboard{snap: testSnapshot()}
	s := NewServer(Config{}, dash)

	rec := do(t, s, http.MethodGet, "/api/snapshot")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status int                `json:"status"`
		Data   dashboard.Snapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "cycle-42", resp.Data.CycleID)
	require.Len(t, resp.Data.Signals, 1)
	assert.Equal(t, -14.0, resp.Data.Signals[0].Edge)
}

func TestSnapshot_Error(t *testing.T) {
	dash := &fakeDashboard{err: context.DeadlineExceeded}
	s := NewServer(Config{}, dash)

	rec := do(t, s, http.MethodGet, "/api/snapshot")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "deadline exceeded")
}

func TestRefresh(t *testing.T) {
	dash := &fakeDashboard{snap: testSnapshot()}
	s := NewServer(Config{}, dash)

	rec := do(t, s, http.MethodPost, "/api/refresh")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, dash.clears)
	assert.Equal(t, 1, dash.refreshes)
}

func TestRefresh_ClearFails(t *testing.T) {
	dash := &fakeDashboard{snap: testSnapshot(), clearError: errors.New("redis down")}
	s := NewServer(Config{}, dash)

	rec := do(t, s, http.MethodPost, "/api/refresh")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Zero(t, dash.refreshes)
}

func TestRefresh_MethodNotAllowed(t *testing.T) {
	s := NewServer(Config{}, &fakeDashboard{snap: testSnapshot()})
	rec := do(t, s, http.MethodGet, "/api/refresh")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		opts     []Option
		wantCode int
		wantBody string
	}{
		{"no checker", nil, http.StatusOK, `"status":"ok"`},
		{"exchange up", []Option{WithStatus(fakeStatus{})}, http.StatusOK, `"exchange_active":true`},
		{"exchange down", []Option{WithStatus(fakeStatus{err: errors.New("unreachable")})}, http.StatusServiceUnavailable, `"status":"degraded"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(Config{}, &fakeDashboard{}, tt.opts...)
			rec := do(t, s, http.MethodGet, "/health")
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestMetricsRoute(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("kalshi_signals_up 1\n"))
	})
	s := NewServer(Config{}, &fakeDashboard{}, WithMetrics(metrics))

	rec := do(t, s, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "kalshi_signals_up"))
}

func TestMetricsRoute_Disabled(t *testing.T) {
	s := NewServer(Config{}, &fakeDashboard{})
	rec := do(t, s, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
