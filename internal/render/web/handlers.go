package web

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
)

// response is the JSON envelope for every API reply.
type response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func dataResponse(c echo.Context, status int, data any) error {
	return c.JSON(status, response{
		Status:  status,
		Message: http.StatusText(status),
		Data:    data,
	})
}

func errorResponse(c echo.Context, status int, err error) error {
	return c.JSON(status, response{
		Status:  status,
		Message: err.Error(),
	})
}

// index renders the HTML dashboard. Each page load is one cycle; the cache
// keeps reloads inside its lifetimes cheap.
func (s *Server) index(c echo.Context) error {
	snap, err := s.dash.Refresh(c.Request().Context())
	if err != nil {
		return errorResponse(c, http.StatusServiceUnavailable, err)
	}

	var buf bytes.Buffer
	if err := s.page.render(&buf, snap, s.cfg.RefreshInterval); err != nil {
		s.logger.Error("render page", "err", err)
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (s *Server) snapshot(c echo.Context) error {
	snap, err := s.dash.Refresh(c.Request().Context())
	if err != nil {
		return errorResponse(c, http.StatusServiceUnavailable, err)
	}
	return dataResponse(c, http.StatusOK, snap)
}

// refresh clears every cached result and recomputes.
func (s *Server) refresh(c echo.Context) error {
	ctx := c.Request().Context()
	if err := s.dash.ClearCache(ctx); err != nil {
		s.logger.Warn("clear cache failed", "err", err)
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	snap, err := s.dash.Refresh(ctx)
	if err != nil {
		return errorResponse(c, http.StatusServiceUnavailable, err)
	}
	s.logger.Info("manual refresh", "cycle_id", snap.CycleID)
	return dataResponse(c, http.StatusOK, snap)
}

type healthStatus struct {
	Status         string `json:"status"`
	ExchangeActive *bool  `json:"exchange_active,omitempty"`
	TradingActive  *bool  `json:"trading_active,omitempty"`
	Error          string `json:"error,omitempty"`
}

func (s *Server) health(c echo.Context) error {
	if s.status == nil {
		return c.JSON(http.StatusOK, healthStatus{Status: "ok"})
	}
	st, err := s.status.GetExchangeStatus(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, healthStatus{Status: "degraded", Error: err.Error()})
	}
	return c.JSON(http.StatusOK, healthStatus{
		Status:         "ok",
		ExchangeActive: &st.ExchangeActive,
		TradingActive:  &st.TradingActive,
	})
}
