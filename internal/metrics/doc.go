// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Upstream fetch errors by source (markets, polls, candles, portfolio)
//   - Cache hits and misses by operation
//   - Refresh cycle duration
//   - Current market price, fair value and edge per control market
//   - Signals emitted by recommendation
//
// Metrics live on a dedicated registry served at /metrics by the web server.
package metrics
