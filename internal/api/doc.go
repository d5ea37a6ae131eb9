// Package api provides the Kalshi REST client used by the dashboard.
//
// REST endpoints:
//   - Production: https://api.elections.kalshi.com/trade-api/v2
//   - Demo: https://demo-api.kalshi.co/trade-api/v2
//
// Market listing, single markets, candlesticks and exchange status are
// public. Portfolio endpoints (balance, positions, orders, settlements)
// require a Signer and return ErrUnauthenticated without one.
//
// Price fields are decoded with FlexString because the API has sent them
// both as JSON strings and as numbers.
package api
