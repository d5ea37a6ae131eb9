// Package model defines shared data types used across the signals dashboard.
//
// Conventions:
//   - Percentages: float64 in [0, 100], one decimal place for market prices
//   - Money: float64 dollars once converted from the API's cents or dollar strings
//   - Tickers: upper-case strings as returned by Kalshi
package model
