// Package portfolio turns the authenticated Kalshi portfolio endpoints into
// display rows: balance, open positions with mark-to-market P&L, resting
// orders and settlement history.
//
// Amounts come back from the API in cents, and newer fields carry a
// _dollars twin as a decimal string; the dollar field wins when present.
package portfolio
