// Package refresher drives the dashboard refresh cycle.
//
// The Refresher:
//   - Runs one cycle immediately on Start, then on a fixed interval
//   - Accepts manual triggers that coalesce while a cycle is pending
//   - Never runs two cycles at once
package refresher
