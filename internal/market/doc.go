// Package market holds the set of open election markets discovered each
// refresh and chooses, per chamber, which price source to trust.
//
// Discovery lists open markets for three series: direct House control,
// direct Senate control, and the four-leg balance-of-power combination.
// Selection prefers a direct market whose ticker ends in the party-of-interest
// suffix and falls back to the combination-implied marginal.
package market
