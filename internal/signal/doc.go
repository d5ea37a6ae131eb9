// Package signal classifies the edge between a market price and a fair
// value into a recommendation.
//
// The two chambers use different bands and label sets. The House view is
// Democratic control, so a price above fair is a buy signal; the Senate
// view is Republican control and reads inverted with a tighter band.
package signal
