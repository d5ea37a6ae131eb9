// Package combo derives single-chamber control probabilities from the
// four mutually exclusive House/Senate combination markets.
//
// A combination ticker ends in -RR, -RD, -DR or -DD where the first letter
// is the House winner and the second the Senate winner. Summing the two
// legs that share a chamber outcome gives that chamber's marginal.
//
// Resolve is a pure function of its input; it does no I/O.
package combo
