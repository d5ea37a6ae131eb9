// Package polls scrapes the generic congressional ballot from
// RealClearPolling.
//
// The page layout changes often, so extraction is deliberately loose: every
// td, div, span and p whose text mentions a party and a percent sign is
// tried against one pattern, then the whole body text. When nothing matches
// or the fetch fails, callers fall back to a fixed pair.
package polls
