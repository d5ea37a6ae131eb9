// Package dashboard runs one render cycle of the election signal dashboard.
//
// A cycle discovers the House, Senate and combination markets, reads the
// generic ballot, derives fair values, selects a price per chamber and
// emits one signal per priced chamber. When credentials are configured it
// also loads the account portfolio, and it assembles price history for the
// direct markets and every combination leg.
//
// Every upstream call goes through an injected cache, so repeated cycles
// inside the cache lifetimes produce identical signals. Upstream failures
// never abort a cycle; they become Snapshot warnings.
package dashboard
