package market

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/kalshi-signals/internal/model"
)

// Series names the three market families to discover.
type Series struct {
	House  string
	Senate string
	Combo  string
}

// Set is the result of one discovery pass.
type Set struct {
	House  []model.Quote `json:"house"`
	Senate []model.Quote `json:"senate"`
	Combo  []model.Quote `json:"combo"`
}

// All returns every quote in the set, House first.
func (s Set) All() []model.Quote {
	out := make([]model.Quote, 0, len(s.House)+len(s.Senate)+len(s.Combo))
	out = append(out, s.House...)
	out = append(out, s.Senate...)
	return append(out, s.Combo...)
}

// Lookup finds a quote by exact ticker across all three families.
func (s Set) Lookup(ticker string) (model.Quote, bool) {
	for _, q := range s.All() {
		if strings.EqualFold(q.Ticker, ticker) {
			return q, true
		}
	}
	return model.Quote{}, false
}

// Len returns the total number of quotes.
func (s Set) Len() int {
	return len(s.House) + len(s.Senate) + len(s.Combo)
}

// FindBySuffix returns the first quote whose ticker ends with suffix.
func FindBySuffix(quotes []model.Quote, suffix string) (model.Quote, bool) {
	for _, q := range quotes {
		if q.HasSuffix(suffix) {
			return q, true
		}
	}
	return model.Quote{}, false
}

// Lister fetches the open markets of one series.
type Lister interface {
	OpenMarkets(ctx context.Context, series string) ([]model.Quote, error)
}

// SeriesError records a discovery failure for one series.
type SeriesError struct {
	Series string
	Err    error
}

func (e *SeriesError) Error() string {
	return fmt.Sprintf("list %s markets: %v", e.Series, e.Err)
}

func (e *SeriesError) Unwrap() error { return e.Err }

// Discover lists the three series concurrently. A failed series leaves its
// slice empty and is reported in errs; it never fails the other two.
// An empty series name is skipped. Errors come back in House, Senate, Combo
// order regardless of which call finishes first.
func Discover(ctx context.Context, l Lister, series Series) (Set, []error) {
	var (
		set Set
		g   errgroup.Group
	)

	targets := []struct {
		name string
		dst  *[]model.Quote
	}{
		{series.House, &set.House},
		{series.Senate, &set.Senate},
		{series.Combo, &set.Combo},
	}
	failed := make([]error, len(targets))
	for i, t := range targets {
		if t.name == "" {
			continue
		}
		g.Go(func() error {
			quotes, err := l.OpenMarkets(ctx, t.name)
			if err != nil {
				failed[i] = &SeriesError{Series: t.name, Err: err}
				return nil
			}
			*t.dst = quotes
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, err := range failed {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return set, errs
}
