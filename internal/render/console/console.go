// Package console prints a dashboard snapshot as plain-text tables.
package console

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/rickgao/kalshi-signals/internal/dashboard"
	"github.com/rickgao/kalshi-signals/internal/model"
	"github.com/rickgao/kalshi-signals/internal/portfolio"
	"github.com/rickgao/kalshi-signals/internal/render"
)

// Console writes snapshots to an io.Writer.
type Console struct {
	out io.Writer
}

// New creates a Console that writes to stdout.
func New() *Console {
	return &Console{out: os.Stdout}
}

// NewWriter creates a Console that writes to w.
func NewWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// Render prints every section of snap.
func (c *Console) Render(snap *dashboard.Snapshot) error {
	if snap == nil {
		_, err := fmt.Fprintln(c.out, "no snapshot available")
		return err
	}

	c.printHeader(snap)
	c.printSignals(snap)
	c.printCombo(snap.Combo)
	c.printMarkets(snap.Markets)
	if snap.Portfolio != nil {
		c.printPortfolio(snap.Portfolio)
	}
	c.printHistory(snap)
	c.printWarnings(snap.Warnings)
	return nil
}

func (c *Console) printHeader(snap *dashboard.Snapshot) {
	fmt.Fprintf(c.out, "\nKalshi Election Signals  [%s]  cycle %s\n", render.Timestamp(snap.GeneratedAt), snap.CycleID)
	fmt.Fprintf(c.out, "  Generic ballot: %s\n", render.Ballot(snap.Polls))

	for _, ch := range []model.Chamber{model.House, model.Senate} {
		price, edge := render.NA, render.NA
		if s, ok := snap.Signal(ch); ok {
			price = render.Percent(s.MarketPct)
			edge = render.Edge(s.Edge)
		}
		fair := snap.Fair.House
		if ch == model.Senate {
			fair = snap.Fair.Senate
		}
		fmt.Fprintf(c.out, "  %-6s  market %-7s fair %-7s edge %s\n", ch.Title(), price, render.Percent(fair), edge)
	}
	fmt.Fprintln(c.out)
}

func (c *Console) printSignals(snap *dashboard.Snapshot) {
	fmt.Fprintln(c.out, "Signals")
	if len(snap.Signals) == 0 {
		fmt.Fprintln(c.out, "  No signals: no market price available.")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Market", "Market %", "Source", "Fair %", "Edge", "Signal")
	for _, s := range snap.Signals {
		table.Append(
			s.Market,
			render.Percent(s.MarketPct),
			s.Source,
			render.Percent(s.FairPct),
			render.Edge(s.Edge),
			s.Recommendation,
		)
	}
	table.Render()
}

func (c *Console) printCombo(v *dashboard.ComboView) {
	fmt.Fprintln(c.out, "\nBalance of Power (combo)")
	if v == nil {
		fmt.Fprintln(c.out, "  Combo data unavailable.")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Outcome", "Code", "Price")
	for _, leg := range v.Legs {
		table.Append(leg.Label, leg.Code, render.Percent(leg.Percent))
	}
	table.Render()

	fmt.Fprintf(c.out, "  Implied: Dem House %s | Rep House %s | Rep Senate %s | Dem Senate %s\n",
		render.Percent(v.DemHouse), render.Percent(v.RepHouse),
		render.Percent(v.RepSenate), render.Percent(v.DemSenate))
	fmt.Fprintf(c.out, "  Legs total %s (drift %.1f)\n", render.Percent(v.Total), v.Drift)
}

func (c *Console) printMarkets(rows []dashboard.MarketRow) {
	fmt.Fprintln(c.out, "\nDirect Markets")
	if len(rows) == 0 {
		fmt.Fprintln(c.out, "  No open control markets.")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Chamber", "Ticker", "Title", "Price", "Volume")
	for _, r := range rows {
		price := render.NA
		if r.HasPrice {
			price = render.Percent(r.Percent)
		}
		table.Append(r.Chamber.Title(), r.Ticker, r.Title, price, render.Volume(r.Volume))
	}
	table.Render()
}

func (c *Console) printPortfolio(p *dashboard.Portfolio) {
	fmt.Fprintln(c.out, "\nPortfolio")
	if p.Balance != nil {
		fmt.Fprintf(c.out, "  Cash %s | Portfolio value %s\n",
			portfolio.USD(p.Balance.Cash), portfolio.USD(p.Balance.PortfolioValue))
	}

	if len(p.Positions) == 0 {
		fmt.Fprintln(c.out, "  No open positions.")
	} else {
		table := tablewriter.NewWriter(c.out)
		table.Header("Ticker", "Side", "Contracts", "Price", "Exposure", "Unrealized", "Realized", "Fees", "Total")
		for _, pos := range p.Positions {
			price := render.NA
			if pos.HasPrice {
				price = render.Percent(pos.MarketPct)
			}
			table.Append(
				pos.Ticker,
				pos.Side,
				strconv.FormatInt(pos.Contracts, 10),
				price,
				portfolio.USD(pos.Exposure),
				portfolio.OptionalSignedUSD(pos.Unrealized),
				portfolio.SignedUSD(pos.Realized),
				portfolio.USD(pos.Fees),
				portfolio.OptionalSignedUSD(pos.Total),
			)
		}
		table.Render()
	}

	if len(p.Orders) > 0 {
		fmt.Fprintln(c.out, "  Resting orders")
		table := tablewriter.NewWriter(c.out)
		table.Header("Ticker", "Side", "Action", "Price", "Remaining", "Created")
		for _, o := range p.Orders {
			table.Append(o.Ticker, o.Side, o.Action, o.Price, o.Remaining, o.Created)
		}
		table.Render()
	}

	if len(p.Settlements) > 0 {
		fmt.Fprintln(c.out, "  Settlements")
		table := tablewriter.NewWriter(c.out)
		table.Header("Ticker", "Result", "Yes", "No", "Revenue", "Cost", "Net", "Settled")
		for _, s := range p.Settlements {
			table.Append(
				s.Ticker,
				s.Result,
				strconv.FormatInt(s.YesCount, 10),
				strconv.FormatInt(s.NoCount, 10),
				portfolio.USD(s.Revenue),
				portfolio.USD(s.Cost),
				portfolio.SignedUSD(s.Net),
				s.Settled,
			)
		}
		table.Render()
	}
}

func (c *Console) printHistory(snap *dashboard.Snapshot) {
	fmt.Fprintf(c.out, "\nPrice History (%s)\n", snap.Range)
	if len(snap.History) == 0 {
		fmt.Fprintln(c.out, "  No candlestick data available for the selected range.")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Series", "Ticker", "Points", "Last", "Change", "Low", "High", "Volume")
	for _, s := range snap.History {
		last, _ := s.Last()
		lo, hi := s.Bounds()
		table.Append(
			s.Label,
			s.Ticker,
			strconv.Itoa(len(s.Points)),
			render.Percent(last),
			render.Points(s.Change()),
			render.Percent(lo),
			render.Percent(hi),
			render.Volume(s.Volume()),
		)
	}
	table.Render()
}

func (c *Console) printWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(c.out, "\nWarnings")
	for _, w := range warnings {
		fmt.Fprintf(c.out, "  ! %s\n", w)
	}
}
