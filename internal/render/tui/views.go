package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rickgao/kalshi-signals/internal/dashboard"
	"github.com/rickgao/kalshi-signals/internal/model"
	"github.com/rickgao/kalshi-signals/internal/portfolio"
	"github.com/rickgao/kalshi-signals/internal/render"
)

const keyHelp = "[gray]r[-] refresh (clears cache)  [gray]q[-] quit"

// views holds every widget. Its methods must run on the UI goroutine.
type views struct {
	summary   *tview.TextView
	signals   *tview.Table
	combo     *tview.Table
	markets   *tview.Table
	portfolio *tview.Table
	history   *tview.Table
	status    *tview.TextView
}

func newViews() *views {
	return &views{
		summary:   newText(" Kalshi Election Signals "),
		signals:   newTable(" Signals "),
		combo:     newTable(" Balance of Power "),
		markets:   newTable(" Direct Markets "),
		portfolio: newTable(" Portfolio "),
		history:   newTable(" Price History "),
		status:    newText(" Status ").SetText(keyHelp),
	}
}

func newText(title string) *tview.TextView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	tv.SetTitle(title).SetBorder(true)
	return tv
}

func newTable(title string) *tview.Table {
	table := tview.NewTable().
		SetBorders(false).
		SetFixed(1, 0)
	table.SetTitle(title).SetBorder(true)
	return table
}

// fill replaces the table contents with a header row and data rows.
func fill(table *tview.Table, headers []string, rows [][]string) {
	table.Clear()
	for col, h := range headers {
		table.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(tview.Styles.SecondaryTextColor).
			SetAlign(tview.AlignLeft).
			SetSelectable(false).
			SetExpansion(1))
	}
	for i, row := range rows {
		for col, text := range row {
			table.SetCell(i+1, col, tview.NewTableCell(text).
				SetAlign(tview.AlignLeft).
				SetExpansion(1))
		}
	}
}

func (v *views) setStatus(text string) {
	v.status.SetText(text + "  " + keyHelp)
}

func (v *views) show(snap *dashboard.Snapshot) {
	v.showSummary(snap)
	v.showSignals(snap.Signals)
	v.showCombo(snap.Combo)
	v.showMarkets(snap.Markets)
	v.showPortfolio(snap.Portfolio)
	v.showHistory(snap)

	status := fmt.Sprintf("updated %s", render.Timestamp(snap.GeneratedAt))
	if n := len(snap.Warnings); n > 0 {
		status += fmt.Sprintf("  [orange]%d warning(s): %s[-]", n, strings.Join(snap.Warnings, "; "))
	}
	v.setStatus(status)
}

func (v *views) showSummary(snap *dashboard.Snapshot) {
	var b strings.Builder
	fmt.Fprintf(&b, "Generic ballot %s\n", render.Ballot(snap.Polls))
	for _, ch := range []model.Chamber{model.House, model.Senate} {
		fair := snap.Fair.House
		if ch == model.Senate {
			fair = snap.Fair.Senate
		}
		if s, ok := snap.Signal(ch); ok {
			fmt.Fprintf(&b, "%-6s market %s  fair %s  edge [%s]%s %s[-]\n",
				ch.Title(), render.Percent(s.MarketPct), render.Percent(fair),
				toneColor(s), render.Edge(s.Edge), s.Recommendation)
		} else {
			fmt.Fprintf(&b, "%-6s market %s  fair %s\n", ch.Title(), render.NA, render.Percent(fair))
		}
	}
	v.summary.SetText(b.String())
}

func toneColor(s model.Signal) string {
	switch render.Tone(s) {
	case 1:
		return "green"
	case -1:
		return "red"
	}
	return "white"
}

func (v *views) showSignals(signals []model.Signal) {
	rows := make([][]string, 0, len(signals))
	for _, s := range signals {
		rows = append(rows, []string{s.Market, render.Percent(s.MarketPct), s.Source, render.Percent(s.FairPct), render.Edge(s.Edge), s.Recommendation})
	}
	fill(v.signals, []string{"Market", "Market %", "Source", "Fair %", "Edge", "Signal"}, rows)

	for i, s := range signals {
		color := tcell.ColorWhite
		switch render.Tone(s) {
		case 1:
			color = tcell.ColorGreen
		case -1:
			color = tcell.ColorRed
		}
		v.signals.GetCell(i+1, 5).SetTextColor(color)
	}
}

func (v *views) showCombo(c *dashboard.ComboView) {
	if c == nil {
		fill(v.combo, []string{"Combo data unavailable"}, nil)
		return
	}
	rows := make([][]string, 0, len(c.Legs)+1)
	for _, leg := range c.Legs {
		rows = append(rows, []string{leg.Label, leg.Code, render.Percent(leg.Percent)})
	}
	rows = append(rows, []string{"Legs total", "", render.Percent(c.Total)})
	fill(v.combo, []string{"Outcome", "Code", "Price"}, rows)
	v.combo.SetTitle(fmt.Sprintf(" Balance of Power (Dem House %s, Rep Senate %s) ",
		render.Percent(c.DemHouse), render.Percent(c.RepSenate)))
}

func (v *views) showMarkets(markets []dashboard.MarketRow) {
	rows := make([][]string, 0, len(markets))
	for _, m := range markets {
		price := render.NA
		if m.HasPrice {
			price = render.Percent(m.Percent)
		}
		rows = append(rows, []string{m.Chamber.Title(), m.Ticker, price, render.Volume(m.Volume)})
	}
	fill(v.markets, []string{"Chamber", "Ticker", "Price", "Volume"}, rows)
}

func (v *views) showPortfolio(p *dashboard.Portfolio) {
	if p == nil {
		fill(v.portfolio, []string{"Portfolio disabled (no credentials)"}, nil)
		v.portfolio.SetTitle(" Portfolio ")
		return
	}
	rows := make([][]string, 0, len(p.Positions))
	for _, pos := range p.Positions {
		rows = append(rows, []string{
			pos.Ticker,
			pos.Side,
			strconv.FormatInt(pos.Contracts, 10),
			portfolio.OptionalSignedUSD(pos.Unrealized),
			portfolio.OptionalSignedUSD(pos.Total),
		})
	}
	fill(v.portfolio, []string{"Ticker", "Side", "Qty", "Unrealized", "Total"}, rows)

	title := fmt.Sprintf(" Portfolio (%d orders) ", len(p.Orders))
	if p.Balance != nil {
		title = fmt.Sprintf(" Portfolio: cash %s, value %s, %d orders ",
			portfolio.USD(p.Balance.Cash), portfolio.USD(p.Balance.PortfolioValue), len(p.Orders))
	}
	v.portfolio.SetTitle(title)
}

func (v *views) showHistory(snap *dashboard.Snapshot) {
	rows := make([][]string, 0, len(snap.History))
	for _, s := range snap.History {
		last := render.NA
		if l, ok := s.Last(); ok {
			last = render.Percent(l)
		}
		rows = append(rows, []string{s.Label, last, render.Points(s.Change()), strconv.Itoa(len(s.Points))})
	}
	fill(v.history, []string{"Series", "Last", "Change", "Points"}, rows)
	v.history.SetTitle(fmt.Sprintf(" Price History (%s) ", snap.Range))
}
