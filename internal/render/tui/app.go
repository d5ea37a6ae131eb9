// Package tui provides the interactive terminal dashboard.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rickgao/kalshi-signals/internal/dashboard"
	"github.com/rickgao/kalshi-signals/internal/refresher"
)

// Dashboard computes snapshots.
type Dashboard interface {
	Refresh(ctx context.Context) (*dashboard.Snapshot, error)
	ClearCache(ctx context.Context) error
}

// App is the main TUI application.
type App struct {
	app    *tview.Application
	layout *tview.Flex
	views  *views

	dash      Dashboard
	refresher *refresher.Refresher
	logger    *slog.Logger

	// State
	mu   sync.Mutex
	last *dashboard.Snapshot
}

// NewApp creates a TUI that refreshes dash on cfg.Interval.
func NewApp(dash Dashboard, cfg refresher.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		app:    tview.NewApplication(),
		views:  newViews(),
		dash:   dash,
		logger: logger,
	}
	a.refresher = refresher.New(cfg, a.cycle, logger)

	a.setupLayout()
	a.setupKeyboard()
	return a
}

// setupLayout stacks the summary over two columns of tables.
func (a *App) setupLayout() {
	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.views.signals, 0, 1, false).
		AddItem(a.views.combo, 0, 1, false).
		AddItem(a.views.markets, 0, 1, false)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.views.portfolio, 0, 1, false).
		AddItem(a.views.history, 0, 1, false)

	a.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.views.summary, 5, 0, false).
		AddItem(tview.NewFlex().
			AddItem(left, 0, 3, false).
			AddItem(right, 0, 2, false), 0, 1, false).
		AddItem(a.views.status, 3, 0, false)

	a.app.SetRoot(a.layout, true)
}

// setupKeyboard binds q to quit and r to a cache-clearing refresh.
func (a *App) setupKeyboard() {
	a.app.SetInputCapture(a.handleKey)
}

func (a *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyCtrlC:
		a.app.Stop()
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q', 'Q':
			a.app.Stop()
			return nil
		case 'r', 'R':
			go a.manualRefresh()
			return nil
		}
	}
	return event
}

// Run starts the refresh loop and the TUI (blocking).
func (a *App) Run(ctx context.Context) error {
	if err := a.refresher.Start(ctx); err != nil {
		return fmt.Errorf("start refresher: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.refresher.Stop(stopCtx); err != nil {
			a.logger.Warn("refresher stop", "err", err)
		}
	}()

	go func() {
		<-ctx.Done()
		a.app.Stop()
	}()

	if err := a.app.Run(); err != nil {
		return fmt.Errorf("app run failed: %w", err)
	}
	return nil
}

// Last returns the most recently displayed snapshot.
func (a *App) Last() *dashboard.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

// cycle is the refresher callback.
func (a *App) cycle(ctx context.Context) error {
	a.app.QueueUpdateDraw(func() {
		a.views.setStatus("[yellow]refreshing...[-]")
	})

	snap, err := a.dash.Refresh(ctx)
	if err != nil {
		a.app.QueueUpdateDraw(func() {
			a.views.setStatus(fmt.Sprintf("[red]refresh failed: %v[-]", err))
		})
		return err
	}

	a.mu.Lock()
	a.last = snap
	a.mu.Unlock()

	a.app.QueueUpdateDraw(func() {
		a.views.show(snap)
	})
	return nil
}

// manualRefresh drops the cache and asks for an immediate cycle.
func (a *App) manualRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.dash.ClearCache(ctx); err != nil {
		a.logger.Warn("clear cache failed", "err", err)
	}
	a.refresher.Trigger()
}
