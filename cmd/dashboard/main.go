package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rickgao/kalshi-signals/internal/api"
	"github.com/rickgao/kalshi-signals/internal/auth"
	"github.com/rickgao/kalshi-signals/internal/cache"
	"github.com/rickgao/kalshi-signals/internal/config"
	"github.com/rickgao/kalshi-signals/internal/dashboard"
	"github.com/rickgao/kalshi-signals/internal/fairvalue"
	"github.com/rickgao/kalshi-signals/internal/history"
	"github.com/rickgao/kalshi-signals/internal/market"
	"github.com/rickgao/kalshi-signals/internal/metrics"
	"github.com/rickgao/kalshi-signals/internal/polls"
	"github.com/rickgao/kalshi-signals/internal/refresher"
	"github.com/rickgao/kalshi-signals/internal/render/console"
	"github.com/rickgao/kalshi-signals/internal/render/tui"
	"github.com/rickgao/kalshi-signals/internal/render/web"
	"github.com/rickgao/kalshi-signals/internal/version"
)

const (
	modeOnce  = "once"
	modeServe = "serve"
	modeTUI   = "tui"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults and environment when empty)")
	mode := flag.String("mode", modeOnce, "output mode: once, serve or tui")
	rangeFlag := flag.String("range", "", "price history range: 1W, 1M, 3M, 6M or All")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	logFile := flag.String("log-file", "", "write logs to this file instead of stdout")
	flag.Parse()

	if err := run(*configPath, *mode, *rangeFlag, *logFile, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(configPath, mode, rangeFlag, logFile string, verbose bool) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if rangeFlag != "" {
		cfg.History.Range = rangeFlag
	}
	rng, err := history.ParseRange(cfg.History.Range)
	if err != nil {
		return err
	}

	logOut, closeLog, err := logWriter(mode, logFile)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := setupLogger(cfg.Log, logOut)

	logger.Info("starting dashboard",
		"version", version.String(),
		"mode", mode,
		"config", configPath,
	)

	// Create context with cancellation
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	recorder := metrics.New()

	store, err := newStore(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	var c *cache.Cache
	if store != nil {
		if closer, ok := store.(io.Closer); ok {
			defer closer.Close()
		}
		c = cache.New(store, cache.WithObserver(recorder), cache.WithLogger(logger))
	}

	creds := credentials(cfg.Auth, logger)

	opts := []api.ClientOption{
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, time.Second),
		api.WithLogger(logger),
		api.WithUserAgent(version.UserAgent()),
	}
	if cfg.API.RatePerSecond > 0 {
		opts = append(opts, api.WithRateLimit(cfg.API.RatePerSecond, cfg.API.RateBurst))
	}
	if creds != nil {
		opts = append(opts, api.WithSigner(creds))
	}
	client := api.NewClient(cfg.API.RestURL, opts...)
	source := dashboard.NewKalshiSource(client, cfg.Series.MarketLimit)

	scraper := polls.NewScraper(
		polls.WithURL(cfg.Polls.URL),
		polls.WithTimeout(cfg.Polls.Timeout),
		polls.WithLogger(logger),
	)

	svcOpts := []dashboard.Option{
		dashboard.WithPolls(scraper),
		dashboard.WithCache(c),
		dashboard.WithRecorder(recorder),
		dashboard.WithLogger(logger),
	}
	if client.Authenticated() {
		svcOpts = append(svcOpts, dashboard.WithPortfolio(client))
	}
	svc := dashboard.New(dashboardConfig(cfg, rng), source, svcOpts...)

	switch mode {
	case modeOnce:
		refreshCtx, cancelRefresh := context.WithTimeout(ctx, cfg.Refresh.Timeout)
		defer cancelRefresh()
		snap, err := svc.Refresh(refreshCtx)
		if err != nil {
			return fmt.Errorf("refresh: %w", err)
		}
		return console.New().Render(snap)

	case modeServe:
		return serve(ctx, cfg, svc, client, recorder, logger)

	case modeTUI:
		app := tui.NewApp(svc, refresher.Config{
			Interval: cfg.Refresh.Interval,
			Timeout:  cfg.Refresh.Timeout,
		}, logger)
		return app.Run(ctx)
	}
	return fmt.Errorf("unknown mode %q", mode)
}

// serve runs the web dashboard and keeps the cache warm until ctx is done.
func serve(ctx context.Context, cfg *config.Config, svc *dashboard.Service, client *api.Client, recorder *metrics.Recorder, logger *slog.Logger) error {
	warm := refresher.New(refresher.Config{
		Interval: cfg.Refresh.Interval,
		Timeout:  cfg.Refresh.Timeout,
	}, func(ctx context.Context) error {
		_, err := svc.Refresh(ctx)
		return err
	}, logger)

	server := web.NewServer(web.Config{
		Addr:            cfg.Server.Addr,
		RefreshInterval: cfg.Refresh.Interval,
	}, svc,
		web.WithStatus(client),
		web.WithMetrics(recorder.Handler()),
		web.WithLogger(logger),
	)

	if err := warm.Start(ctx); err != nil {
		return err
	}
	if err := server.Start(); err != nil {
		return err
	}
	logger.Info("dashboard running", "url", fmt.Sprintf("http://localhost%s/", cfg.Server.Addr))

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	return warm.Stop(shutdownCtx)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadFromEnv()
	}
	return config.LoadAndValidate(path)
}

// credentials returns nil when no usable key is configured. A bad key only
// disables the portfolio section.
func credentials(a config.AuthConfig, logger *slog.Logger) *auth.Credentials {
	creds, err := loadCredentials(a)
	switch {
	case errors.Is(err, auth.ErrNoCredentials):
		logger.Warn("Kalshi API keys not configured; portfolio disabled")
		return nil
	case err != nil:
		logger.Warn("Kalshi API keys unusable; portfolio disabled", "err", err)
		return nil
	}
	return creds
}

func loadCredentials(a config.AuthConfig) (*auth.Credentials, error) {
	if a.PrivateKeyPath != "" && a.KeyID != "" {
		return auth.LoadCredentials(a.KeyID, a.PrivateKeyPath)
	}
	return auth.FromEnv(a.KeyID, a.PrivateKey)
}

func newStore(ctx context.Context, c config.CacheConfig) (cache.Store, error) {
	switch c.Backend {
	case "none":
		return nil, nil
	case "redis":
		store, err := cache.DialRedis(ctx, cache.RedisConfig{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
			Prefix:   c.Redis.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		return store, nil
	}
	return cache.NewMemoryStore(), nil
}

func dashboardConfig(cfg *config.Config, rng history.Range) dashboard.Config {
	return dashboard.Config{
		Series: market.Series{
			House:  cfg.Series.House,
			Senate: cfg.Series.Senate,
			Combo:  cfg.Series.Combo,
		},
		HouseParty:  cfg.Model.HouseParty,
		SenateParty: cfg.Model.SenateParty,
		Model: fairvalue.Model{
			Sensitivity: cfg.Model.Sensitivity,
			Floor:       cfg.Model.Floor,
			Ceiling:     cfg.Model.Ceiling,
			SenateFair:  cfg.Model.SenateFair,
		},
		Fallback:       polls.Fallback(cfg.Polls.FallbackDem, cfg.Polls.FallbackRep),
		DriftTolerance: cfg.Model.ComboDriftTolerance,
		TTL: dashboard.TTLs{
			Markets:     cfg.Cache.TTL.Markets,
			MarketPrice: cfg.Cache.TTL.MarketPrice,
			Candles:     cfg.Cache.TTL.Candles,
			Polls:       cfg.Cache.TTL.Polls,
			Portfolio:   cfg.Cache.TTL.Portfolio,
			Settlements: cfg.Cache.TTL.Settlements,
		},
		Range:          rng,
		PortfolioLimit: 100,
	}
}

// logWriter picks the log destination. The TUI owns the terminal, so it
// logs nowhere unless a file is given.
func logWriter(mode, path string) (io.Writer, func(), error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return f, func() { f.Close() }, nil
	}
	if mode == modeTUI {
		return io.Discard, func() {}, nil
	}
	return os.Stdout, func() {}, nil
}

func setupLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
