package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lysyi3m/rss-pdf/app/cfg"
	"github.com/lysyi3m/rss-pdf/app/database"
	"github.com/lysyi3m/rss-pdf/app/export"
	"github.com/lysyi3m/rss-pdf/app/feed"
	"github.com/lysyi3m/rss-pdf/app/ledger"
	"github.com/lysyi3m/rss-pdf/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting RSS PDF", "version", appCfg.Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, appCfg); err != nil {
		slog.Error("Startup failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg *cfg.Cfg) error {
	feedConfigs, err := loadFeedConfigs(appCfg)
	if err != nil {
		return err
	}
	slog.Info("Feeds loaded", "count", len(feedConfigs))

	store, closeStore, err := openLedger(appCfg)
	if err != nil {
		return err
	}
	defer closeStore()

	seen, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	slog.Info("Ledger loaded", "driver", appCfg.LedgerDriver, "entries", len(seen))

	exporter := export.NewExporter(appCfg.OutputDir, export.NewPDFRenderer(), store, export.Options{
		MaxNameLength: appCfg.MaxNameLength,
		LenientDates:  appCfg.LenientDates,
	})

	fetcher := feed.NewFetcher(&http.Client{}, appCfg.UserAgent)
	parser := feed.NewParser()
	filterer := feed.NewFilterer()
	contentExtractor := feed.NewContentExtractor()
	walker := tasks.NewWalker(exporter)
	if locator, ok := store.(tasks.ExportLocator); ok {
		walker.WithLocator(locator)
	}

	runner := tasks.NewRunner()
	for _, feedConfig := range feedConfigs {
		runner.Enqueue(tasks.NewExportFeedTask(feedConfig, fetcher, parser, filterer, contentExtractor, walker, seen, appCfg.FetchTimeout()))
	}

	summary := runner.Run(ctx)

	slog.Info("Run completed",
		"feeds", summary.Tasks,
		"feeds_failed", summary.Failed,
		"entries", summary.Entries.Total,
		"exported", summary.Entries.Exported,
		"skipped", summary.Entries.Skipped,
		"failed", summary.Entries.Failed)

	return nil
}

// loadFeedConfigs combines the plain source list with the optional YAML
// feed directory. The source list may only be missing when a feed
// directory is configured.
func loadFeedConfigs(appCfg *cfg.Cfg) ([]*feed.Config, error) {
	var feedConfigs []*feed.Config

	urls, err := feed.LoadSources(appCfg.FeedsFile)
	switch {
	case err == nil:
		feedConfigs = feed.SourceConfigs(urls)
	case errors.Is(err, fs.ErrNotExist) && appCfg.FeedsDir != "":
		slog.Warn("Feed list not found, using feed directory only", "file", appCfg.FeedsFile)
	default:
		return nil, err
	}

	configCache := feed.NewConfigCache(appCfg.FeedsDir)
	if err := configCache.Run(); err != nil {
		return nil, fmt.Errorf("failed to load feed configurations: %w", err)
	}

	if appCfg.FeedsDir != "" {
		slog.Info("Feed configurations loaded", "dir", appCfg.FeedsDir, "count", configCache.GetConfigCount())
	}

	return append(feedConfigs, configCache.GetEnabledConfigs()...), nil
}

func openLedger(appCfg *cfg.Cfg) (ledger.Ledger, func(), error) {
	if appCfg.LedgerDriver != cfg.LedgerDriverSQLite {
		slog.Debug("Using file ledger", "path", appCfg.LedgerFile)
		return ledger.NewFileLedger(appCfg.LedgerFile), func() {}, nil
	}

	db, err := database.NewConnection(appCfg.LedgerDB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to ledger database: %w", err)
	}

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	repo := database.NewLedgerRepository(db)
	count, err := repo.Count()
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	slog.Debug("Ledger database ready", "path", appCfg.LedgerDB, "version", version, "dirty", dirty, "rows", count)

	return repo, func() { db.Close() }, nil
}
