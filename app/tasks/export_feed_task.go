package tasks

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/rss-pdf/app/feed"
)

type ExportFeedTask struct {
	Task
	FeedConfig       *feed.Config
	fetcher          *feed.Fetcher
	parser           *feed.Parser
	filterer         *feed.Filterer
	contentExtractor *feed.ContentExtractor
	walker           *Walker
	seen             map[string]struct{}
	timeout          time.Duration
	result           WalkResult
}

func NewExportFeedTask(feedConfig *feed.Config, fetcher *feed.Fetcher, parser *feed.Parser, filterer *feed.Filterer, contentExtractor *feed.ContentExtractor, walker *Walker, seen map[string]struct{}, defaultTimeout time.Duration) *ExportFeedTask {
	timeout := defaultTimeout
	if feedConfig.Settings.Timeout > 0 {
		timeout = time.Duration(feedConfig.Settings.Timeout) * time.Second
	}

	return &ExportFeedTask{
		Task:             NewTask(TaskTypeExportFeed, feedConfig.Name),
		FeedConfig:       feedConfig,
		fetcher:          fetcher,
		parser:           parser,
		filterer:         filterer,
		contentExtractor: contentExtractor,
		walker:           walker,
		seen:             seen,
		timeout:          timeout,
	}
}

func (t *ExportFeedTask) Result() WalkResult {
	return t.result
}

func (t *ExportFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.FeedConfig.Settings.IsEnabled() {
		slog.Debug("Feed disabled, skipping", "feed", t.FeedName)
		return nil
	}

	slog.Info("Fetching entries for feed", "feed", t.FeedConfig.URL)

	data, err := t.fetcher.Fetch(ctx, t.FeedConfig.URL, t.timeout)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	parsed, err := t.parser.Run(data)
	if err != nil {
		return fmt.Errorf("failed to parse feed: %w", err)
	}

	if len(parsed.Entries) == 0 {
		slog.Info("Feed has no entries", "feed", t.FeedConfig.URL)
		return nil
	}

	// Content filters need the extracted text.
	if t.FeedConfig.Settings.ExtractContent && t.contentExtractor != nil {
		t.extractContent(ctx, parsed)
	}

	filtered := t.filterEntries(parsed)

	result, err := t.walker.Walk(ctx, parsed, t.seen)
	result.Total += filtered
	result.Skipped += filtered
	t.result = result
	if err != nil {
		return err
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"feed", cmp.Or(parsed.Title, t.FeedName),
		"duration", t.GetDuration(),
		"total", result.Total,
		"exported", result.Exported,
		"skipped", result.Skipped,
		"failed", result.Failed)

	return nil
}

// filterEntries drops entries rejected by the feed's filters and returns
// how many were dropped.
func (t *ExportFeedTask) filterEntries(f *feed.Feed) int {
	if len(t.FeedConfig.Filters) == 0 {
		return 0
	}

	kept := f.Entries[:0]
	for _, entry := range f.Entries {
		if ok, reason := t.filterer.Match(entry, t.FeedConfig); !ok {
			slog.Debug("Entry filtered", "feed", f.Title, "title", entry.Title, "reason", reason)
			continue
		}
		kept = append(kept, entry)
	}

	dropped := len(f.Entries) - len(kept)
	f.Entries = kept
	return dropped
}

// extractContent attaches article text to entries that will be exported.
// Failures only lose the extra text.
func (t *ExportFeedTask) extractContent(ctx context.Context, f *feed.Feed) {
	for i := range f.Entries {
		entry := &f.Entries[i]
		if _, ok := t.seen[entry.ID]; ok || entry.Link == "" {
			continue
		}

		data, err := t.fetcher.FetchHTML(ctx, entry.Link, t.timeout)
		if err != nil {
			slog.Warn("Failed to fetch article content", "url", entry.Link, "error", err)
			continue
		}

		content, err := t.contentExtractor.Run(data)
		if err != nil {
			slog.Warn("Failed to extract article content", "url", entry.Link, "error", err)
			continue
		}

		entry.Content = content
	}
}
