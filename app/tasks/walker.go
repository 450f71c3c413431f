package tasks

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lysyi3m/rss-pdf/app/export"
	"github.com/lysyi3m/rss-pdf/app/feed"
)

var errMissingID = errors.New("entry has no identifier")

// EntryExporter writes one entry and records it as seen.
type EntryExporter interface {
	Export(entry feed.Entry, feedTitle string) (string, error)
}

// ExportLocator reports where an already exported entry was written.
type ExportLocator interface {
	ExportPath(id string) (string, error)
}

type WalkResult struct {
	Total    int
	Exported int
	Skipped  int
	Failed   int
}

func (r *WalkResult) Add(other WalkResult) {
	r.Total += other.Total
	r.Exported += other.Exported
	r.Skipped += other.Skipped
	r.Failed += other.Failed
}

type Walker struct {
	exporter EntryExporter
	locator  ExportLocator
}

func NewWalker(exporter EntryExporter) *Walker {
	return &Walker{exporter: exporter}
}

// WithLocator makes skipped entries log the path of their earlier export.
func (w *Walker) WithLocator(locator ExportLocator) *Walker {
	w.locator = locator
	return w
}

// Walk exports every entry of f whose ID is not in seen, in feed order.
// Exported IDs are added to seen so repeats later in the run are skipped.
// IDs are not namespaced per feed: the same ID in two feeds counts as one
// entry. A failing entry is logged and the walk moves on.
func (w *Walker) Walk(ctx context.Context, f *feed.Feed, seen map[string]struct{}) (WalkResult, error) {
	result := WalkResult{Total: len(f.Entries)}

	for _, entry := range f.Entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if entry.ID == "" {
			slog.Warn("Failed to export entry", "feed", f.Title, "title", entry.Title, "error", errMissingID)
			result.Failed++
			continue
		}

		if _, ok := seen[entry.ID]; ok {
			attrs := []any{"feed", f.Title, "title", entry.Title}
			if path := w.exportPath(entry.ID); path != "" {
				attrs = append(attrs, "path", path)
			}
			slog.Info("Skipping already exported entry", attrs...)
			result.Skipped++
			continue
		}

		slog.Info("Found entry", "feed", f.Title, "title", entry.Title, "published", entry.Published)

		if _, err := w.exporter.Export(entry, f.Title); err != nil {
			level := slog.LevelError
			if errors.Is(err, export.ErrUnrecognizedDateFormat) {
				level = slog.LevelWarn
			}
			slog.Log(ctx, level, "Failed to export entry", "feed", f.Title, "id", entry.ID, "title", entry.Title, "error", err)
			result.Failed++
			continue
		}

		seen[entry.ID] = struct{}{}
		result.Exported++
	}

	return result, nil
}

func (w *Walker) exportPath(id string) string {
	if w.locator == nil {
		return ""
	}

	path, err := w.locator.ExportPath(id)
	if err != nil {
		slog.Debug("Failed to look up export path", "id", id, "error", err)
		return ""
	}
	return path
}
