package export

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/lysyi3m/rss-pdf/app/feed"
)

const untitledFeed = "untitled"

var ErrExportIO = errors.New("export I/O failure")

// ExportIOError wraps a filesystem or rendering failure for one entry.
type ExportIOError struct {
	Op   string
	Path string
	Err  error
}

func (e *ExportIOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ExportIOError) Unwrap() []error {
	return []error{ErrExportIO, e.Err}
}

// Recorder persists the IDs of exported entries.
type Recorder interface {
	RecordSeen(id string) error
}

// ExportRecorder is a Recorder that also keeps where a document went.
type ExportRecorder interface {
	Recorder
	RecordExport(id, feedTitle, path string) error
}

type Options struct {
	MaxNameLength int
	LenientDates  bool
}

type Exporter struct {
	root          string
	maxNameLength int
	dates         DateNormalizer
	renderer      Renderer
	recorder      Recorder
}

func NewExporter(root string, renderer Renderer, recorder Recorder, opts Options) *Exporter {
	if opts.MaxNameLength <= 0 {
		opts.MaxNameLength = DefaultMaxNameLength
	}
	return &Exporter{
		root:          root,
		maxNameLength: opts.MaxNameLength,
		dates:         DateNormalizer{Lenient: opts.LenientDates},
		renderer:      renderer,
		recorder:      recorder,
	}
}

// Path returns the destination of entry without touching the filesystem.
func (e *Exporter) Path(entry feed.Entry, feedTitle string) (string, error) {
	published, err := e.dates.Parse(entry.Published)
	if err != nil {
		return "", err
	}

	feedDir := Sanitize(feedTitle, e.maxNameLength)
	if feedDir == "" {
		feedDir = untitledFeed
	}

	name := fmt.Sprintf("%s - %s.pdf", published.Format("2006-01-02"), Sanitize(entry.Title, e.maxNameLength))
	return filepath.Join(e.root, feedDir, published.Format("2006"), name), nil
}

// Export writes entry to its PDF path and then records its ID. The ID is
// only recorded once the document is in place under its final name.
func (e *Exporter) Export(entry feed.Entry, feedTitle string) (string, error) {
	path, err := e.Path(entry, feedTitle)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path for %q: %w", entry.Title, err)
	}

	size, err := e.write(path, e.document(entry))
	if err != nil {
		return "", err
	}

	if err := e.record(entry.ID, feedTitle, path); err != nil {
		return path, fmt.Errorf("failed to record exported entry %s: %w", entry.ID, err)
	}

	slog.Info("Exported entry", "title", entry.Title, "path", path, "size", humanize.Bytes(uint64(size)))
	return path, nil
}

func (e *Exporter) record(id, feedTitle, path string) error {
	if r, ok := e.recorder.(ExportRecorder); ok {
		return r.RecordExport(id, feedTitle, path)
	}
	return e.recorder.RecordSeen(id)
}

func (e *Exporter) document(entry feed.Entry) Document {
	doc := Document{
		Title: entry.Title,
		Blocks: []string{
			"Title: " + entry.Title,
			"Link: " + entry.Link,
			"Published: " + entry.Published,
			"Description: " + entry.Description,
		},
	}
	if entry.Content != "" {
		doc.Blocks = append(doc.Blocks, "Content: "+entry.Content)
	}
	return doc
}

// write renders into a temp file next to path and renames it into place.
func (e *Exporter) write(path string, doc Document) (int64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, &ExportIOError{Op: "create directory", Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".export-*.pdf.tmp")
	if err != nil {
		return 0, &ExportIOError{Op: "create file in", Path: dir, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := e.renderer.Render(tmp, doc); err != nil {
		tmp.Close()
		return 0, &ExportIOError{Op: "render", Path: path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return 0, &ExportIOError{Op: "sync", Path: tmpName, Err: err}
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return 0, &ExportIOError{Op: "chmod", Path: tmpName, Err: err}
	}
	info, err := tmp.Stat()
	if err != nil {
		tmp.Close()
		return 0, &ExportIOError{Op: "stat", Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return 0, &ExportIOError{Op: "close", Path: tmpName, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return 0, &ExportIOError{Op: "write", Path: path, Err: err}
	}

	return info.Size(), nil
}
