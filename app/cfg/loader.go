package cfg

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

const (
	LedgerDriverFile   = "file"
	LedgerDriverSQLite = "sqlite"
)

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Sources
	FeedsFile string `long:"feeds-file" env:"FEEDS_FILE" default:"rss_feeds.txt" description:"Text file with one feed URL per line"`
	FeedsDir  string `long:"feeds-dir" env:"FEEDS_DIR" description:"Optional directory with per-feed YAML configuration files"`

	// Output and dedup state
	OutputDir     string `long:"output-dir" env:"OUTPUT_DIR" default:"downloaded_pdfs" description:"Root directory for exported PDF documents"`
	LedgerDriver  string `long:"ledger-driver" env:"LEDGER_DRIVER" default:"file" choice:"file" choice:"sqlite" description:"Storage backend for exported entry IDs"`
	LedgerFile    string `long:"ledger-file" env:"LEDGER_FILE" default:"downloaded.dat" description:"Append-only file with exported entry IDs (file driver)"`
	LedgerDB      string `long:"ledger-db" env:"LEDGER_DB" default:"downloaded.db" description:"SQLite database with exported entry IDs (sqlite driver)"`
	MaxNameLength int    `long:"max-name-length" env:"MAX_NAME_LENGTH" default:"100" description:"Maximum length of a sanitized path segment"`
	LenientDates  bool   `long:"lenient-dates" env:"LENIENT_DATES" description:"Fall back to heuristic date parsing when no known format matches"`

	// Fetching
	Timeout   int    `long:"timeout" env:"FETCH_TIMEOUT" default:"30" description:"Default HTTP timeout in seconds"`
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"RSS PDF/1.0" description:"User agent string for HTTP requests"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" description:"Timezone for log timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses the process arguments and environment. A nil Cfg with a nil
// error means help was printed.
func Load() (*Cfg, error) {
	return LoadArgs(os.Args[1:])
}

func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		FeedsFile:     raw.FeedsFile,
		FeedsDir:      raw.FeedsDir,
		OutputDir:     raw.OutputDir,
		LedgerDriver:  raw.LedgerDriver,
		LedgerFile:    raw.LedgerFile,
		LedgerDB:      raw.LedgerDB,
		MaxNameLength: raw.MaxNameLength,
		LenientDates:  raw.LenientDates,
		Timeout:       raw.Timeout,
		UserAgent:     raw.UserAgent,
		Timezone:      raw.Timezone,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		slog.Warn("Invalid timezone, using system default", "timezone", cfg.Timezone, "error", err)
	}

	return cfg, nil
}

func (c *Cfg) validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if c.MaxNameLength < 10 {
		return fmt.Errorf("max name length must be at least 10, got %d", c.MaxNameLength)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	switch c.LedgerDriver {
	case LedgerDriverFile:
		if c.LedgerFile == "" {
			return fmt.Errorf("ledger file is required for the %s driver", c.LedgerDriver)
		}
	case LedgerDriverSQLite:
		if c.LedgerDB == "" {
			return fmt.Errorf("ledger database is required for the %s driver", c.LedgerDriver)
		}
	default:
		return fmt.Errorf("unknown ledger driver: %s", c.LedgerDriver)
	}
	return nil
}

func (c *Cfg) FetchTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
