package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lysyi3m/rss-pdf/app/ledger"
)

var _ ledger.Ledger = (*LedgerRepository)(nil)

// LedgerRepository keeps exported entry IDs in SQLite.
type LedgerRepository struct {
	db *DB
}

func NewLedgerRepository(db *DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Load() (map[string]struct{}, error) {
	rows, err := r.db.Query(`SELECT entry_id FROM exported_entries`)
	if err != nil {
		return nil, fmt.Errorf("failed to load exported entries: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan exported entry: %w", err)
		}
		seen[id] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exported entries: %w", err)
	}

	return seen, nil
}

func (r *LedgerRepository) RecordSeen(id string) error {
	return r.RecordExport(id, "", "")
}

// RecordExport stores id along with where its document was written. The
// first record for an id wins.
func (r *LedgerRepository) RecordExport(id, feedTitle, path string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ledger.ErrEmptyID
	}

	_, err := r.db.Exec(`
		INSERT INTO exported_entries (entry_id, feed_title, path, exported_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (entry_id) DO NOTHING
	`, id, feedTitle, path, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record exported entry: %w", err)
	}

	return nil
}

// ExportPath returns the document path stored for id, if any.
func (r *LedgerRepository) ExportPath(id string) (string, error) {
	var path string
	err := r.db.QueryRow(`SELECT path FROM exported_entries WHERE entry_id = ?`, id).Scan(&path)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get exported entry: %w", err)
	}
	return path, nil
}

func (r *LedgerRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM exported_entries`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count exported entries: %w", err)
	}
	return count, nil
}
