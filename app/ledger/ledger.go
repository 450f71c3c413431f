package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrEmptyID = errors.New("entry ID is empty")

// Ledger is the durable record of exported entry IDs. Load is called once
// per run; RecordSeen must be durable when it returns.
type Ledger interface {
	Load() (map[string]struct{}, error)
	RecordSeen(id string) error
}

var _ Ledger = (*FileLedger)(nil)

// FileLedger stores one ID per line in an append-only text file.
type FileLedger struct {
	path string
}

func NewFileLedger(path string) *FileLedger {
	return &FileLedger{path: path}
}

// Load returns every ID in the file. A missing file is an empty ledger.
func (l *FileLedger) Load() (map[string]struct{}, error) {
	seen := make(map[string]struct{})

	file, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return seen, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if id := strings.TrimSpace(scanner.Text()); id != "" {
			seen[id] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	return seen, nil
}

// RecordSeen appends id in a single write and syncs the file.
func (l *FileLedger) RecordSeen(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyID
	}
	if strings.ContainsAny(id, "\r\n") {
		return fmt.Errorf("entry ID contains a line break: %q", id)
	}

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("failed to open ledger for append: %w", err)
	}

	line, err := appendLine(file, id)
	if err != nil {
		file.Close()
		return err
	}

	if _, err := file.WriteString(line); err != nil {
		file.Close()
		return fmt.Errorf("failed to append to ledger: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("failed to sync ledger: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close ledger: %w", err)
	}

	return nil
}

// appendLine returns id as a full line, starting with a line break when the
// file does not already end with one.
func appendLine(file *os.File, id string) (string, error) {
	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat ledger: %w", err)
	}
	if info.Size() == 0 {
		return id + "\n", nil
	}

	last := make([]byte, 1)
	if _, err := file.ReadAt(last, info.Size()-1); err != nil {
		return "", fmt.Errorf("failed to read ledger tail: %w", err)
	}
	if last[0] != '\n' {
		return "\n" + id + "\n", nil
	}
	return id + "\n", nil
}
