package feed

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
)

// LoadSources reads a newline-delimited list of feed URLs. Blank lines and
// lines starting with '#' are skipped; repeated URLs keep their first
// position.
func LoadSources(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed list: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feed list: %w", err)
	}

	urls := lo.Filter(lines, func(line string, _ int) bool {
		return line != "" && !strings.HasPrefix(line, "#")
	})

	return lo.Uniq(urls), nil
}

// SourceConfigs wraps plain URLs into configs with default settings.
func SourceConfigs(urls []string) []*Config {
	return lo.Map(urls, func(url string, _ int) *Config {
		return &Config{Name: url, URL: url}
	})
}
