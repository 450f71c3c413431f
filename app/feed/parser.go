package feed

import (
	"bytes"
	"cmp"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *Parser) Run(data []byte) (*Feed, error) {
	parsed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	result := &Feed{
		Title:   strings.TrimSpace(parsed.Title),
		Link:    parsed.Link,
		Entries: make([]Entry, 0, len(parsed.Items)),
	}

	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		result.Entries = append(result.Entries, p.normalizeItem(item))
	}

	return result, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) Entry {
	return Entry{
		ID:          strings.TrimSpace(cmp.Or(item.GUID, item.Link)),
		Title:       item.Title,
		Link:        item.Link,
		Published:   cmp.Or(item.Published, item.Updated),
		Description: item.Description,
	}
}
