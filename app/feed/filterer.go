package feed

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

var validFilterFields = map[string]bool{
	"title":       true,
	"description": true,
	"content":     true,
	"link":        true,
}

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Match reports whether entry passes the config's filters, and if not, why.
func (f *Filterer) Match(entry Entry, feedConfig *Config) (bool, string) {
	if feedConfig == nil {
		return true, ""
	}

	for _, filter := range feedConfig.Filters {
		value := f.getFieldValue(entry, filter.Field)

		if exclude, found := lo.Find(filter.Excludes, func(pattern string) bool {
			return f.matchesFilter(value, pattern)
		}); found {
			return false, fmt.Sprintf("Excluded by %s filter: contains '%s'", filter.Field, exclude)
		}

		if len(filter.Includes) > 0 && !lo.SomeBy(filter.Includes, func(pattern string) bool {
			return f.matchesFilter(value, pattern)
		}) {
			return false, fmt.Sprintf("Excluded by %s filter: does not contain any of %v", filter.Field, filter.Includes)
		}
	}

	return true, ""
}

func (f *Filterer) matchesFilter(value, pattern string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}

func (f *Filterer) getFieldValue(entry Entry, field string) string {
	switch field {
	case "title":
		return entry.Title
	case "description":
		return entry.Description
	case "content":
		return entry.Content
	case "link":
		return entry.Link
	default:
		return ""
	}
}
