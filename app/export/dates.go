package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var ErrUnrecognizedDateFormat = errors.New("date format not recognized")

type UnrecognizedDateFormatError struct {
	Input string
}

func (e *UnrecognizedDateFormatError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnrecognizedDateFormat, e.Input)
}

func (e *UnrecognizedDateFormatError) Unwrap() error {
	return ErrUnrecognizedDateFormat
}

type dateParser struct {
	name  string
	parse func(string) (time.Time, error)
}

func layout(l string) func(string) (time.Time, error) {
	return func(s string) (time.Time, error) {
		return time.Parse(l, s)
	}
}

func layouts(ls ...string) func(string) (time.Time, error) {
	return func(s string) (time.Time, error) {
		var err error
		for _, l := range ls {
			var t time.Time
			if t, err = time.Parse(l, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, err
	}
}

// The order decides which interpretation wins when a string fits more than
// one format: named zones are tried before numeric offsets. time.Parse also
// accepts zone abbreviations it does not know (such as PDT) and reads them
// as +0000, which can move the path date by a day near midnight.
var dateParsers = []dateParser{
	// Fri, 09 Aug 2024 16:34:41 GMT
	{"rfc822-named-zone", layout("Mon, 2 Jan 2006 15:04:05 MST")},
	// Sat, 10 Aug 2024 01:23:37 +0200
	{"rfc822-numeric-zone", layout("Mon, 2 Jan 2006 15:04:05 -0700")},
	// 2024-08-10T01:23:37+02:00 or 2024-08-10T01:23:37+0200
	{"iso8601", layouts("2006-01-02T15:04:05Z07:00", "2006-01-02T15:04:05Z0700")},
	// Sat, 10 Aug 2024 01:23:37
	{"rfc822-no-zone", layout("Mon, 2 Jan 2006 15:04:05")},
	// 10 Aug 2024 01:23:37 GMT
	{"no-weekday-named-zone", layout("2 Jan 2006 15:04:05 MST")},
	// 10 Aug 2024 01:23:37 +0200
	{"no-weekday-numeric-zone", layout("2 Jan 2006 15:04:05 -0700")},
}

// DateNormalizer parses feed publication dates. With Lenient set, strings
// matching none of the known formats get one more attempt through a
// heuristic parser before failing.
type DateNormalizer struct {
	Lenient bool
}

func (n DateNormalizer) Parse(text string) (time.Time, error) {
	value := strings.TrimSpace(text)

	for _, p := range dateParsers {
		// time.Parse takes fractional seconds after the seconds field even
		// when the layout has none; those strings are not in a known format.
		if t, err := p.parse(value); err == nil && t.Nanosecond() == 0 {
			return t, nil
		}
	}

	if n.Lenient && value != "" {
		if t, err := dateparse.ParseStrict(value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &UnrecognizedDateFormatError{Input: text}
}

// ParseDate parses text against the known feed date formats only.
func ParseDate(text string) (time.Time, error) {
	return DateNormalizer{}.Parse(text)
}

// DateFormats lists the known format names in the order they are tried.
func DateFormats() []string {
	names := make([]string, len(dateParsers))
	for i, p := range dateParsers {
		names[i] = p.name
	}
	return names
}
