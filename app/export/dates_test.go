package export

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateKnownFormats(t *testing.T) {
	tests := []struct {
		input  string
		want   time.Time
		offset int
	}{
		{"Fri, 09 Aug 2024 16:34:41 GMT", time.Date(2024, 8, 9, 16, 34, 41, 0, time.UTC), 0},
		{"Sat, 10 Aug 2024 01:23:37 +0200", time.Date(2024, 8, 10, 1, 23, 37, 0, time.UTC), 2 * 3600},
		{"2024-08-10T01:23:37+0200", time.Date(2024, 8, 10, 1, 23, 37, 0, time.UTC), 2 * 3600},
		{"2024-08-10T01:23:37+02:00", time.Date(2024, 8, 10, 1, 23, 37, 0, time.UTC), 2 * 3600},
		{"2024-08-10T01:23:37Z", time.Date(2024, 8, 10, 1, 23, 37, 0, time.UTC), 0},
		{"Sat, 10 Aug 2024 01:23:37", time.Date(2024, 8, 10, 1, 23, 37, 0, time.UTC), 0},
		{"10 Aug 2024 01:23:37 GMT", time.Date(2024, 8, 10, 1, 23, 37, 0, time.UTC), 0},
		{"10 Aug 2024 01:23:37 -0500", time.Date(2024, 8, 10, 1, 23, 37, 0, time.UTC), -5 * 3600},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		if err != nil {
			t.Errorf("ParseDate(%q): unexpected error: %v", tt.input, err)
			continue
		}

		// Wall clock in the parsed zone, which is what output paths use
		if got.Year() != tt.want.Year() || got.Month() != tt.want.Month() || got.Day() != tt.want.Day() ||
			got.Hour() != tt.want.Hour() || got.Minute() != tt.want.Minute() || got.Second() != tt.want.Second() {
			t.Errorf("ParseDate(%q): expected %s, got %s", tt.input, tt.want.Format(time.DateTime), got.Format(time.DateTime))
		}
		if _, offset := got.Zone(); offset != tt.offset {
			t.Errorf("ParseDate(%q): expected offset %d, got %d", tt.input, tt.offset, offset)
		}
	}
}

func TestParseDateSingleDigitDay(t *testing.T) {
	got, err := ParseDate("Mon, 5 Aug 2024 08:00:00 GMT")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got.Day() != 5 {
		t.Errorf("Expected day 5, got %d", got.Day())
	}
}

func TestParseDateTrimsWhitespace(t *testing.T) {
	if _, err := ParseDate("  Fri, 09 Aug 2024 16:34:41 GMT\n"); err != nil {
		t.Errorf("Expected surrounding whitespace to be ignored, got: %v", err)
	}
}

func TestParseDateUnrecognized(t *testing.T) {
	inputs := []string{"not a date", "", "2024/08/10", "Fri, 09 Aug 2024"}

	for _, input := range inputs {
		_, err := ParseDate(input)
		if err == nil {
			t.Errorf("ParseDate(%q): expected error", input)
			continue
		}
		if !errors.Is(err, ErrUnrecognizedDateFormat) {
			t.Errorf("ParseDate(%q): expected ErrUnrecognizedDateFormat, got %v", input, err)
		}

		var formatErr *UnrecognizedDateFormatError
		if !errors.As(err, &formatErr) {
			t.Errorf("ParseDate(%q): expected *UnrecognizedDateFormatError, got %T", input, err)
		} else if formatErr.Input != input {
			t.Errorf("Expected error to carry input %q, got %q", input, formatErr.Input)
		}
	}
}

func TestParseDateRejectsTrailingText(t *testing.T) {
	if _, err := ParseDate("Fri, 09 Aug 2024 16:34:41 GMT extra"); err == nil {
		t.Error("Expected error for trailing text")
	}
}

func TestParseDateRejectsFractionalSeconds(t *testing.T) {
	inputs := []string{
		"Fri, 09 Aug 2024 16:34:41.123 GMT",
		"Sat, 10 Aug 2024 01:23:37.5 +0200",
		"2024-08-10T01:23:37.5+02:00",
	}

	for _, input := range inputs {
		if _, err := ParseDate(input); !errors.Is(err, ErrUnrecognizedDateFormat) {
			t.Errorf("ParseDate(%q): expected ErrUnrecognizedDateFormat, got %v", input, err)
		}
	}
}

func TestDateFormatsOrder(t *testing.T) {
	expected := []string{
		"rfc822-named-zone",
		"rfc822-numeric-zone",
		"iso8601",
		"rfc822-no-zone",
		"no-weekday-named-zone",
		"no-weekday-numeric-zone",
	}

	got := DateFormats()
	if len(got) != len(expected) {
		t.Fatalf("Expected %d formats, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Format %d: expected %s, got %s", i, expected[i], got[i])
		}
	}
}

func TestDateNormalizerLenient(t *testing.T) {
	input := "2024-08-10 01:23:37"

	if _, err := (DateNormalizer{}).Parse(input); err == nil {
		t.Fatal("Expected strict normalizer to reject the input")
	}

	got, err := DateNormalizer{Lenient: true}.Parse(input)
	if err != nil {
		t.Fatalf("Expected lenient normalizer to accept the input, got: %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.August || got.Day() != 10 {
		t.Errorf("Expected 2024-08-10, got %s", got.Format(time.DateOnly))
	}
}

func TestDateNormalizerLenientKeepsKnownFormatsFirst(t *testing.T) {
	got, err := DateNormalizer{Lenient: true}.Parse("Sat, 10 Aug 2024 01:23:37 +0200")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if _, offset := got.Zone(); offset != 2*3600 {
		t.Errorf("Expected +0200 offset from the numeric zone format, got %d", offset)
	}
}

func TestDateNormalizerLenientStillFails(t *testing.T) {
	_, err := DateNormalizer{Lenient: true}.Parse("not a date")
	if !errors.Is(err, ErrUnrecognizedDateFormat) {
		t.Errorf("Expected ErrUnrecognizedDateFormat, got %v", err)
	}
}
