package export

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"unicode"
)

const (
	DefaultMaxNameLength = 100

	hashSuffixLength = 8
)

// Sanitize reduces text to letters, digits, spaces, hyphens and underscores
// so it can be used as a single path segment. Names longer than maxLength
// runes are cut and suffixed with '_' plus a short MD5 digest of the full
// cleaned name. The result never exceeds maxLength runes.
func Sanitize(text string, maxLength int) string {
	cleaned := strings.TrimRightFunc(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == ' ' || r == '-' || r == '_' {
			return r
		}
		return -1
	}, text), unicode.IsSpace)

	runes := []rune(cleaned)
	if len(runes) <= maxLength {
		return cleaned
	}

	sum := md5.Sum([]byte(cleaned))
	suffix := "_" + hex.EncodeToString(sum[:])[:hashSuffixLength]

	keep := max(maxLength-len(suffix), 0)
	result := []rune(string(runes[:keep]) + suffix)
	if len(result) > maxLength {
		result = result[:max(maxLength, 0)]
	}
	return string(result)
}
