package patterns

import (
	"regexp"
	"strconv"
	"strings"
)

// Ordinal-selection detection: bare digits 1-9, #N, spelled ordinals, and
// "option N"/"number N"/"choice N". A message containing a date pattern is
// never treated as a bare ordinal, so "June 1st" is not read as selection #1.

var spelledOrdinals = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"1st": 1, "2nd": 2, "3rd": 3, "4th": 4, "5th": 5,
}

var (
	bareDigit     = regexp.MustCompile(`^[1-9]$`)
	hashNumber    = regexp.MustCompile(`^#([1-9])$`)
	phrasedNumber = regexp.MustCompile(`\b(?:option|number|choice)\s+([1-9])\b`)
	spelledWord   = regexp.MustCompile(`\b(first|second|third|fourth|fifth|[1-5](?:st|nd|rd|th))\b`)
)

// OrdinalSelection extracts a 1-based selection number from the message, or
// reports ok=false when the message is not an ordinal selection.
func (m *Matcher) OrdinalSelection(msg string) (int, bool) {
	trimmed := strings.TrimRight(strings.TrimSpace(msg), "!.,?")

	if m.HasDate(trimmed) {
		return 0, false
	}

	if bareDigit.MatchString(trimmed) {
		n, _ := strconv.Atoi(trimmed)
		return n, true
	}
	if sub := hashNumber.FindStringSubmatch(trimmed); sub != nil {
		n, _ := strconv.Atoi(sub[1])
		return n, true
	}
	if sub := phrasedNumber.FindStringSubmatch(trimmed); sub != nil {
		n, _ := strconv.Atoi(sub[1])
		return n, true
	}
	if sub := spelledWord.FindStringSubmatch(trimmed); sub != nil {
		if n, ok := spelledOrdinals[sub[1]]; ok {
			return n, true
		}
	}
	return 0, false
}
