package patterns

import (
	"regexp"
	"strings"
)

// Fuzzy title/name matching. Two deliberate tiers: exact or near-exact phrase
// mentions dominate (0.95), while partial word overlap stays usable for typo
// tolerance and paraphrase but caps below the substring score (x0.85).

const (
	substringScore  = 0.95
	overlapCeiling  = 0.85
	minUsefulScore  = 0.30
	minOverlapWords = 1
)

// specialMarks strips trademark symbols and other decoration that appears in
// canonical titles but never in user messages.
var specialMarks = regexp.MustCompile(`[™®©*_"'’]`)

var wordSplitter = regexp.MustCompile(`[^a-z0-9]+`)

func normalizeTitle(s string) string {
	s = strings.ToLower(s)
	s = specialMarks.ReplaceAllString(s, "")
	return spaceNormalizer.ReplaceAllString(strings.TrimSpace(s), " ")
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range wordSplitter.Split(s, -1) {
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// Score rates how strongly a candidate title is mentioned in the message.
func Score(message, candidate string) float64 {
	msg := normalizeTitle(message)
	cand := normalizeTitle(candidate)
	if msg == "" || cand == "" {
		return 0
	}

	if strings.Contains(msg, cand) || strings.Contains(cand, msg) {
		return substringScore
	}

	candWords := wordSet(cand)
	if len(candWords) == 0 {
		return 0
	}
	msgWords := wordSet(msg)

	present := 0
	for w := range candWords {
		if _, ok := msgWords[w]; ok {
			present++
		}
	}
	if present < minOverlapWords {
		return 0
	}
	return float64(present) / float64(len(candWords)) * overlapCeiling
}

// BestMatch returns the highest-scoring candidate above the usefulness floor,
// or ("", 0) when nothing clears it.
func BestMatch(message string, candidates []string) (string, float64) {
	best, bestScore := "", 0.0
	for _, c := range candidates {
		if s := Score(message, c); s > bestScore {
			best, bestScore = c, s
		}
	}
	if bestScore < minUsefulScore {
		return "", 0
	}
	return best, bestScore
}
