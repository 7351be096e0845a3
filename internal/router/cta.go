package router

import (
	"regexp"
	"strings"
)

// Canonical CTA templates. These are the only place the literal phrases live:
// responses are built from them and detection regexes are compiled from them,
// so the two can never drift apart. %s is the markdown-link URL, which the
// compiled detector treats as optional.
const (
	CTAEventMoreDetails = "Would you like more details about this event?"
	CTAEventNavigate    = "Would you like me to take you to the [event page](%s) to register?"

	CTAProgramMoreDetails = "Would you like more details about this program?"
	CTAProgramNavigate    = "Would you like me to take you to the [program page](%s) to learn more?"
)

var markdownLink = regexp.MustCompile(`\[([^\]]+)\]\(([^)]*)\)`)

// linkURL pulls the first absolute URL out of a markdown link in text.
var linkURL = regexp.MustCompile(`\[[^\]]*\]\((https?://[^)\s]+)\)`)

// CompileCTA turns a canonical CTA template into a detection regex. Literal
// segments are escaped, embedded markdown links match flexibly (brackets
// optional, URL part optional so the no-URL variant of a CTA also matches),
// and whitespace is normalized. Matching is case-insensitive.
func CompileCTA(template string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString(`(?i)`)

	rest := template
	for {
		loc := markdownLink.FindStringSubmatchIndex(rest)
		if loc == nil {
			b.WriteString(literalPattern(rest))
			break
		}
		b.WriteString(literalPattern(rest[:loc[0]]))
		label := rest[loc[2]:loc[3]]
		b.WriteString(`\[?`)
		b.WriteString(literalPattern(label))
		b.WriteString(`\]?`)
		b.WriteString(`(?:\([^)]*\))?`)
		rest = rest[loc[1]:]
	}

	return regexp.MustCompile(b.String())
}

var wsRun = regexp.MustCompile(`\s+`)

// literalPattern escapes a literal template segment and loosens whitespace.
// The %s placeholder (a URL slot inside a link) becomes a URL wildcard.
func literalPattern(segment string) string {
	quoted := regexp.QuoteMeta(segment)
	quoted = strings.ReplaceAll(quoted, "%s", `[^)\s]*`)
	return wsRun.ReplaceAllString(quoted, `\s+`)
}

// Pre-compiled detectors for the canonical set.
var (
	reEventMoreDetails   = CompileCTA(CTAEventMoreDetails)
	reEventNavigate      = CompileCTA(CTAEventNavigate)
	reProgramMoreDetails = CompileCTA(CTAProgramMoreDetails)
	reProgramNavigate    = CompileCTA(CTAProgramNavigate)
)

// FormatCTA renders a canonical CTA template for emission. With a URL the
// embedded markdown link is filled in; without one the link collapses to its
// plain-text label, which the compiled detector still matches.
func FormatCTA(template, url string) string {
	if url != "" {
		return strings.Replace(template, "%s", url, 1)
	}
	return markdownLink.ReplaceAllString(template, "$1")
}

// CTA presence checks, for collaborators that must keep emission and
// detection in lockstep (stage detection, CTA enforcement).
func HasEventMoreDetailsCTA(text string) bool   { return reEventMoreDetails.MatchString(text) }
func HasEventNavigateCTA(text string) bool      { return reEventNavigate.MatchString(text) }
func HasProgramMoreDetailsCTA(text string) bool { return reProgramMoreDetails.MatchString(text) }
func HasProgramNavigateCTA(text string) bool    { return reProgramNavigate.MatchString(text) }

// ExtractLinkURL returns the first markdown-link URL in text, or "".
func ExtractLinkURL(text string) string {
	if sub := linkURL.FindStringSubmatch(text); sub != nil {
		return sub[1]
	}
	return ""
}
