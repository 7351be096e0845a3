package postprocess

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/haven-wellness/concierge/internal/domain"
)

// linkProgramMentions converts bare mentions of known program names into
// markdown links. Names already inside a link are left alone.
func (c *Chain) linkProgramMentions(text string) string {
	for _, p := range c.catalog.Programs() {
		if p.InfoURL == "" {
			continue
		}
		text = linkMention(text, p.Name, p.InfoURL)
	}
	return text
}

func linkMention(text, name, url string) string {
	re, err := regexp.Compile(`(?i)(\[?)` + regexp.QuoteMeta(name))
	if err != nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(m string) string {
		if strings.HasPrefix(m, "[") {
			// Already linked (or at least bracketed); don't double-wrap.
			return m
		}
		return fmt.Sprintf("[%s](%s)", m, url)
	})
}

// eventPageURL recognizes navigation markers that point at an event page.
var eventPageURL = regexp.MustCompile(`(?i)https?://[^\]\s]*/(events?|calendar|workshops?)/[^\]\s]*`)

var navigateMarker = regexp.MustCompile(`\[NAVIGATE:([^\]]*)\]`)

// correctNavigationURL replaces a model-generated event-page URL inside a
// navigation marker with the authoritative record's page URL, regardless of
// what the model wrote.
func (c *Chain) correctNavigationURL(text string, lastEvent *domain.Event) string {
	if lastEvent == nil || lastEvent.PageURL == "" {
		return text
	}
	return navigateMarker.ReplaceAllStringFunc(text, func(m string) string {
		sub := navigateMarker.FindStringSubmatch(m)
		if sub == nil {
			return m
		}
		url := sub[1]
		if url == lastEvent.PageURL {
			return m
		}
		if eventPageURL.MatchString(url) {
			return domain.NavigateMarker(lastEvent.PageURL)
		}
		return m
	})
}

// Contextual-link appending: responses with no links at all get a closing
// block with up to three relevant program links, when topic keywords (or the
// generic interest phrase) appear in the query or the response. Crisis and
// safety responses never get this treatment.

var anyLink = regexp.MustCompile(`https?://|\[[^\]]+\]\(`)

var genericInterest = regexp.MustCompile(`(?i)interested\s+in\s+(your\s+)?programs?`)

var warmClosings = []string{
	"Whenever you're ready, we'd love to walk alongside you.",
	"Take all the time you need — we're here when it feels right.",
	"Wherever you are on your journey, there's a place for you here.",
}

const maxContextualLinks = 3

func (c *Chain) appendContextualLinks(text, userMessage string) string {
	if anyLink.MatchString(text) {
		return text
	}

	combined := strings.ToLower(userMessage + " " + text)
	var picks []domain.Program
	for _, p := range c.catalog.Programs() {
		if p.InfoURL == "" {
			continue
		}
		if topicMatches(combined, p.Name) {
			picks = append(picks, p)
		}
		if len(picks) == maxContextualLinks {
			break
		}
	}

	if len(picks) == 0 && genericInterest.MatchString(combined) {
		for _, p := range c.catalog.Programs() {
			if p.InfoURL != "" {
				picks = append(picks, p)
			}
			if len(picks) == maxContextualLinks {
				break
			}
		}
	}
	if len(picks) == 0 {
		return text
	}

	var b strings.Builder
	b.WriteString(text)
	b.WriteString("\n\nYou might also like to explore:\n")
	for _, p := range picks {
		fmt.Fprintf(&b, "- [%s](%s)\n", p.Name, p.InfoURL)
	}
	b.WriteString(warmClosings[rand.Intn(len(warmClosings))])
	return b.String()
}

// topicMatches checks whether any significant word of a program name appears
// in the combined query+response text.
func topicMatches(combined, programName string) bool {
	for _, w := range strings.Fields(strings.ToLower(programName)) {
		if len(w) < 4 {
			continue
		}
		if strings.Contains(combined, w) {
			return true
		}
	}
	return false
}
