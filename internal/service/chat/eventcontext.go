package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/patterns"
	"github.com/haven-wellness/concierge/internal/router"
)

// Event context construction. Two render paths exist on purpose: the general
// LLM path gets a compact listing block it may rephrase, while detail flows
// get deterministic renders the model never touches.

const upcomingLimit = 10

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// monthFromText extracts the first month name mentioned in a date expression.
func monthFromText(text string) (time.Month, bool) {
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?")
		if m, ok := monthsByName[w]; ok {
			return m, true
		}
	}
	return 0, false
}

// overlapsMonth reports whether an event touches the given month in any year
// still upcoming.
func overlapsMonth(ev domain.Event, month time.Month) bool {
	return ev.StartsAt.Month() == month || ev.EndsAt.Month() == month
}

// buildEventContext fetches upcoming events, filters by any month named in
// the message, and renders a context block. direct=true means the message
// unambiguously named one event: the block holds a verbatim detail render
// wrapped in the direct-event markers and must bypass the model entirely.
func (s *Service) buildEventContext(ctx context.Context, message, dateText string) (block string, direct bool) {
	events, err := s.events.ListUpcoming(ctx, upcomingLimit)
	if err != nil {
		s.log.Warn("event service unavailable for context", zap.Error(err))
		return calendarUnavailableContext, false
	}
	if len(events) == 0 {
		return "No upcoming events are currently scheduled.", false
	}

	// A near-verbatim title mention wins over listing.
	titles := make([]string, len(events))
	for i, ev := range events {
		titles[i] = ev.Title
	}
	if name, score := patterns.BestMatch(message, titles); score >= 0.95 {
		for i := range events {
			if events[i].Title == name {
				return domain.DirectEventOpen + renderEventDetails(&events[i]) + domain.DirectEventClose, true
			}
		}
	}

	if month, ok := monthFromText(dateText); ok {
		filtered := events[:0:0]
		for _, ev := range events {
			if overlapsMonth(ev, month) {
				filtered = append(filtered, ev)
			}
		}
		if len(filtered) == 0 {
			return fmt.Sprintf("No events are scheduled in %s. Nearest upcoming events:\n%s",
				month.String(), renderEventListing(events)), false
		}
		events = filtered
	}

	return renderEventListing(events), false
}

const calendarUnavailableContext = "Calendar data is temporarily unavailable. " +
	"Let the visitor know the live schedule is on the events page and apologize briefly."

// renderEventListing is the compact numbered block handed to the model.
func renderEventListing(events []domain.Event) string {
	var b strings.Builder
	for i, ev := range events {
		fmt.Fprintf(&b, "%d. **%s** — %s", i+1, ev.Title, formatEventDate(&ev))
		if ev.Location != "" {
			fmt.Fprintf(&b, " — %s", ev.Location)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderEventSummary is the deterministic Stage-1 summary: consistent format
// independent of model variance, ending in the canonical details CTA.
func renderEventSummary(ev *domain.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", ev.Title)
	fmt.Fprintf(&b, "🗓 %s\n", formatEventDate(ev))
	if ev.Location != "" {
		fmt.Fprintf(&b, "📍 %s\n", ev.Location)
	}
	if summary := firstSentences(ev.Description, 2); summary != "" {
		b.WriteString(summary + "\n")
	}
	b.WriteString("\n" + router.FormatCTA(router.CTAEventMoreDetails, ""))
	return b.String()
}

// renderEventDetails is the full verbatim record, markdown preserved, ending
// in the canonical navigate CTA.
func renderEventDetails(ev *domain.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n", ev.Title)
	fmt.Fprintf(&b, "🗓 %s\n", formatEventDate(ev))
	if ev.Location != "" {
		fmt.Fprintf(&b, "📍 %s\n", ev.Location)
	}
	if ev.Description != "" {
		b.WriteString("\n" + ev.Description + "\n")
	}
	b.WriteString("\n" + router.FormatCTA(router.CTAEventNavigate, ev.PageURL))
	return b.String()
}

// formatEventDate renders start/end in the event's own timezone.
func formatEventDate(ev *domain.Event) string {
	loc, err := time.LoadLocation(ev.Timezone)
	if err != nil || ev.Timezone == "" {
		loc = time.UTC
	}
	start := ev.StartsAt.In(loc)
	end := ev.EndsAt.In(loc)

	if start.IsZero() {
		return "date to be announced"
	}
	day := start.Format("Monday, January 2, 2006")
	if end.IsZero() || end.Equal(start) {
		return fmt.Sprintf("%s at %s (%s)", day, start.Format("3:04 PM"), loc.String())
	}
	return fmt.Sprintf("%s, %s – %s (%s)", day, start.Format("3:04 PM"), end.Format("3:04 PM"), loc.String())
}

// firstSentences trims a description to its opening n sentences.
func firstSentences(text string, n int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	count := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			count++
			if count == n {
				return text[:i+1]
			}
		}
	}
	return text
}
