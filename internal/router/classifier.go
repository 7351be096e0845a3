package router

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/patterns"
	"github.com/haven-wellness/concierge/internal/ports"
)

// Thresholds are the classification confidence knobs, injected from config.
type Thresholds struct {
	High     float64
	Medium   float64
	Low      float64
	MinMatch float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		High:     domain.ConfidenceHigh,
		Medium:   domain.ConfidenceMedium,
		Low:      domain.ConfidenceLow,
		MinMatch: domain.MinMatchScore,
	}
}

// Classifier decides what a user message is asking for before any data store
// is touched. Pure function of its inputs plus the catalog's current
// title/name lists; no side effects except logging.
type Classifier struct {
	matcher    *patterns.Matcher
	catalog    ports.Catalog
	thresholds Thresholds
	log        *zap.Logger
}

func NewClassifier(catalog ports.Catalog, thresholds Thresholds, log *zap.Logger) *Classifier {
	return &Classifier{
		matcher:    patterns.NewMatcher(),
		catalog:    catalog,
		thresholds: thresholds,
		log:        log,
	}
}

// Matcher exposes the underlying pattern matcher for collaborators that need
// the same signal tables (safety checks, orchestrator).
func (c *Classifier) Matcher() *patterns.Matcher { return c.matcher }

// scoreGap below which an event and a program match are considered ambiguous.
const scoreGap = 0.3

// strongMatch is the floor for routing straight to a detail request.
const strongMatch = 0.5

// ambiguousMatch is the floor at which two colliding matches force a
// clarification question instead of a guess.
const ambiguousMatch = 0.7

// Classify runs the ordered decision algorithm. The order encodes explicit
// precedence: action verbs and concrete dates are the least ambiguous signals
// and win outright; the user's own vocabulary ("program") overrides fuzzy
// title collisions; fuzzy scores are the tie-breaker of last resort.
func (c *Classifier) Classify(message string, history []domain.ChatMessage) domain.IntentResult {
	msg := patterns.Normalize(message)

	// 1. Greeting wins regardless of history.
	if c.matcher.IsGreeting(msg) {
		return domain.IntentResult{
			Intent:     domain.IntentGreeting,
			Confidence: 1.0,
			Reasoning:  "message is a greeting",
		}
	}

	hasDate := c.matcher.HasDate(msg)

	// 2. Follow-up context, unless a concrete date restarts the query.
	if !hasDate {
		if res := c.detectFollowup(msg, history); res != nil {
			c.logResult(msg, *res)
			return *res
		}
	}

	hasKnowledge := c.matcher.HasKnowledgePhrase(msg)
	hasAction := c.matcher.HasEventAction(msg)
	hasTime := c.matcher.HasTimePattern(msg)

	// 3. A date with no knowledge phrasing is an event query.
	if hasDate && !hasKnowledge {
		res := domain.IntentResult{
			Intent:     domain.IntentEvent,
			Confidence: c.thresholds.High,
			Slots:      map[string]any{domain.SlotDateText: c.matcher.DateText(msg)},
			Reasoning:  "explicit date without knowledge phrasing",
		}
		c.logResult(msg, res)
		return res
	}

	// 4. Action verbs (register, book, attend...) win outright.
	if hasAction {
		res := domain.IntentResult{
			Intent:     domain.IntentEvent,
			Confidence: c.thresholds.High,
			Reasoning:  "event action verb present",
		}
		if hasDate {
			res.Slots = map[string]any{domain.SlotDateText: c.matcher.DateText(msg)}
		}
		c.logResult(msg, res)
		return res
	}

	// 5. Schedule/when-is phrasing without knowledge phrasing.
	if hasTime && !hasKnowledge {
		res := domain.IntentResult{
			Intent:     domain.IntentEvent,
			Confidence: c.thresholds.Medium,
			Reasoning:  "time pattern without knowledge phrasing",
		}
		c.logResult(msg, res)
		return res
	}

	// 6. Pure knowledge phrasing.
	if hasKnowledge && !hasDate && !hasAction && !hasTime {
		res := domain.IntentResult{
			Intent:     domain.IntentKnowledge,
			Confidence: c.thresholds.High,
			Reasoning:  "knowledge phrasing with no event signals",
		}
		c.logResult(msg, res)
		return res
	}

	eventName, eventScore := patterns.BestMatch(msg, c.catalog.EventTitles())
	programName, programScore := patterns.BestMatch(msg, c.catalog.ProgramNames())

	// 7. A term that is both an event title and a program name, with no
	// other signal to break the tie, gets asked about rather than guessed.
	if eventScore > ambiguousMatch && programScore > ambiguousMatch &&
		!hasDate && !hasAction && !hasKnowledge && !c.matcher.HasProgramKeyword(msg) {
		res := domain.IntentResult{
			Intent:     domain.IntentClarification,
			Confidence: c.thresholds.Medium,
			Slots: map[string]any{
				domain.SlotEventName:   eventName,
				domain.SlotProgramName: programName,
			},
			ClarificationQuestion: fmt.Sprintf(
				"Just to point you the right way — are you asking about the upcoming event \"%s\", or the program \"%s\"?",
				eventName, programName),
			Reasoning: "term matches both an event title and a program name",
		}
		c.logResult(msg, res)
		return res
	}

	// 8. Explicit program vocabulary always wins over fuzzy title
	// collisions: the user's own framing is authoritative.
	if c.matcher.HasProgramKeyword(msg) {
		res := domain.IntentResult{
			Intent:     domain.IntentKnowledge,
			Confidence: c.thresholds.High,
			Reasoning:  "explicit program vocabulary",
		}
		if programName != "" {
			res.Slots = map[string]any{domain.SlotProgramName: programName}
		}
		c.logResult(msg, res)
		return res
	}

	// 9. Strong event-title match routes to the deterministic per-event
	// summary generator, not free-form event search.
	if eventScore > strongMatch &&
		(programScore <= c.thresholds.MinMatch || eventScore-programScore > scoreGap) {
		res := domain.IntentResult{
			Intent:     domain.IntentEventDetailRequest,
			Confidence: eventScore,
			Slots:      map[string]any{domain.SlotEventName: eventName},
			Reasoning:  fmt.Sprintf("strong event title match (%.2f)", eventScore),
		}
		c.logResult(msg, res)
		return res
	}

	// 10. Symmetric rule for programs. When the user essentially typed the
	// program name verbatim, route to the program detail branch; otherwise
	// a knowledge query carrying the matched name.
	if programScore > strongMatch &&
		(eventScore <= c.thresholds.MinMatch || programScore-eventScore > scoreGap) {
		intent := domain.IntentKnowledge
		if programScore >= 0.95 {
			intent = domain.IntentProgramDetailRequest
		}
		res := domain.IntentResult{
			Intent:     intent,
			Confidence: programScore,
			Slots:      map[string]any{domain.SlotProgramName: programName},
			Reasoning:  fmt.Sprintf("strong program name match (%.2f)", programScore),
		}
		c.logResult(msg, res)
		return res
	}

	// 11. Both present, scores close: answer from both sources.
	if eventScore > c.thresholds.MinMatch && programScore > c.thresholds.MinMatch &&
		math.Abs(eventScore-programScore) <= scoreGap {
		res := domain.IntentResult{
			Intent:     domain.IntentHybrid,
			Confidence: c.thresholds.Medium,
			Slots: map[string]any{
				domain.SlotEventName:   eventName,
				domain.SlotProgramName: programName,
			},
			Reasoning: "event and program matches too close to call",
		}
		c.logResult(msg, res)
		return res
	}

	// 12. Lexical hints from the recent turns.
	if intent, ok := c.historyHint(history); ok {
		res := domain.IntentResult{
			Intent:     intent,
			Confidence: c.thresholds.Medium,
			Reasoning:  "lexical hint from recent conversation",
		}
		c.logResult(msg, res)
		return res
	}

	// 13. Default: let retrieval have a go.
	res := domain.IntentResult{
		Intent:     domain.IntentKnowledge,
		Confidence: c.thresholds.Low,
		Reasoning:  "no strong signal; defaulting to knowledge lookup",
	}
	c.logResult(msg, res)
	return res
}

const historyHintWindow = 4

var eventHintWords = []string{"event", "workshop", "session", "retreat", "calendar", "schedule"}
var programHintWords = []string{"program", "course", "membership", "training", "enroll"}

// historyHint inspects the last few messages for event vs program vocabulary.
func (c *Classifier) historyHint(history []domain.ChatMessage) (domain.Intent, bool) {
	start := len(history) - historyHintWindow
	if start < 0 {
		start = 0
	}
	eventHits, programHits := 0, 0
	for _, m := range history[start:] {
		lower := patterns.Normalize(m.Content)
		if containsAny(lower, eventHintWords) {
			eventHits++
		}
		if containsAny(lower, programHintWords) {
			programHits++
		}
	}
	switch {
	case eventHits > programHits:
		return domain.IntentEvent, true
	case programHits > eventHits:
		return domain.IntentKnowledge, true
	}
	return "", false
}

func (c *Classifier) logResult(msg string, res domain.IntentResult) {
	c.log.Debug("classified message",
		zap.String("intent", string(res.Intent)),
		zap.Float64("confidence", res.Confidence),
		zap.String("reasoning", res.Reasoning),
		zap.String("message", truncate(msg, 120)),
	)
}
