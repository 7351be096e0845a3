package router

import (
	"regexp"
	"strings"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/patterns"
)

// Stage detection is a pure function of the previous assistant message text.
// No stored flags: the displayed message is the only source of truth, so the
// inferred stage can never diverge from what the user actually saw.

// listingKeywords stay event-specific. Generic openers like "here are" show
// up in program listings too and must not pull a listing into the event flow.
var listingKeywords = []string{"event", "upcoming", "schedule", "workshop", "session"}

var programListingKeywords = []string{"program", "course", "membership", "training", "offer"}

var numberedLine = regexp.MustCompile(`(?m)^\s*(?:\*\*)?\d+[.)]\s+`)

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// DetectEventStage infers the event-flow disclosure stage from the previous
// bot message. Most-specific stage first: a later-stage CTA can coincidentally
// contain words from an earlier stage's trigger list.
func DetectEventStage(lastBotMessage string) domain.EventStage {
	if lastBotMessage == "" {
		return domain.EventStageNone
	}
	lower := strings.ToLower(lastBotMessage)

	if reEventNavigate.MatchString(lastBotMessage) ||
		strings.Contains(lastBotMessage, domain.NavigateMarkerPrefix) {
		return domain.EventStageDetailsShown
	}
	if reEventMoreDetails.MatchString(lastBotMessage) {
		return domain.EventStageSummaryShown
	}
	if numberedLine.MatchString(lastBotMessage) && containsAny(lower, listingKeywords) {
		return domain.EventStageListingShown
	}
	return domain.EventStageNone
}

// DetectProgramStage is the structurally parallel check for the program flow.
func DetectProgramStage(lastBotMessage string) domain.ProgramStage {
	if lastBotMessage == "" {
		return domain.ProgramStageNone
	}
	lower := strings.ToLower(lastBotMessage)

	if strings.Contains(lastBotMessage, domain.NavigateMarkerPrefix) && containsAny(lower, programListingKeywords) {
		return domain.ProgramStageNavigateOffered
	}
	if reProgramNavigate.MatchString(lastBotMessage) {
		return domain.ProgramStageDetailsShown
	}
	if reProgramMoreDetails.MatchString(lastBotMessage) {
		return domain.ProgramStageSummaryShown
	}
	if numberedLine.MatchString(lastBotMessage) && containsAny(lower, programListingKeywords) {
		return domain.ProgramStageListingShown
	}
	return domain.ProgramStageNone
}

// lastAssistantMessage walks history backwards for the previous bot turn.
func lastAssistantMessage(history []domain.ChatMessage) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "assistant" {
			return history[i].Content
		}
	}
	return ""
}

const lastBotExcerptLen = 500

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// detectFollowup resolves ordinals and affirmatives against the inferred
// stage. Returns nil when the message does not resume a follow-up flow.
// Callers must already have ruled out dated messages: a concrete date always
// starts a new query.
func (c *Classifier) detectFollowup(msg string, history []domain.ChatMessage) *domain.IntentResult {
	lastBot := lastAssistantMessage(history)
	if lastBot == "" {
		return nil
	}
	lowerBot := strings.ToLower(lastBot)

	// Bare ordinal against a numbered list -> selection.
	if n, ok := c.matcher.OrdinalSelection(msg); ok && numberedLine.MatchString(lastBot) {
		contextType := "event"
		if containsAny(lowerBot, programListingKeywords) && !containsAny(lowerBot, listingKeywords) {
			contextType = "program"
		}
		return &domain.IntentResult{
			Intent:     domain.IntentFollowupSelect,
			Confidence: domain.ConfidenceHigh,
			Slots: map[string]any{
				domain.SlotSelectionIndex: n - 1,
				domain.SlotContextType:    contextType,
				domain.SlotLastBotMessage: truncate(lastBot, lastBotExcerptLen),
			},
			Reasoning: "ordinal selection against a numbered listing",
		}
	}

	if !c.matcher.IsAffirmative(msg) {
		return nil
	}

	eventStage := DetectEventStage(lastBot)
	programStage := DetectProgramStage(lastBot)

	switch {
	case programStage == domain.ProgramStageDetailsShown || programStage == domain.ProgramStageNavigateOffered:
		slots := map[string]any{
			domain.SlotContextType:    "program",
			domain.SlotStage:          string(programStage),
			domain.SlotLastBotMessage: truncate(lastBot, lastBotExcerptLen),
		}
		if url := ExtractLinkURL(lastBot); url != "" {
			slots[domain.SlotNavigateURL] = url
		}
		return &domain.IntentResult{
			Intent:     domain.IntentProgramNavigate,
			Confidence: domain.ConfidenceHigh,
			Slots:      slots,
			Reasoning:  "affirmative after program details were shown",
		}

	case eventStage == domain.EventStageDetailsShown:
		slots := map[string]any{
			domain.SlotContextType:    "event",
			domain.SlotStage:          string(eventStage),
			domain.SlotLastBotMessage: truncate(lastBot, lastBotExcerptLen),
		}
		if url := ExtractLinkURL(lastBot); url != "" {
			slots[domain.SlotNavigateURL] = url
		}
		return &domain.IntentResult{
			Intent:     domain.IntentEventNavigate,
			Confidence: domain.ConfidenceHigh,
			Slots:      slots,
			Reasoning:  "affirmative after event details were shown",
		}

	case programStage == domain.ProgramStageSummaryShown:
		return followupConfirm("program", string(programStage), lastBot)

	case eventStage == domain.EventStageSummaryShown:
		return followupConfirm("event", string(eventStage), lastBot)

	case eventStage == domain.EventStageListingShown:
		res := followupConfirm("event", string(eventStage), lastBot)
		// The user may have named the item they meant inside their own
		// wording; surface it if a listed line matches.
		if name := matchListedItem(msg, lastBot); name != "" {
			res.Slots[domain.SlotEventName] = name
		}
		return res

	case programStage == domain.ProgramStageListingShown:
		res := followupConfirm("program", string(programStage), lastBot)
		if name := matchListedItem(msg, lastBot); name != "" {
			res.Slots[domain.SlotProgramName] = name
		}
		return res

	case containsAny(lowerBot, programListingKeywords):
		// Program-ish context without a recognized stage.
		return &domain.IntentResult{
			Intent:     domain.IntentFollowupConfirm,
			Confidence: domain.ConfidenceMedium,
			Slots: map[string]any{
				domain.SlotContextType:    "program",
				domain.SlotLastBotMessage: truncate(lastBot, lastBotExcerptLen),
			},
			Reasoning: "affirmative in a program-flavored context with no recognized stage",
		}
	}
	return nil
}

func followupConfirm(contextType, stage, lastBot string) *domain.IntentResult {
	return &domain.IntentResult{
		Intent:     domain.IntentFollowupConfirm,
		Confidence: domain.ConfidenceHigh,
		Slots: map[string]any{
			domain.SlotContextType:    contextType,
			domain.SlotStage:          stage,
			domain.SlotLastBotMessage: truncate(lastBot, lastBotExcerptLen),
		},
		Reasoning: "affirmative resuming a " + contextType + " follow-up at stage " + stage,
	}
}

// matchListedItem fuzzy-matches the user's wording against each numbered line
// of the previous listing and returns the best-matching item text.
func matchListedItem(msg, lastBot string) string {
	items := ExtractNumberedItems(lastBot)
	if len(items) == 0 {
		return ""
	}
	name, score := patterns.BestMatch(msg, items)
	if score < domain.MinMatchScore {
		return ""
	}
	return name
}
