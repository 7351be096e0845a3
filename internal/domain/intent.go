package domain

// Intent is the classified purpose of a single user message. String-typed so
// new variants can be added without touching consumers that switch on it.
type Intent string

const (
	IntentEvent                Intent = "EVENT"
	IntentKnowledge            Intent = "KNOWLEDGE"
	IntentHybrid               Intent = "HYBRID"
	IntentClarification        Intent = "CLARIFICATION"
	IntentGreeting             Intent = "GREETING"
	IntentFollowupSelect       Intent = "FOLLOWUP_SELECT"
	IntentFollowupConfirm      Intent = "FOLLOWUP_CONFIRM"
	IntentEventDetailRequest   Intent = "EVENT_DETAIL_REQUEST"
	IntentEventNavigate        Intent = "EVENT_NAVIGATE"
	IntentProgramDetailRequest Intent = "PROGRAM_DETAIL_REQUEST"
	IntentProgramNavigate      Intent = "PROGRAM_NAVIGATE"
	IntentProgramEnrollment    Intent = "PROGRAM_ENROLLMENT"
	IntentOther                Intent = "OTHER"
	IntentBooking              Intent = "BOOKING"
)

// Confidence bands gating which branch a classification takes. Empirically
// tuned values; overridable via config, these are the defaults.
const (
	ConfidenceHigh   = 0.8
	ConfidenceMedium = 0.6
	ConfidenceLow    = 0.4

	// MinMatchScore is the floor below which fuzzy title/name matches are
	// discarded entirely.
	MinMatchScore = 0.3
)

// Conventional slot keys. Consumers read these defensively; absence is never
// an error.
const (
	SlotDateText       = "date_text"
	SlotSelectionIndex = "selection_index"
	SlotContextType    = "context_type"
	SlotEventName      = "event_name"
	SlotProgramName    = "program_name"
	SlotStage          = "stage"
	SlotNavigateURL    = "navigate_url"
	SlotLastBotMessage = "last_bot_message"
)

// IntentResult is the output of one classification pass. Constructed fresh
// per user turn, never persisted, immutable after construction.
type IntentResult struct {
	Intent                Intent         `json:"intent"`
	Confidence            float64        `json:"confidence"`
	Slots                 map[string]any `json:"slots,omitempty"`
	ClarificationQuestion string         `json:"clarification_question,omitempty"`
	Reasoning             string         `json:"reasoning,omitempty"`
}

// Slot returns the string value of a slot, or "" when absent or not a string.
func (r *IntentResult) Slot(key string) string {
	if r.Slots == nil {
		return ""
	}
	if v, ok := r.Slots[key].(string); ok {
		return v
	}
	return ""
}

// SlotInt returns the int value of a slot, or -1 when absent.
func (r *IntentResult) SlotInt(key string) int {
	if r.Slots == nil {
		return -1
	}
	if v, ok := r.Slots[key].(int); ok {
		return v
	}
	return -1
}
