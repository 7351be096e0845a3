package safety

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/patterns"
)

// Guardrail rule names, used in flags, metrics and audit records.
const (
	RuleCrisis      = "crisis_redirect"
	RuleAbuse       = "abuse_redirect"
	RuleDistress    = "distress_redirect"
	RuleTherapy     = "therapy_redirect"
	RuleMedical     = "medical_redirect"
	RuleLiveSession = "live_session_referral"
	RuleUnsafe      = "unsafe_advice_block"
	RuleTimePhrase  = "judgmental_time_fix"
	RulePII         = "pii_request_block"
)

// IsBlockingRule reports whether an output-side rule replaces the whole
// response rather than rewriting it in place. A blocked response is terminal:
// nothing downstream may decorate it.
func IsBlockingRule(rule string) bool {
	return rule == RuleUnsafe || rule == RulePII
}

const excerptLen = 200

// Guardrail is the input- and output-side safety engine.
type Guardrail struct {
	log *zap.Logger
}

func NewGuardrail(log *zap.Logger) *Guardrail {
	return &Guardrail{log: log}
}

func activation(rule, pattern, userMsg string) *domain.GuardrailActivation {
	return &domain.GuardrailActivation{
		ID:        uuid.NewString(),
		Rule:      rule,
		Pattern:   pattern,
		Excerpt:   truncate(userMsg, excerptLen),
		CreatedAt: time.Now().UTC(),
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// CheckInput runs the input-side checks, short-circuiting the whole pipeline
// when one fires: no knowledge lookup, no event lookup, no model call.
func (g *Guardrail) CheckInput(message string) (string, *domain.GuardrailActivation) {
	lower := patterns.Normalize(message)

	if kw, ok := containsAnyKeyword(lower, crisisKeywords); ok {
		g.logActivation(RuleCrisis, kw, message)
		return CrisisRedirect, activation(RuleCrisis, kw, message)
	}
	if kw, ok := containsAnyKeyword(lower, abuseKeywords); ok {
		g.logActivation(RuleAbuse, kw, message)
		return CrisisRedirect, activation(RuleAbuse, kw, message)
	}
	if countKeywords(lower, distressKeywords) >= 2 {
		g.logActivation(RuleDistress, "distress>=2", message)
		return CrisisRedirect, activation(RuleDistress, "distress>=2", message)
	}
	if kw, ok := containsAnyKeyword(lower, mentalHealthKeywords); ok && adviceSeeking.MatchString(lower) {
		g.logActivation(RuleTherapy, kw, message)
		return TherapyRedirect, activation(RuleTherapy, kw, message)
	}
	if kw, ok := containsAnyKeyword(lower, medicalKeywords); ok && adviceSeeking.MatchString(lower) {
		g.logActivation(RuleMedical, kw, message)
		return MedicalRedirect, activation(RuleMedical, kw, message)
	}
	if kw, ok := containsAnyKeyword(lower, liveSessionKeywords); ok {
		g.logActivation(RuleLiveSession, kw, message)
		return LiveSessionRedirect, activation(RuleLiveSession, kw, message)
	}
	return "", nil
}

// FilterOutput runs the output-side filter over a model-produced response.
// Sentence-scoped, not whole-response scoped: an otherwise safe response is
// not discarded for merely mentioning a keyword, but a single sentence that
// gives direct advice poisons the entire response.
func (g *Guardrail) FilterOutput(response, userMessage string) (string, []domain.GuardrailActivation) {
	var activations []domain.GuardrailActivation

	// Request-for-PII in bot output replaces the whole response.
	if m := piiRequest.FindString(response); m != "" {
		g.logActivation(RulePII, m, userMessage)
		return PIIRedirect, append(activations, *activation(RulePII, m, userMessage))
	}

	sentences := sentenceBoundary.FindAllString(response, -1)
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		_, hasCrisis := containsAnyKeyword(lower, crisisKeywords)
		_, hasMedical := containsAnyKeyword(lower, medicalKeywords)
		if !hasCrisis && !hasMedical {
			continue
		}
		if safeRedirect.MatchString(sentence) {
			// Recommending a professional is exactly what we want.
			continue
		}
		if m := unsafeAdvice.FindString(sentence); m != "" {
			g.logActivation(RuleUnsafe, m, userMessage)
			return SafetyRedirect, append(activations, *activation(RuleUnsafe, m, userMessage))
		}
	}

	// Judgmental time phrasing is rewritten in place, subject preserved.
	if judgmentalTime.MatchString(response) {
		fixed := judgmentalTime.ReplaceAllString(response, judgmentalTimeReplacement)
		act := activation(RuleTimePhrase, judgmentalTime.String(), userMessage)
		act.Before = truncate(response, excerptLen)
		act.After = truncate(fixed, excerptLen)
		g.log.Info("rewrote judgmental time phrasing",
			zap.String("before", act.Before),
			zap.String("after", act.After),
		)
		activations = append(activations, *act)
		response = fixed
	}

	return response, activations
}

func (g *Guardrail) logActivation(rule, pattern, userMsg string) {
	g.log.Warn("guardrail activated",
		zap.String("rule", rule),
		zap.String("pattern", pattern),
		zap.String("message", truncate(userMsg, excerptLen)),
	)
}
