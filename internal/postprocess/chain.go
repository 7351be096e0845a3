package postprocess

import (
	"context"

	"go.uber.org/zap"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/ports"
	"github.com/haven-wellness/concierge/internal/safety"
)

// Input carries everything the chain needs for one response. The chain never
// reaches back into conversation state on its own.
type Input struct {
	Response    string
	UserMessage string
	History     []domain.ChatMessage

	// LastEvent is the event most recently discussed, for navigation-URL
	// correction and calendar booking. Nil when no event is in play.
	LastEvent *domain.Event

	// ProgramStage is the follow-up stage slot the router set for this turn.
	// CTA enforcement runs only when StageSet is true.
	ProgramStage domain.ProgramStage
	StageSet     bool
}

// Chain is the ordered sequence of pure text transforms applied to every
// model-produced response before it is returned. The order is fixed; no pass
// may be skipped except as documented on the pass itself.
type Chain struct {
	guardrail *safety.Guardrail
	catalog   ports.Catalog
	events    ports.EventService
	log       *zap.Logger

	calendarID string
}

func NewChain(guardrail *safety.Guardrail, catalog ports.Catalog, events ports.EventService, calendarID string, log *zap.Logger) *Chain {
	return &Chain{
		guardrail:  guardrail,
		catalog:    catalog,
		events:     events,
		calendarID: calendarID,
		log:        log,
	}
}

// Apply runs the ten passes in order and returns the final text plus any
// guardrail activations raised along the way.
func (c *Chain) Apply(ctx context.Context, in Input) (string, []domain.GuardrailActivation) {
	text := in.Response

	// 1. Numbered-list reflow.
	text = reflowNumberedLists(text)

	// 2. At most one trailing question.
	text = fixTrailingQuestions(text)

	// 3. Sentence-scoped safety filter. A rule that replaced the whole
	// response ends the chain here: a redirect is never decorated.
	text, activations := c.guardrail.FilterOutput(text, in.UserMessage)
	for _, act := range activations {
		if safety.IsBlockingRule(act.Rule) {
			return text, activations
		}
	}

	// 4. Authoritative enrollment injection.
	text = c.injectEnrollment(text, in)

	// 5. Checkout-URL injection.
	text = c.injectCheckoutURL(text, in)

	// 6. Program-link injection.
	text = c.linkProgramMentions(text)

	// 7. Navigation-URL correction.
	text = c.correctNavigationURL(text, in.LastEvent)

	// 8. Calendar-action processing.
	text = c.processCalendarAction(ctx, text)

	// 9. Contextual-link appending. Safety redirects never reach this pass.
	text = c.appendContextualLinks(text, in.UserMessage)

	// 10. Canonical CTA enforcement.
	if in.StageSet {
		text = c.enforceCTA(text, in.ProgramStage)
	}

	return text, activations
}
