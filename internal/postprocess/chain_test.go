package postprocess

import (
	"context"
	"strings"
	"testing"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/mocks"
	"github.com/haven-wellness/concierge/internal/safety"
)

func TestApply_ReflowAndQuestionNormalization(t *testing.T) {
	c := newTestChain(nil, nil)
	in := Input{
		UserMessage: "what's coming up?",
		Response:    "Two picks: 1. **Breathwork Basics** - June 2 2. **Sound Bath** - June 9\nWant the details? Shall I pick one for you?",
	}

	got, activations := c.Apply(context.Background(), in)

	if len(activations) != 0 {
		t.Fatalf("activations = %v, want none", activations)
	}
	if !strings.Contains(got, "\n1. **Breathwork Basics**") || !strings.Contains(got, "\n2. **Sound Bath**") {
		t.Errorf("list items must sit on their own lines, got %q", got)
	}
	if strings.Contains(got, "Want the details?") {
		t.Errorf("only the last trailing question may survive, got %q", got)
	}
	if !strings.HasSuffix(got, "Shall I pick one for you?") {
		t.Errorf("last question must survive, got %q", got)
	}
}

func TestApply_SafetyRedirectShortCircuits(t *testing.T) {
	c := newTestChain(nil, nil)
	in := Input{
		UserMessage: "help with migraines",
		Response:    "You should take magnesium for your migraine.",
	}

	got, activations := c.Apply(context.Background(), in)

	if got != safety.SafetyRedirect {
		t.Fatalf("got %q, want the safety redirect verbatim", got)
	}
	if len(activations) != 1 {
		t.Errorf("activations = %v, want exactly one", activations)
	}
}

func TestApply_PIIRedirectShortCircuits(t *testing.T) {
	// A catalog full of linkable programs and a user message that would
	// normally earn contextual links: none of it may touch the redirect.
	c := newTestChain(&mocks.MockCatalog{ProgramsList: []domain.Program{hybridProgram()}}, nil)
	in := Input{
		UserMessage: "I'm interested in your programs",
		Response:    "Could you share your phone number so I can follow up?",
	}

	got, activations := c.Apply(context.Background(), in)

	if got != safety.PIIRedirect {
		t.Fatalf("got %q, want the PII redirect verbatim", got)
	}
	if len(activations) != 1 || activations[0].Rule != safety.RulePII {
		t.Errorf("activations = %v, want exactly one PII activation", activations)
	}
}

func TestApply_StagedResponseGetsCTA(t *testing.T) {
	c := newTestChain(nil, nil)
	in := Input{
		UserMessage:  "yes",
		Response:     "It runs for six weeks with weekly live calls.",
		ProgramStage: domain.ProgramStageListingShown,
		StageSet:     true,
	}

	got, _ := c.Apply(context.Background(), in)

	if !strings.Contains(got, "Would you like more details about this program?") {
		t.Errorf("staged response must end with the canonical CTA, got %q", got)
	}
}

func TestApply_UnstagedResponseGetsNoCTA(t *testing.T) {
	c := newTestChain(nil, nil)
	in := Input{
		UserMessage: "tell me about the studio",
		Response:    "The studio sits by the river.",
	}

	got, _ := c.Apply(context.Background(), in)

	if strings.Contains(got, "Would you like more details") {
		t.Errorf("no stage slot, no CTA, got %q", got)
	}
}
