package safety

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestGuardrail() *Guardrail {
	return NewGuardrail(zap.NewNop())
}

func TestCheckInput_CrisisKeyword(t *testing.T) {
	g := newTestGuardrail()

	response, act := g.CheckInput("I want to kill myself")

	if response != CrisisRedirect {
		t.Fatalf("response = %q, want the crisis redirect", response)
	}
	if act == nil || act.Rule != RuleCrisis {
		t.Errorf("activation = %+v, want rule %q", act, RuleCrisis)
	}
}

func TestCheckInput_AbuseKeyword(t *testing.T) {
	g := newTestGuardrail()

	response, act := g.CheckInput("my partner hits me when he's angry")

	if response != CrisisRedirect {
		t.Fatalf("response = %q, want the crisis redirect", response)
	}
	if act == nil || act.Rule != RuleAbuse {
		t.Errorf("activation rule = %v, want %q", act, RuleAbuse)
	}
}

func TestCheckInput_SingleDistressWordPasses(t *testing.T) {
	g := newTestGuardrail()

	response, act := g.CheckInput("work has felt hopeless lately, any wellness tips?")

	if response != "" || act != nil {
		t.Errorf("one distress keyword must not trip the guardrail, got %q", response)
	}
}

func TestCheckInput_TwoDistressWordsRedirect(t *testing.T) {
	g := newTestGuardrail()

	response, act := g.CheckInput("everything feels hopeless and i feel worthless")

	if response != CrisisRedirect {
		t.Fatalf("response = %q, want the crisis redirect", response)
	}
	if act == nil || act.Rule != RuleDistress {
		t.Errorf("activation rule = %v, want %q", act, RuleDistress)
	}
}

func TestCheckInput_MentalHealthAdviceSeeking(t *testing.T) {
	g := newTestGuardrail()

	response, act := g.CheckInput("should i try meditation for my depression?")

	if response != TherapyRedirect {
		t.Fatalf("response = %q, want the therapy redirect", response)
	}
	if act == nil || act.Rule != RuleTherapy {
		t.Errorf("activation rule = %v, want %q", act, RuleTherapy)
	}
}

func TestCheckInput_MentalHealthMentionWithoutAdvicePasses(t *testing.T) {
	g := newTestGuardrail()

	// Naming a topic is not the same as asking for treatment guidance.
	response, act := g.CheckInput("do you have workshops about burnout?")

	if response != "" || act != nil {
		t.Errorf("topic mention must not trip the guardrail, got %q", response)
	}
}

func TestCheckInput_MedicalAdviceSeeking(t *testing.T) {
	g := newTestGuardrail()

	response, act := g.CheckInput("what should i take for a migraine?")

	if response != MedicalRedirect {
		t.Fatalf("response = %q, want the medical redirect", response)
	}
	if act == nil || act.Rule != RuleMedical {
		t.Errorf("activation rule = %v, want %q", act, RuleMedical)
	}
}

func TestCheckInput_LiveSessionTopic(t *testing.T) {
	g := newTestGuardrail()

	response, act := g.CheckInput("can you explain reiki to me?")

	if response != LiveSessionRedirect {
		t.Fatalf("response = %q, want the live session redirect", response)
	}
	if act == nil || act.Rule != RuleLiveSession {
		t.Errorf("activation rule = %v, want %q", act, RuleLiveSession)
	}
}

func TestCheckInput_CleanMessage(t *testing.T) {
	g := newTestGuardrail()

	response, act := g.CheckInput("what events are happening in june?")

	if response != "" || act != nil {
		t.Errorf("clean message must pass, got %q", response)
	}
}

func TestFilterOutput_ProfessionalReferralKept(t *testing.T) {
	g := newTestGuardrail()
	response := "It's wise to consult a doctor about your medication. Our retreats focus on rest and recovery."

	got, activations := g.FilterOutput(response, "tell me about rest")

	if got != response {
		t.Errorf("referral sentence must survive unchanged, got %q", got)
	}
	if len(activations) != 0 {
		t.Errorf("activations = %v, want none", activations)
	}
}

func TestFilterOutput_UnsafeAdvicePoisonsWholeResponse(t *testing.T) {
	g := newTestGuardrail()
	response := "Our retreats are lovely. You should take magnesium for your migraine. See you soon!"

	got, activations := g.FilterOutput(response, "help with migraines")

	if got != SafetyRedirect {
		t.Fatalf("one unsafe sentence must replace the whole response, got %q", got)
	}
	if len(activations) != 1 || activations[0].Rule != RuleUnsafe {
		t.Errorf("activations = %v, want one %q", activations, RuleUnsafe)
	}
}

func TestFilterOutput_CrisisMentionWithReferralKept(t *testing.T) {
	g := newTestGuardrail()
	response := "If thoughts of suicide ever come up, please contact your local crisis line right away."

	got, activations := g.FilterOutput(response, "i'm okay, just asking")

	if got != response {
		t.Errorf("a referral that names the topic must be kept, got %q", got)
	}
	if len(activations) != 0 {
		t.Errorf("activations = %v, want none", activations)
	}
}

func TestFilterOutput_PIIRequestReplaced(t *testing.T) {
	g := newTestGuardrail()
	response := "Great! Could you share your phone number so I can follow up?"

	got, activations := g.FilterOutput(response, "sign me up")

	if got != PIIRedirect {
		t.Fatalf("a PII request must replace the response, got %q", got)
	}
	if len(activations) != 1 || activations[0].Rule != RulePII {
		t.Errorf("activations = %v, want one %q", activations, RulePII)
	}
}

func TestFilterOutput_JudgmentalTimeRewritten(t *testing.T) {
	g := newTestGuardrail()
	response := "Five years is a long time to carry that, and small daily practices can help."

	got, activations := g.FilterOutput(response, "i've felt stuck for five years")

	if !strings.Contains(got, "Five years is a meaningful amount of time") {
		t.Errorf("rewrite must keep the subject, got %q", got)
	}
	if strings.Contains(strings.ToLower(got), "long time") {
		t.Errorf("judgmental phrasing must be gone, got %q", got)
	}
	if len(activations) != 1 || activations[0].Rule != RuleTimePhrase {
		t.Errorf("activations = %v, want one %q", activations, RuleTimePhrase)
	}
}

func TestFilterOutput_ThatIsALongTimeRewritten(t *testing.T) {
	g := newTestGuardrail()

	got, _ := g.FilterOutput("That's a long time!", "ten years of this")

	if !strings.Contains(got, "That's a meaningful amount of time") {
		t.Errorf("got %q", got)
	}
}
