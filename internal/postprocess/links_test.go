package postprocess

import (
	"strings"
	"testing"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/mocks"
)

func TestLinkProgramMentions(t *testing.T) {
	c := newTestChain(&mocks.MockCatalog{ProgramsList: []domain.Program{hybridProgram()}}, nil)

	got := c.linkProgramMentions("I think Foundations of Calm would suit you well.")

	if !strings.Contains(got, "[Foundations of Calm](https://example.com/programs/calm)") {
		t.Errorf("bare mention must become a link, got %q", got)
	}
}

func TestLinkProgramMentions_AlreadyLinkedLeftAlone(t *testing.T) {
	c := newTestChain(&mocks.MockCatalog{ProgramsList: []domain.Program{hybridProgram()}}, nil)
	text := "See [Foundations of Calm](https://example.com/programs/calm) for details."

	got := c.linkProgramMentions(text)

	if got != text {
		t.Errorf("linked mention must not be double-wrapped, got %q", got)
	}
}

func TestCorrectNavigationURL_ReplacesEventPageURL(t *testing.T) {
	c := newTestChain(nil, nil)
	lastEvent := &domain.Event{Title: "Breathwork Basics", PageURL: "https://example.com/events/breathwork-basics"}
	text := "Taking you there now! " + domain.NavigateMarker("https://example.com/events/made-up-slug")

	got := c.correctNavigationURL(text, lastEvent)

	want := "Taking you there now! " + domain.NavigateMarker(lastEvent.PageURL)
	if got != want {
		t.Errorf("correctNavigationURL = %q, want %q", got, want)
	}
}

func TestCorrectNavigationURL_NonEventURLLeftAlone(t *testing.T) {
	c := newTestChain(nil, nil)
	lastEvent := &domain.Event{Title: "Breathwork Basics", PageURL: "https://example.com/events/breathwork-basics"}
	text := domain.NavigateMarker("https://example.com/programs/calm")

	got := c.correctNavigationURL(text, lastEvent)

	if got != text {
		t.Errorf("program navigation must not be rewritten, got %q", got)
	}
}

func TestCorrectNavigationURL_NoLastEvent(t *testing.T) {
	c := newTestChain(nil, nil)
	text := domain.NavigateMarker("https://example.com/events/whatever")

	if got := c.correctNavigationURL(text, nil); got != text {
		t.Errorf("no last event, text must pass through, got %q", got)
	}
}

func TestAppendContextualLinks_TopicMatch(t *testing.T) {
	p := hybridProgram()
	p.Name = "Breathwork Foundations"
	c := newTestChain(&mocks.MockCatalog{ProgramsList: []domain.Program{p}}, nil)

	got := c.appendContextualLinks("Breathwork is a calming guided practice.", "what is breathwork")

	if !strings.Contains(got, "You might also like to explore:") {
		t.Errorf("expected a link block, got %q", got)
	}
	if !strings.Contains(got, "- [Breathwork Foundations](https://example.com/programs/calm)") {
		t.Errorf("expected the matching program link, got %q", got)
	}
}

func TestAppendContextualLinks_SkippedWhenLinksPresent(t *testing.T) {
	p := hybridProgram()
	p.Name = "Breathwork Foundations"
	c := newTestChain(&mocks.MockCatalog{ProgramsList: []domain.Program{p}}, nil)
	text := "Read more on the [breathwork page](https://example.com/kb/breathwork)."

	got := c.appendContextualLinks(text, "what is breathwork")

	if got != text {
		t.Errorf("responses with links must pass through, got %q", got)
	}
}

func TestAppendContextualLinks_GenericInterest(t *testing.T) {
	c := newTestChain(&mocks.MockCatalog{ProgramsList: []domain.Program{hybridProgram()}}, nil)

	got := c.appendContextualLinks("We'd love to share what we offer.", "I'm interested in your programs")

	if !strings.Contains(got, "- [Foundations of Calm](https://example.com/programs/calm)") {
		t.Errorf("generic interest must surface program links, got %q", got)
	}
}

func TestAppendContextualLinks_NoMatchNoBlock(t *testing.T) {
	c := newTestChain(&mocks.MockCatalog{ProgramsList: []domain.Program{hybridProgram()}}, nil)
	text := "Our venue has free parking."

	got := c.appendContextualLinks(text, "where do i park")

	if got != text {
		t.Errorf("no topic match, text must pass through, got %q", got)
	}
}
