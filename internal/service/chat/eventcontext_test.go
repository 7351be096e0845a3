package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/mocks"
	"github.com/haven-wellness/concierge/internal/router"
)

func juneAndJulyEvents() []domain.Event {
	june := breathworkEvent()
	july := breathworkEvent()
	july.Title = "Sound Bath Evening"
	july.StartsAt = time.Date(2026, time.July, 14, 18, 0, 0, 0, time.UTC)
	july.EndsAt = time.Date(2026, time.July, 14, 19, 30, 0, 0, time.UTC)
	return []domain.Event{june, july}
}

func TestBuildEventContext_MonthFilter(t *testing.T) {
	events := &mocks.MockEventService{
		ListUpcomingFunc: func(ctx context.Context, limit int) ([]domain.Event, error) {
			return juneAndJulyEvents(), nil
		},
	}
	svc, _ := newTestService(&testDeps{events: events})

	block, direct := svc.buildEventContext(context.Background(), "what's on in june", "in june")

	if direct {
		t.Fatal("a month query must not be a direct event")
	}
	if !strings.Contains(block, "Breathwork Basics") {
		t.Errorf("june event missing from context: %q", block)
	}
	if strings.Contains(block, "Sound Bath Evening") {
		t.Errorf("july event must be filtered out: %q", block)
	}
}

func TestBuildEventContext_EmptyMonthFallsBackToNearest(t *testing.T) {
	events := &mocks.MockEventService{
		ListUpcomingFunc: func(ctx context.Context, limit int) ([]domain.Event, error) {
			return juneAndJulyEvents(), nil
		},
	}
	svc, _ := newTestService(&testDeps{events: events})

	block, _ := svc.buildEventContext(context.Background(), "events in march", "in march")

	if !strings.Contains(block, "No events are scheduled in March.") {
		t.Errorf("expected the empty-month notice, got %q", block)
	}
	if !strings.Contains(block, "Breathwork Basics") {
		t.Errorf("nearest events must still be listed, got %q", block)
	}
}

func TestBuildEventContext_CalendarUnavailable(t *testing.T) {
	events := &mocks.MockEventService{
		ListUpcomingFunc: func(ctx context.Context, limit int) ([]domain.Event, error) {
			return nil, domain.ErrCalendarUnavailable
		},
	}
	svc, _ := newTestService(&testDeps{events: events})

	block, direct := svc.buildEventContext(context.Background(), "any events soon", "")

	if direct || block != calendarUnavailableContext {
		t.Errorf("block = %q, direct = %v", block, direct)
	}
}

func TestBuildEventContext_VerbatimTitleGoesDirect(t *testing.T) {
	events := &mocks.MockEventService{
		ListUpcomingFunc: func(ctx context.Context, limit int) ([]domain.Event, error) {
			return juneAndJulyEvents(), nil
		},
	}
	svc, _ := newTestService(&testDeps{events: events})

	block, direct := svc.buildEventContext(context.Background(), "tell me about sound bath evening", "")

	if !direct {
		t.Fatal("a verbatim title mention must go direct")
	}
	if !strings.HasPrefix(block, domain.DirectEventOpen) || !strings.HasSuffix(block, domain.DirectEventClose) {
		t.Errorf("direct block must be wrapped in markers, got %q", block)
	}
	if !strings.Contains(block, "**Sound Bath Evening**") {
		t.Errorf("wrong event rendered: %q", block)
	}
}

func TestRenderEventSummary_TwoSentencesAndCTA(t *testing.T) {
	ev := breathworkEvent()

	got := renderEventSummary(&ev)

	if !strings.Contains(got, "A gentle introduction to conscious breathing. Suitable for complete beginners.") {
		t.Errorf("summary must keep the first two sentences, got %q", got)
	}
	if strings.Contains(got, "Mats provided.") {
		t.Errorf("summary must trim the description, got %q", got)
	}
	if !strings.Contains(got, "📍 Riverside Studio") {
		t.Errorf("location line missing: %q", got)
	}
	if !strings.HasSuffix(got, router.FormatCTA(router.CTAEventMoreDetails, "")) {
		t.Errorf("summary must end with the details CTA, got %q", got)
	}
}

func TestRenderEventDetails_FullDescriptionAndNavigateCTA(t *testing.T) {
	ev := breathworkEvent()

	got := renderEventDetails(&ev)

	if !strings.Contains(got, ev.Description) {
		t.Errorf("details must keep the whole description, got %q", got)
	}
	if !strings.HasSuffix(got, router.FormatCTA(router.CTAEventNavigate, ev.PageURL)) {
		t.Errorf("details must end with the navigate CTA, got %q", got)
	}
}

func TestFormatEventDate(t *testing.T) {
	ev := breathworkEvent()

	got := formatEventDate(&ev)

	want := "Tuesday, June 2, 2026, 7:00 PM – 8:30 PM (UTC)"
	if got != want {
		t.Errorf("formatEventDate = %q, want %q", got, want)
	}
}

func TestFormatEventDate_UnknownTimezoneFallsBackToUTC(t *testing.T) {
	ev := breathworkEvent()
	ev.Timezone = "Not/AZone"

	got := formatEventDate(&ev)

	if !strings.Contains(got, "(UTC)") {
		t.Errorf("unknown timezone must fall back to UTC, got %q", got)
	}
}

func TestFirstSentences(t *testing.T) {
	text := "One. Two! Three?"

	if got := firstSentences(text, 2); got != "One. Two!" {
		t.Errorf("firstSentences = %q, want %q", got, "One. Two!")
	}
	if got := firstSentences("No terminator here", 2); got != "No terminator here" {
		t.Errorf("firstSentences = %q", got)
	}
	if got := firstSentences("   ", 2); got != "" {
		t.Errorf("firstSentences = %q, want empty", got)
	}
}
