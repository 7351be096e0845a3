package patterns

import "testing"

func TestHasDate(t *testing.T) {
	m := NewMatcher()

	cases := []struct {
		msg  string
		want bool
	}{
		{"what's happening june 21st", true},
		{"events on 21 june", true},
		{"anything on 6/21?", true},
		{"2025-06-21", true},
		{"any events in june", true},
		{"what about next month", true},
		{"anything tomorrow", true},
		{"what is breathwork", false},
		{"tell me about yoga", false},
	}

	for _, tc := range cases {
		if got := m.HasDate(tc.msg); got != tc.want {
			t.Errorf("HasDate(%q) = %v, want %v", tc.msg, got, tc.want)
		}
	}
}

func TestDateText(t *testing.T) {
	m := NewMatcher()

	if got := m.DateText("any events in june please"); got != "in june" {
		t.Errorf("DateText = %q, want %q", got, "in june")
	}
	if got := m.DateText("no dates here"); got != "" {
		t.Errorf("DateText = %q, want empty", got)
	}
}

func TestHasTimePattern(t *testing.T) {
	m := NewMatcher()

	cases := []struct {
		msg  string
		want bool
	}{
		{"when is the next retreat", true},
		{"what time does it start", true},
		{"show me the schedule", true},
		{"any upcoming workshops", true},
		{"tell me about meditation", false},
	}

	for _, tc := range cases {
		if got := m.HasTimePattern(tc.msg); got != tc.want {
			t.Errorf("HasTimePattern(%q) = %v, want %v", tc.msg, got, tc.want)
		}
	}
}

func TestHasEventAction(t *testing.T) {
	m := NewMatcher()

	cases := []struct {
		msg  string
		want bool
	}{
		{"how do i register", true},
		{"i want to sign up", true},
		{"can i book a spot", true},
		{"add it to my calendar", true},
		{"i'm attending with a friend", true},
		{"what is sound healing", false},
	}

	for _, tc := range cases {
		if got := m.HasEventAction(tc.msg); got != tc.want {
			t.Errorf("HasEventAction(%q) = %v, want %v", tc.msg, got, tc.want)
		}
	}
}

func TestHasKnowledgePhrase(t *testing.T) {
	m := NewMatcher()

	cases := []struct {
		msg  string
		want bool
	}{
		{"what is breathwork", true},
		{"how does meditation help", true},
		{"tell me more about the retreat", true},
		{"benefits of cold plunging", true},
		{"book me in", false},
	}

	for _, tc := range cases {
		if got := m.HasKnowledgePhrase(tc.msg); got != tc.want {
			t.Errorf("HasKnowledgePhrase(%q) = %v, want %v", tc.msg, got, tc.want)
		}
	}
}

func TestIsGreeting_AnchoredToWholeMessage(t *testing.T) {
	m := NewMatcher()

	cases := []struct {
		msg  string
		want bool
	}{
		{"hi", true},
		{"hello!", true},
		{"hey there", true},
		{"good morning", true},
		{"how are you?", true},
		// A greeting followed by a real question must not be swallowed.
		{"hi, what events are in june", false},
		{"hello can i book the retreat", false},
	}

	for _, tc := range cases {
		if got := m.IsGreeting(tc.msg); got != tc.want {
			t.Errorf("IsGreeting(%q) = %v, want %v", tc.msg, got, tc.want)
		}
	}
}

func TestIsAffirmative(t *testing.T) {
	m := NewMatcher()

	cases := []struct {
		msg  string
		want bool
	}{
		{"yes", true},
		{"y", true},
		{"yes please", true},
		{"sounds good!", true},
		{"sure", true},
		{"let's do it", true},
		{"yes but what about the price", false},
		{"no", false},
	}

	for _, tc := range cases {
		if got := m.IsAffirmative(tc.msg); got != tc.want {
			t.Errorf("IsAffirmative(%q) = %v, want %v", tc.msg, got, tc.want)
		}
	}
}

func TestHasProgramKeyword(t *testing.T) {
	m := NewMatcher()

	if !m.HasProgramKeyword("do you have any programs") {
		t.Error("expected program keyword to match 'programs'")
	}
	if !m.HasProgramKeyword("is there a self-paced course") {
		t.Error("expected program keyword to match 'self-paced'")
	}
	if m.HasProgramKeyword("what events are coming up") {
		t.Error("did not expect a program keyword in an event query")
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  Hello   WORLD  "); got != "hello world" {
		t.Errorf("Normalize = %q, want %q", got, "hello world")
	}
}

func TestHasNumberedList(t *testing.T) {
	m := NewMatcher()

	if !m.HasNumberedList("Here you go:\n1. **Breathwork Basics** - June 2\n2. **Sound Bath** - June 9") {
		t.Error("expected numbered list to be detected")
	}
	if m.HasNumberedList("We have a few things coming up soon.") {
		t.Error("did not expect a numbered list")
	}
}
