package patterns

import "testing"

func TestScore_SubstringMention(t *testing.T) {
	// A verbatim phrase mention scores the substring tier regardless of
	// surrounding words.
	got := Score("tell me about the breathwork basics workshop", "Breathwork Basics")
	if got != 0.95 {
		t.Errorf("Score = %v, want 0.95", got)
	}
}

func TestScore_TrademarkSymbolsIgnored(t *testing.T) {
	// Canonical titles carry decoration users never type.
	got := Score("is the inner glow retreat still on", "Inner Glow™ Retreat")
	if got != 0.95 {
		t.Errorf("Score = %v, want 0.95", got)
	}
}

func TestScore_WordOverlapCapsBelowSubstring(t *testing.T) {
	got := Score("anything about breathwork", "Breathwork Basics")
	if got <= 0 {
		t.Fatal("expected a positive overlap score")
	}
	if got >= 0.95 {
		t.Errorf("overlap score %v must stay below the substring tier", got)
	}
	// 1 of 2 words present, scaled by the overlap ceiling.
	want := 0.5 * 0.85
	if got != want {
		t.Errorf("Score = %v, want %v", got, want)
	}
}

func TestScore_NoOverlap(t *testing.T) {
	if got := Score("what time is lunch", "Sound Bath Evening"); got != 0 {
		t.Errorf("Score = %v, want 0", got)
	}
}

func TestBestMatch_PicksHighest(t *testing.T) {
	candidates := []string{"Sound Bath Evening", "Breathwork Basics", "Inner Glow Retreat"}

	name, score := BestMatch("i'd like to join breathwork basics", candidates)
	if name != "Breathwork Basics" {
		t.Errorf("BestMatch name = %q, want %q", name, "Breathwork Basics")
	}
	if score != 0.95 {
		t.Errorf("BestMatch score = %v, want 0.95", score)
	}
}

func TestBestMatch_FloorsUselessScores(t *testing.T) {
	candidates := []string{"Mindful Morning Movement Monthly Membership"}

	// One overlapping word out of five is below the usefulness floor.
	name, score := BestMatch("tell me about movement classes", candidates)
	if name != "" || score != 0 {
		t.Errorf("BestMatch = (%q, %v), want no match", name, score)
	}
}
