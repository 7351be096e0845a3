package postprocess

import "testing"

func TestReflowNumberedLists_BoldRunOn(t *testing.T) {
	in := "Here are two options: 1. **Breathwork Basics** - June 2 2. **Sound Bath** - June 9"

	got := reflowNumberedLists(in)

	want := "Here are two options:\n1. **Breathwork Basics** - June 2\n2. **Sound Bath** - June 9"
	if got != want {
		t.Errorf("reflowNumberedLists = %q, want %q", got, want)
	}
}

func TestReflowNumberedLists_PlainRunOn(t *testing.T) {
	in := "Options: 1. Alpha session. 2. Beta session."

	got := reflowNumberedLists(in)

	want := "Options:\n1. Alpha session.\n2. Beta session."
	if got != want {
		t.Errorf("reflowNumberedLists = %q, want %q", got, want)
	}
}

func TestReflowNumberedLists_AlreadyFormatted(t *testing.T) {
	in := "1. **A** - first\n2. **B** - second"

	if got := reflowNumberedLists(in); got != in {
		t.Errorf("well-formed list must pass through, got %q", got)
	}
}

func TestFixTrailingQuestions_KeepsOnlyLast(t *testing.T) {
	in := "Here's the info. Would you like more? Shall I book you in?"

	got := fixTrailingQuestions(in)

	want := "Here's the info. Shall I book you in?"
	if got != want {
		t.Errorf("fixTrailingQuestions = %q, want %q", got, want)
	}
}

func TestFixTrailingQuestions_SingleQuestionUntouched(t *testing.T) {
	in := "All set for June. Would you like more details?"

	if got := fixTrailingQuestions(in); got != in {
		t.Errorf("single trailing question must pass through, got %q", got)
	}
}

func TestFixTrailingQuestions_MidTextQuestionUntouched(t *testing.T) {
	in := "Curious about breathwork? It's a guided practice. We run sessions monthly."

	if got := fixTrailingQuestions(in); got != in {
		t.Errorf("non-trailing question must pass through, got %q", got)
	}
}
