package postprocess

import (
	"regexp"
	"strings"
)

// Numbered-list reflow: models sometimes emit "1. **A** text 2. **B** text"
// run-on in one paragraph. Two passes force each item onto its own line,
// bold-prefixed items first, then plain ones.
var (
	runOnBoldItem  = regexp.MustCompile(`(\S)[ \t]+(\d+[.)][ \t]*\*\*)`)
	runOnPlainItem = regexp.MustCompile(`([.!?:])[ \t]+(\d+[.)][ \t]+[A-Z\[])`)
)

func reflowNumberedLists(text string) string {
	text = runOnBoldItem.ReplaceAllString(text, "$1\n$2")
	text = runOnPlainItem.ReplaceAllString(text, "$1\n$2")
	return text
}

// trailingQuestionRun captures two or more consecutive questions at the very
// end of the response.
var trailingQuestionRun = regexp.MustCompile(`(?:[^.!?\n]+\?\s*){2,}$`)

var singleQuestion = regexp.MustCompile(`[^.!?\n]+\?`)

// fixTrailingQuestions is a best-effort normalization pass. The contract is
// only that the response never ends in more than one question: when the final
// sentences stack several questions, all but the last are dropped. Text
// before the trailing run is left untouched.
func fixTrailingQuestions(text string) string {
	trimmed := strings.TrimRight(text, " \t\n")
	loc := trailingQuestionRun.FindStringIndex(trimmed)
	if loc == nil {
		return text
	}

	run := trimmed[loc[0]:]
	questions := singleQuestion.FindAllString(run, -1)
	if len(questions) < 2 {
		return text
	}
	last := strings.TrimSpace(questions[len(questions)-1])
	prefix := strings.TrimRight(trimmed[:loc[0]], " \t")
	if prefix == "" || strings.HasSuffix(prefix, "\n") {
		return prefix + last
	}
	return prefix + " " + last
}
