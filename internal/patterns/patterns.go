package patterns

import (
	"regexp"
	"strings"
)

// Pattern tables are data, not inlined literals, so they can be tested and
// extended independently of the classifier logic.
const (
	CategoryDate      = "date"
	CategoryTime      = "time"
	CategoryAction    = "event_action"
	CategoryKnowledge = "knowledge_phrase"
	CategoryGreeting  = "greeting"
	CategoryProgram   = "program_keyword"
	CategoryAffirm    = "affirmative"
)

var monthNames = `january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept?|oct|nov|dec`

var patternTables = map[string][]string{
	CategoryDate: {
		`\b(` + monthNames + `)\.?\s+\d{1,2}(st|nd|rd|th)?\b`,
		`\b\d{1,2}(st|nd|rd|th)?\s+(of\s+)?(` + monthNames + `)\b`,
		`\b\d{1,2}[/-]\d{1,2}([/-]\d{2,4})?\b`,
		`\b\d{4}-\d{2}-\d{2}\b`,
		`\b(in|during|for|this|next)\s+(` + monthNames + `)\b`,
		`\b(today|tomorrow|tonight|this\s+week(end)?|next\s+week(end)?|next\s+month)\b`,
	},
	CategoryTime: {
		`\bwhen\s+(is|are|does|do|will)\b`,
		`\bwhat\s+time\b`,
		`\b(schedule|calendar|timetable)\b`,
		`\bupcoming\b`,
		`\b(` + monthNames + `)\b.*\b(event|workshop|session|retreat|class)s?\b`,
		`\b(event|workshop|session|retreat|class)s?\b.*\b(` + monthNames + `)\b`,
	},
	CategoryAction: {
		`\b(register|registration|sign\s*up|signup)\b`,
		`\b(book|booking|reserve|reservation|rsvp)\b`,
		`\battend(ing)?\b`,
		`\badd\s+(it\s+)?to\s+(my\s+)?calendar\b`,
		`\b(join|enroll)\s+(the\s+)?(event|workshop|session|retreat|class)\b`,
	},
	CategoryKnowledge: {
		`\bwhat\s+(is|are)\b`,
		`\bhow\s+(do|does|can|should)\b`,
		`\btell\s+me\s+(more\s+)?about\b`,
		`\bexplain\b`,
		`\bwhy\s+(is|do|does|should)\b`,
		`\bbenefits?\s+of\b`,
		`\b(meaning|definition)\s+of\b`,
		`\blearn\s+(more\s+)?about\b`,
	},
	CategoryGreeting: {
		`^(hi|hiya|hello|hey|howdy|good\s+(morning|afternoon|evening)|namaste)[\s!.,]*$`,
		`^(hi|hello|hey)\s+there[\s!.,]*$`,
		`^how\s+are\s+you[\s?!.]*$`,
	},
	CategoryProgram: {
		`\bprogramme?s?\b`,
		`\bcourses?\b`,
		`\bmemberships?\b`,
		`\btrainings?\b`,
		`\bcertifications?\b`,
		`\bself[-\s]?paced\b`,
	},
	CategoryAffirm: {
		`^(y|yes|yeah|yep|yup|sure|ok|okay|alright|absolutely|definitely|of\s+course)[\s!.,]*$`,
		`^(yes\s+please|please\s+do|sounds\s+good|that\s+works|go\s+ahead|let'?s\s+do\s+it)[\s!.,]*$`,
		`^(i'?d\s+love\s+to|i\s+would|show\s+me)[\s!.,]*$`,
	},
}

// numberedItem matches one item of a markdown numbered list at line start,
// bold-prefixed or plain.
var numberedItem = regexp.MustCompile(`(?m)^\s*(?:\*\*)?\d+[.)]\s+`)

// Matcher exposes boolean/match signals for each named pattern category.
// All methods expect a lowercased message.
type Matcher struct {
	compiled map[string][]*regexp.Regexp
}

func NewMatcher() *Matcher {
	m := &Matcher{compiled: make(map[string][]*regexp.Regexp, len(patternTables))}
	for category, table := range patternTables {
		m.compiled[category] = compilePatterns(table)
	}
	return m
}

func compilePatterns(table []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(table))
	for _, p := range table {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

func (m *Matcher) matches(category, msg string) bool {
	for _, re := range m.compiled[category] {
		if re.MatchString(msg) {
			return true
		}
	}
	return false
}

func (m *Matcher) firstMatch(category, msg string) string {
	for _, re := range m.compiled[category] {
		if loc := re.FindString(msg); loc != "" {
			return loc
		}
	}
	return ""
}

func (m *Matcher) HasDate(msg string) bool            { return m.matches(CategoryDate, msg) }
func (m *Matcher) HasTimePattern(msg string) bool     { return m.matches(CategoryTime, msg) }
func (m *Matcher) HasEventAction(msg string) bool     { return m.matches(CategoryAction, msg) }
func (m *Matcher) HasKnowledgePhrase(msg string) bool { return m.matches(CategoryKnowledge, msg) }
func (m *Matcher) HasProgramKeyword(msg string) bool  { return m.matches(CategoryProgram, msg) }

// DateText returns the first matched date expression, for the date_text slot.
func (m *Matcher) DateText(msg string) string { return m.firstMatch(CategoryDate, msg) }

// IsGreeting reports whether the whole message is a greeting. The patterns
// are anchored so "hi, what events are in June" is not swallowed.
func (m *Matcher) IsGreeting(msg string) bool {
	return m.matches(CategoryGreeting, strings.TrimSpace(msg))
}

// IsAffirmative reports whether the whole message is a bare confirmation.
func (m *Matcher) IsAffirmative(msg string) bool {
	return m.matches(CategoryAffirm, strings.TrimSpace(msg))
}

// HasNumberedList reports whether text contains a markdown numbered list.
func (m *Matcher) HasNumberedList(text string) bool {
	return numberedItem.MatchString(text)
}

// Normalize lowercases, trims and collapses whitespace before matching.
var spaceNormalizer = regexp.MustCompile(`\s+`)

func Normalize(input string) string {
	text := strings.ToLower(strings.TrimSpace(input))
	return spaceNormalizer.ReplaceAllString(text, " ")
}
