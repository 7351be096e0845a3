package postprocess

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/haven-wellness/concierge/internal/domain"
)

// Enrollment injection. Triggered only by explicit enrollment intent in the
// user's message, never by the bot's own wording. Whatever payment copy the
// model invented is stripped, then the authoritative block from the program
// table is appended. Invariant: a price or checkout URL may reach the user
// only from the program table.

var enrollmentIntent = regexp.MustCompile(
	`(?i)\b(enroll|enrol|sign\s*up|how\s+much|what.{0,20}cost|price|pricing|payment\s+(plan|option)s?|pay\s+for|how\s+do\s+i\s+join)\b`)

// IsEnrollmentQuery reports whether a user message explicitly asks about
// enrollment or cost. The orchestrator uses it to relabel the turn's intent.
func IsEnrollmentQuery(userMessage string) bool {
	return enrollmentIntent.MatchString(userMessage)
}

// Cleanup battery for model-invented payment copy.
var (
	inventedFigure       = regexp.MustCompile(`[^.\n]*[$£€]\s?\d[\d,]*(\.\d{2})?[^.\n]*[.\n]?`)
	inventedClarityCall  = regexp.MustCompile(`(?i)[^.\n]*clarity\s+call[^.\n]*[.\n]?`)
	inventedCheckoutLine = regexp.MustCompile(`(?i)[^.\n]*\b(payment\s+plan|installment|instalment|deposit\s+of)\b[^.\n]*[.\n]?`)
)

const historyScanDepth = 6

// resolveProgram finds which program the conversation is about, matching
// known names longest-first over the user message, the response, and recent
// history so "Yoga Teacher Training Advanced" is never shadowed by "Yoga
// Teacher Training".
func (c *Chain) resolveProgram(text string, in Input) (*domain.Program, bool) {
	programs := c.catalog.Programs()
	sorted := make([]domain.Program, len(programs))
	copy(sorted, programs)
	sort.Slice(sorted, func(i, j int) bool {
		return len(sorted[i].Name) > len(sorted[j].Name)
	})

	var haystacks []string
	haystacks = append(haystacks, strings.ToLower(in.UserMessage), strings.ToLower(text))
	start := len(in.History) - historyScanDepth
	if start < 0 {
		start = 0
	}
	for i := len(in.History) - 1; i >= start; i-- {
		haystacks = append(haystacks, strings.ToLower(in.History[i].Content))
	}

	for _, haystack := range haystacks {
		for i := range sorted {
			if strings.Contains(haystack, strings.ToLower(sorted[i].Name)) {
				return &sorted[i], true
			}
		}
	}
	return nil, false
}

func (c *Chain) injectEnrollment(text string, in Input) string {
	if !enrollmentIntent.MatchString(in.UserMessage) {
		return text
	}
	program, ok := c.resolveProgram(text, in)
	if !ok {
		return text
	}

	// Strip anything the model made up about money or clarity calls.
	text = inventedFigure.ReplaceAllString(text, "")
	text = inventedClarityCall.ReplaceAllString(text, "")
	text = inventedCheckoutLine.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	return text + "\n\n" + enrollmentBlock(program)
}

// enrollmentBlock renders the authoritative payment/clarity-call copy for a
// program, entirely from table data.
func enrollmentBlock(p *domain.Program) string {
	var b strings.Builder
	switch p.EnrollmentMode {
	case domain.EnrollDirectCheckout, domain.EnrollHybrid:
		fmt.Fprintf(&b, "Here are the enrollment options for **%s**:\n", p.Name)
		for i, opt := range p.PaymentOptions {
			fmt.Fprintf(&b, "%d. **%s** — %s", i+1, opt.Label, opt.Price)
			if opt.Description != "" {
				fmt.Fprintf(&b, " (%s)", opt.Description)
			}
			if opt.CheckoutURL != "" {
				fmt.Fprintf(&b, " — [Enroll here](%s)", opt.CheckoutURL)
			}
			b.WriteString("\n")
		}
		if p.EnrollmentMode == domain.EnrollHybrid {
			b.WriteString("If you'd rather talk it through first, you can also book a free clarity call with our team")
			if p.InfoURL != "" {
				fmt.Fprintf(&b, " via the [program page](%s)", p.InfoURL)
			}
			b.WriteString(".\n")
		}
	case domain.EnrollClarityCallOnly:
		fmt.Fprintf(&b, "Enrollment for **%s** starts with a free clarity call so we can make sure it's the right fit", p.Name)
		if p.InfoURL != "" {
			fmt.Fprintf(&b, " — you can book one from the [program page](%s)", p.InfoURL)
		}
		b.WriteString(".\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Checkout-URL injection: a response that says "checkout page" without a real
// link gets the first payment option's URL for the matched program.
var checkoutMention = regexp.MustCompile(`(?i)checkout\s+page`)

func (c *Chain) injectCheckoutURL(text string, in Input) string {
	if !checkoutMention.MatchString(text) || strings.Contains(text, "http") {
		return text
	}
	program, ok := c.resolveProgram(text, in)
	if !ok || len(program.PaymentOptions) == 0 || program.PaymentOptions[0].CheckoutURL == "" {
		return text
	}
	url := program.PaymentOptions[0].CheckoutURL
	replaced := false
	return checkoutMention.ReplaceAllStringFunc(text, func(m string) string {
		if replaced {
			return m
		}
		replaced = true
		return fmt.Sprintf("[%s](%s)", m, url)
	})
}
