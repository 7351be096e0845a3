package router

import (
	"regexp"
	"strings"
)

// Numbered-list item extraction. Four pattern variants tried in order of
// specificity, because the model formats listings inconsistently:
//  1. N. [Name](url)         markdown link
//  2. N. **Name** - desc     bold with trailing copy
//  3. N. **Name**            bold only
//  4. N. Name - desc         plain line
var itemVariants = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^\s*\d+[.)]\s+\[([^\]]+)\]\([^)]*\)`),
	regexp.MustCompile(`(?m)^\s*\d+[.)]\s+\*\*([^*]+)\*\*\s*[-–:]`),
	regexp.MustCompile(`(?m)^\s*\d+[.)]\s+\*\*([^*]+)\*\*`),
	regexp.MustCompile(`(?m)^\s*\d+[.)]\s+([^\n-–:(]+)`),
}

// ExtractNumberedItems returns the item names of a numbered list, in order.
func ExtractNumberedItems(text string) []string {
	for _, variant := range itemVariants {
		matches := variant.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}
		items := make([]string, 0, len(matches))
		for _, m := range matches {
			if name := strings.TrimSpace(m[1]); name != "" {
				items = append(items, name)
			}
		}
		if len(items) > 0 {
			return items
		}
	}
	return nil
}

// NumberedItemAt returns the 0-based item of a listing, or "" when the index
// is out of range.
func NumberedItemAt(text string, index int) string {
	items := ExtractNumberedItems(text)
	if index < 0 || index >= len(items) {
		return ""
	}
	return items[index]
}
