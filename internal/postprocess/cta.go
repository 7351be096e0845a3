package postprocess

import (
	"strings"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/router"
)

// enforceCTA guarantees the canonical CTA for the program flow. It runs only
// when the router set a program follow-up stage for this turn, and maps the
// previous stage to the CTA the current response must carry:
//
//	listing was shown  -> this response is a summary -> "more details?" CTA
//	summary was shown  -> this response is details   -> navigate CTA
//	details / navigate -> nothing further required
func (c *Chain) enforceCTA(text string, prev domain.ProgramStage) string {
	switch prev {
	case domain.ProgramStageListingShown:
		if router.HasProgramMoreDetailsCTA(text) {
			return text
		}
		return strings.TrimRight(text, " \n") + "\n\n" + router.FormatCTA(router.CTAProgramMoreDetails, "")

	case domain.ProgramStageSummaryShown:
		if router.HasProgramNavigateCTA(text) {
			return text
		}
		url := ""
		if p, ok := c.resolveProgram(text, Input{UserMessage: text}); ok {
			url = p.InfoURL
		}
		return strings.TrimRight(text, " \n") + "\n\n" + router.FormatCTA(router.CTAProgramNavigate, url)
	}
	return text
}
