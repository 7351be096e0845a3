package domain

// EventStage and ProgramStage label the inferred position within a
// progressive-disclosure conversation. They are not stored state: the stage is
// re-derived every turn from the text of the previous assistant message, so a
// server-side session field can never drift from what the user actually saw.

type EventStage string

const (
	EventStageNone         EventStage = "none"
	EventStageListingShown EventStage = "listing_shown"
	EventStageSummaryShown EventStage = "summary_shown"
	EventStageDetailsShown EventStage = "details_shown"
)

type ProgramStage string

const (
	ProgramStageNone            ProgramStage = "none"
	ProgramStageListingShown    ProgramStage = "listing_shown"
	ProgramStageSummaryShown    ProgramStage = "summary_shown"
	ProgramStageDetailsShown    ProgramStage = "details_shown"
	ProgramStageNavigateOffered ProgramStage = "navigate_offered"
)
