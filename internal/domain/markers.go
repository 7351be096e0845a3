package domain

// Textual protocol markers embedded in model/response text. These must be
// exact strings for round-trip parsing.
const (
	// NavigateMarkerPrefix wraps a navigation URL: [NAVIGATE:<url>]
	NavigateMarkerPrefix = "[NAVIGATE:"
	NavigateMarkerSuffix = "]"

	// CalendarMarkerPrefix wraps an event title: [ADD_TO_CALENDAR:<title>]
	CalendarMarkerPrefix = "[ADD_TO_CALENDAR:"
	CalendarMarkerSuffix = "]"

	// DirectEventOpen/Close wrap verbatim event content that must bypass LLM
	// paraphrasing. Internal only, never shown to the user.
	DirectEventOpen  = "{{DIRECT_EVENT}}"
	DirectEventClose = "{{/DIRECT_EVENT}}"
)

// NavigateMarker builds the marker for a resolved navigation URL.
func NavigateMarker(url string) string {
	return NavigateMarkerPrefix + url + NavigateMarkerSuffix
}

// CalendarMarker builds the add-to-calendar marker for an event title.
func CalendarMarker(title string) string {
	return CalendarMarkerPrefix + title + CalendarMarkerSuffix
}
