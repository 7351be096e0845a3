package postprocess

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"
)

var calendarMarker = regexp.MustCompile(`\[ADD_TO_CALENDAR:([^\]]+)\]`)

// processCalendarAction resolves [ADD_TO_CALENDAR:<title>] markers: the named
// event is looked up and booked, and the marker is replaced with a
// human-readable confirmation or failure message. The turn never fails on a
// booking error.
func (c *Chain) processCalendarAction(ctx context.Context, text string) string {
	return calendarMarker.ReplaceAllStringFunc(text, func(m string) string {
		sub := calendarMarker.FindStringSubmatch(m)
		if sub == nil {
			return m
		}
		title := sub[1]

		event, err := c.events.GetByTitle(ctx, title)
		if err != nil || event == nil {
			c.log.Warn("calendar marker for unknown event", zap.String("title", title), zap.Error(err))
			return fmt.Sprintf("I couldn't find \"%s\" on the calendar just now — the events page has the latest schedule.", title)
		}

		result, err := c.events.Book(ctx, event, c.calendarID)
		if err != nil || !result.Success {
			c.log.Warn("calendar booking failed", zap.String("title", title), zap.Error(err))
			return fmt.Sprintf("I wasn't able to add \"%s\" to the calendar right now — please try again in a moment or register from the event page.", event.Title)
		}
		return fmt.Sprintf("Done! \"%s\" has been added to the calendar. You'll find all the details on the event page.", event.Title)
	})
}
