package domain

import "time"

// Event is owned by the external calendar service; the core consumes it and
// identifies events by fuzzy title match, never by numeric ID.
type Event struct {
	Title        string    `json:"title"`
	StartsAt     time.Time `json:"starts_at"` // UTC
	EndsAt       time.Time `json:"ends_at"`   // UTC
	Timezone     string    `json:"timezone"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	PageURL      string    `json:"page_url"`
	CheckoutURLs []string  `json:"checkout_urls,omitempty"`
	ProgramURL   string    `json:"program_url,omitempty"`
}

// BookingResult is the calendar service's answer to a booking request.
type BookingResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	EventID string `json:"event_id,omitempty"`
}
