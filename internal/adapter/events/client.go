package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/observability/telemetry"
	"github.com/haven-wellness/concierge/internal/patterns"
	"github.com/haven-wellness/concierge/internal/ports"
)

const requestTimeout = 10 * time.Second

// Client talks to the external calendar service. Every failure mode a caller
// can see collapses to domain.ErrCalendarUnavailable: timeouts, connection
// errors, 5xx responses and an open breaker all look the same upstream.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	log        *zap.Logger
}

func NewClient(baseURL, apiKey string, log *zap.Logger) ports.EventService {
	settings := gobreaker.Settings{
		Name:    "calendar",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
		breaker:    gobreaker.NewCircuitBreaker(settings),
		log:        log,
	}
}

type eventRecord struct {
	Title        string   `json:"title"`
	StartsAt     string   `json:"starts_at"`
	EndsAt       string   `json:"ends_at"`
	Timezone     string   `json:"timezone"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	PageURL      string   `json:"page_url"`
	CheckoutURLs []string `json:"checkout_urls"`
	ProgramURL   string   `json:"program_url"`
}

func (r eventRecord) toDomain() domain.Event {
	starts, _ := time.Parse(time.RFC3339, r.StartsAt)
	ends, _ := time.Parse(time.RFC3339, r.EndsAt)
	return domain.Event{
		Title:        r.Title,
		StartsAt:     starts.UTC(),
		EndsAt:       ends.UTC(),
		Timezone:     r.Timezone,
		Location:     r.Location,
		Description:  r.Description,
		PageURL:      r.PageURL,
		CheckoutURLs: r.CheckoutURLs,
		ProgramURL:   r.ProgramURL,
	}
}

func (c *Client) ListUpcoming(ctx context.Context, limit int) ([]domain.Event, error) {
	url := fmt.Sprintf("%s/api/events/upcoming?limit=%d", c.baseURL, limit)

	var records []eventRecord
	if err := c.getJSON(ctx, url, &records); err != nil {
		return nil, err
	}

	events := make([]domain.Event, len(records))
	for i, r := range records {
		events[i] = r.toDomain()
	}
	return events, nil
}

// GetByTitle resolves a possibly imprecise title against the upcoming
// calendar using the same fuzzy matcher the classifier uses.
func (c *Client) GetByTitle(ctx context.Context, fuzzyTitle string) (*domain.Event, error) {
	events, err := c.ListUpcoming(ctx, 50)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, domain.ErrNotFound
	}

	titles := make([]string, len(events))
	for i, ev := range events {
		titles[i] = ev.Title
	}
	name, score := patterns.BestMatch(fuzzyTitle, titles)
	if score < domain.MinMatchScore {
		return nil, domain.ErrNotFound
	}
	for i := range events {
		if events[i].Title == name {
			return &events[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

type bookingRequest struct {
	EventTitle string `json:"event_title"`
	CalendarID string `json:"calendar_id"`
}

func (c *Client) Book(ctx context.Context, event *domain.Event, calendarID string) (*domain.BookingResult, error) {
	payload, err := json.Marshal(bookingRequest{EventTitle: event.Title, CalendarID: calendarID})
	if err != nil {
		return nil, fmt.Errorf("events: marshal booking: %w", err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/api/bookings", strings.NewReader(string(payload)))
		if err != nil {
			return nil, err
		}
		c.setHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("events: server error %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			return &domain.BookingResult{Success: false, Message: fmt.Sprintf("status %d", resp.StatusCode)}, nil
		}

		var booking domain.BookingResult
		if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
			return nil, err
		}
		return &booking, nil
	})
	if err != nil {
		telemetry.CalendarErrorsTotal.Inc()
		c.log.Warn("calendar booking call failed", zap.Error(err))
		return nil, domain.ErrCalendarUnavailable
	}
	return result.(*domain.BookingResult), nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		c.setHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("events: server error %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("events: unexpected status %d", resp.StatusCode)
		}
		return nil, json.NewDecoder(resp.Body).Decode(out)
	})
	if err != nil {
		telemetry.CalendarErrorsTotal.Inc()
		c.log.Warn("calendar request failed", zap.String("url", url), zap.Error(err))
		return domain.ErrCalendarUnavailable
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
