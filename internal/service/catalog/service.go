package catalog

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/ports"
)

const (
	eventTitlesCacheKey = "catalog:event_titles"
	cacheTTL            = 10 * time.Minute
	refreshEventLimit   = 50
)

// snapshot is one immutable view of the catalog. Readers load it atomically;
// Refresh builds a new one and swaps it in, so lookups never block on I/O.
type snapshot struct {
	eventTitles  []string
	programNames []string
	programs     []domain.Program
	byName       map[string]*domain.Program
}

var _ ports.Catalog = (*Service)(nil)

// Service keeps the known event titles and program names the classifier
// fuzzy-matches against, refreshed periodically in the background.
type Service struct {
	programs ports.ProgramRepository
	events   ports.EventService
	cache    ports.Cache
	log      *zap.Logger

	current  atomic.Pointer[snapshot]
	interval time.Duration
}

func NewService(programs ports.ProgramRepository, events ports.EventService, cache ports.Cache, interval time.Duration, log *zap.Logger) *Service {
	s := &Service{
		programs: programs,
		events:   events,
		cache:    cache,
		interval: interval,
		log:      log,
	}
	s.current.Store(&snapshot{byName: map[string]*domain.Program{}})
	return s
}

func (s *Service) EventTitles() []string {
	return s.current.Load().eventTitles
}

func (s *Service) ProgramNames() []string {
	return s.current.Load().programNames
}

func (s *Service) Programs() []domain.Program {
	return s.current.Load().programs
}

func (s *Service) ProgramByName(name string) (*domain.Program, bool) {
	p, ok := s.current.Load().byName[name]
	return p, ok
}

// Refresh rebuilds the snapshot from the program store and the calendar.
// A failing calendar falls back to the cached title list; a failing program
// store keeps the previous snapshot's programs. Refresh never leaves the
// catalog emptier than before.
func (s *Service) Refresh(ctx context.Context) error {
	prev := s.current.Load()
	next := &snapshot{byName: map[string]*domain.Program{}}

	programs, err := s.programs.FindAll(ctx)
	if err != nil {
		s.log.Warn("catalog: program refresh failed, keeping previous", zap.Error(err))
		programs = prev.programs
	}
	next.programs = programs
	next.programNames = make([]string, len(programs))
	for i := range programs {
		next.programNames[i] = programs[i].Name
		next.byName[programs[i].Name] = &programs[i]
	}

	next.eventTitles = s.fetchEventTitles(ctx, prev.eventTitles)

	s.current.Store(next)
	s.log.Debug("catalog refreshed",
		zap.Int("programs", len(next.programNames)),
		zap.Int("event_titles", len(next.eventTitles)),
	)
	return nil
}

func (s *Service) fetchEventTitles(ctx context.Context, fallback []string) []string {
	events, err := s.events.ListUpcoming(ctx, refreshEventLimit)
	if err != nil {
		s.log.Warn("catalog: event refresh failed, trying cache", zap.Error(err))
		if cached, err := s.cache.Get(ctx, eventTitlesCacheKey); err == nil {
			var titles []string
			if json.Unmarshal([]byte(cached), &titles) == nil {
				return titles
			}
		}
		return fallback
	}

	titles := make([]string, len(events))
	for i, ev := range events {
		titles[i] = ev.Title
	}
	if data, err := json.Marshal(titles); err == nil {
		if err := s.cache.Set(ctx, eventTitlesCacheKey, string(data), cacheTTL); err != nil {
			s.log.Debug("catalog: cache write failed", zap.Error(err))
		}
	}
	return titles
}

// Run refreshes immediately, then on the configured interval until the
// context is cancelled.
func (s *Service) Run(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn("catalog: initial refresh failed", zap.Error(err))
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.log.Warn("catalog: refresh failed", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}
