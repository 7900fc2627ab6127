// Package query answers aggregate questions against the live cache and fans
// out "data changed" signals to subscribers.
package query

import (
	"sync"
	"time"

	"github.com/mikec-git/claude-usage-menubar/internal/domain"
)

// Source is the read side of the live cache.
type Source interface {
	Entries() []domain.UsageRecord
}

// Service is safe for concurrent use. Queries never fail; bad input data
// only shrinks the result.
type Service struct {
	src    Source
	pricer domain.Pricer
	tz     *time.Location
	now    func() time.Time

	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(src Source, pricer domain.Pricer, tz *time.Location, opts ...Option) *Service {
	if tz == nil {
		tz = time.Local
	}
	s := &Service{
		src:    src,
		pricer: pricer,
		tz:     tz,
		now:    time.Now,
		subs:   make(map[chan struct{}]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Usage returns totals for records inside tr.
func (s *Service) Usage(tr domain.TimeRange) domain.UsageTotals {
	records := domain.FilterByRange(s.src.Entries(), tr, s.now(), s.tz)
	return domain.AggregateUsage(records, s.pricer)
}

// BillingWindows returns today's 5-hour windows, oldest first.
func (s *Service) BillingWindows() []domain.BillingWindow {
	now := s.now()
	records := domain.FilterByRange(s.src.Entries(), domain.RangeToday, now, s.tz)
	return domain.BuildBillingWindows(domain.SortByTime(records), s.pricer, now)
}

// SessionBreakdown returns today's sessions, most recently active first.
func (s *Service) SessionBreakdown() []domain.SessionSummary {
	records := domain.FilterByRange(s.src.Entries(), domain.RangeToday, s.now(), s.tz)
	return domain.BuildSessions(domain.SortByTime(records), s.pricer)
}

// Subscribe returns a channel that receives a value after each change.
// Signals carry no payload and coalesce: a slow reader sees at most one
// pending signal. Call the returned func to unsubscribe.
func (s *Service) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch, func() {
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
	}
}

// NotifyChanged signals every subscriber without blocking.
func (s *Service) NotifyChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
