package countries

import (
	"context"
	"sync"
	"time"
)

// SearchResult is one emission of a debounced search session.
type SearchResult struct {
	Query     string
	Countries []CountryResponse
	Err       error
}

// SearchSession debounces a stream of user-typed queries: a lookup
// only fires after the quiet period elapses with no newer input, so
// rapid typing costs one search, not one per keystroke. A query
// superseded during the quiet period is dropped entirely.
type SearchSession struct {
	svc      Service
	interval time.Duration
	results  chan SearchResult

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	closed  bool
	pending sync.WaitGroup
}

// NewSearchSession starts a session emitting on Results. A
// non-positive interval disables debouncing.
func NewSearchSession(svc Service, interval time.Duration) *SearchSession {
	return &SearchSession{
		svc:      svc,
		interval: interval,
		results:  make(chan SearchResult, 1),
	}
}

// Results delivers the outcome of each settled query.
func (s *SearchSession) Results() <-chan SearchResult {
	return s.results
}

// Query feeds the next keystroke state into the session.
func (s *SearchSession) Query(ctx context.Context, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.gen++
	gen := s.gen

	if s.timer != nil {
		s.timer.Stop()
	}

	if s.interval <= 0 {
		s.pending.Add(1)
		go s.execute(ctx, gen, query)
		return
	}

	s.timer = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		if s.closed || gen != s.gen {
			s.mu.Unlock()
			return
		}
		s.pending.Add(1)
		s.mu.Unlock()
		go s.execute(ctx, gen, query)
	})
}

// Close stops the session after in-flight work drains. No emissions
// happen after Close returns.
func (s *SearchSession) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()

	s.pending.Wait()
	close(s.results)
}

func (s *SearchSession) execute(ctx context.Context, gen uint64, query string) {
	defer s.pending.Done()

	countries, err := s.svc.SearchCountries(ctx, query)

	s.mu.Lock()
	stale := s.closed || gen != s.gen
	s.mu.Unlock()
	if stale {
		return
	}

	// Keep only the latest settled result if the consumer lags.
	select {
	case s.results <- SearchResult{Query: query, Countries: countries, Err: err}:
	default:
		select {
		case <-s.results:
		default:
		}
		select {
		case s.results <- SearchResult{Query: query, Countries: countries, Err: err}:
		default:
		}
	}
}
