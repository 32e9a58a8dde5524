package directory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hyperjump/meibo/internal/models"
)

// Session is the stateful wrapper around the pure engine for interactive
// use. It owns two pieces of state the engine refuses to hold: the merged
// filter spec built up across requests and the most recent result set, kept
// so results can be re-sorted without re-running the query. All mutation is
// confined here, behind a mutex.
type Session struct {
	id string

	mu      sync.Mutex
	engine  *Engine
	filters models.FilterSpec
	last    []models.ScoredResult
	touched time.Time
}

// NewSession creates a session over engine with a fresh identity and no
// filters applied.
func NewSession(engine *Engine) *Session {
	return &Session{
		id:      uuid.New().String(),
		engine:  engine,
		touched: time.Now(),
	}
}

// ID returns the session identity.
func (s *Session) ID() string {
	return s.id
}

// Search merges patch into the held filters, last write wins per field, and
// runs the engine query with the merged spec. The result set is remembered
// for later sorting.
func (s *Session) Search(patch models.FilterPatch) []models.ScoredResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = patch.Apply(s.filters)
	s.last = s.engine.Search(s.filters)
	s.touched = time.Now()
	return s.last
}

// Sort reorders the most recent result set without re-running the query.
func (s *Session) Sort(criterion SortCriterion) []models.ScoredResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = SortResults(s.last, criterion)
	s.touched = time.Now()
	return s.last
}

// Refresh re-runs the held filters, picking up an engine swap if one
// happened since the last query.
func (s *Session) Refresh() []models.ScoredResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = s.engine.Search(s.filters)
	s.touched = time.Now()
	return s.last
}

// ClearFilters drops every constraint and returns the full collection in
// original order.
func (s *Session) ClearFilters() []models.ScoredResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = models.FilterSpec{}
	s.last = s.engine.Search(s.filters)
	s.touched = time.Now()
	return s.last
}

// Filters returns a copy of the merged filter state.
func (s *Session) Filters() models.FilterSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := s.filters
	copied.Tags = append([]string(nil), s.filters.Tags...)
	return copied
}

// ActiveFilters reports which constraints are populated, keyed by filter
// name, for echoing back to clients.
func (s *Session) ActiveFilters() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.Active()
}

// SetEngine swaps the snapshot the session queries. Held filters persist;
// remembered results keep referencing the old snapshot until the next
// Search or Refresh.
func (s *Session) SetEngine(engine *Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine = engine
}

// LastTouched reports when the session last served a call, for idle expiry.
func (s *Session) LastTouched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}
