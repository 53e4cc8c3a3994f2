package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/webjhones/requirements-intake/internal/catalog"
	"github.com/webjhones/requirements-intake/internal/intake"
	"github.com/webjhones/requirements-intake/internal/summary"
)

// sessionEntry is one user's wizard. mu serialises every request touching
// the wizard; entries never share state.
type sessionEntry struct {
	mu        sync.Mutex
	id        uuid.UUID
	wizard    *intake.Wizard
	createdAt time.Time

	// Set once the questionnaire completes.
	record       *summary.Record
	submissionID *uuid.UUID
	notice       string
}

// reset drops everything derived from a completed questionnaire.
func (e *sessionEntry) reset() {
	e.record = nil
	e.submissionID = nil
	e.notice = ""
}

// sessionRegistry keeps the live wizards in memory. Idle sessions expire
// after the TTL and the least recently used ones are evicted at capacity.
type sessionRegistry struct {
	catalog *catalog.Catalog
	cache   *expirable.LRU[uuid.UUID, *sessionEntry]
	now     func() time.Time
}

func newSessionRegistry(cat *catalog.Catalog, maxSessions int, ttl time.Duration) *sessionRegistry {
	return &sessionRegistry{
		catalog: cat,
		cache:   expirable.NewLRU[uuid.UUID, *sessionEntry](maxSessions, nil, ttl),
		now:     time.Now,
	}
}

// create starts a new wizard at the profile stage.
func (r *sessionRegistry) create() *sessionEntry {
	e := &sessionEntry{
		id:        uuid.New(),
		wizard:    intake.NewWizard(r.catalog),
		createdAt: r.now(),
	}
	r.cache.Add(e.id, e)
	return e
}

// get looks up a session by its textual id.
func (r *sessionRegistry) get(rawID string) (*sessionEntry, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, &ErrSessionNotFound{SessionID: rawID}
	}
	e, ok := r.cache.Get(id)
	if !ok {
		return nil, &ErrSessionNotFound{SessionID: rawID}
	}
	return e, nil
}

// remove discards a session. It reports whether the session existed.
func (r *sessionRegistry) remove(rawID string) bool {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return false
	}
	return r.cache.Remove(id)
}

func (r *sessionRegistry) len() int {
	return r.cache.Len()
}
