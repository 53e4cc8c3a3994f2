package server

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webjhones/requirements-intake/internal/catalog"
	"github.com/webjhones/requirements-intake/internal/intake"
)

func newTestRegistry(t *testing.T, maxSessions int, ttl time.Duration) *sessionRegistry {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return newSessionRegistry(cat, maxSessions, ttl)
}

func TestSessionRegistry_CreateAndGet(t *testing.T) {
	r := newTestRegistry(t, 10, time.Hour)

	e := r.create()
	assert.NotEqual(t, uuid.Nil, e.id)
	assert.Equal(t, intake.StageProfile, e.wizard.Stage())
	assert.Equal(t, 1, r.len())

	got, err := r.get(e.id.String())
	require.NoError(t, err)
	assert.Same(t, e, got)
}

func TestSessionRegistry_NotFound(t *testing.T) {
	r := newTestRegistry(t, 10, time.Hour)

	_, err := r.get("not-a-uuid")
	var notFound *ErrSessionNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "not-a-uuid", notFound.SessionID)

	_, err = r.get(uuid.NewString())
	assert.ErrorAs(t, err, &notFound)
}

func TestSessionRegistry_Remove(t *testing.T) {
	r := newTestRegistry(t, 10, time.Hour)
	e := r.create()

	assert.True(t, r.remove(e.id.String()))
	assert.False(t, r.remove(e.id.String()))
	assert.False(t, r.remove("garbage"))
	assert.Equal(t, 0, r.len())
}

func TestSessionRegistry_EvictsLeastRecentlyUsed(t *testing.T) {
	r := newTestRegistry(t, 2, time.Hour)

	first := r.create()
	second := r.create()

	// Touch first so second becomes the eviction candidate
	_, err := r.get(first.id.String())
	require.NoError(t, err)

	r.create()
	assert.Equal(t, 2, r.len())

	_, err = r.get(second.id.String())
	assert.Error(t, err)
	_, err = r.get(first.id.String())
	assert.NoError(t, err)
}

func TestSessionRegistry_Expires(t *testing.T) {
	r := newTestRegistry(t, 10, 50*time.Millisecond)
	e := r.create()

	time.Sleep(120 * time.Millisecond)

	_, err := r.get(e.id.String())
	assert.Error(t, err)
}

func TestSessionEntry_Reset(t *testing.T) {
	id := uuid.New()
	e := &sessionEntry{submissionID: &id, notice: persistenceNotice}
	e.reset()

	assert.Nil(t, e.record)
	assert.Nil(t, e.submissionID)
	assert.Empty(t, e.notice)
}
