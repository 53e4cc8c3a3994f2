package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNavigator(t *testing.T) (*Navigator, *AnswerStore) {
	t.Helper()
	seq := testSequence()
	store := NewAnswerStore(seq)
	nav, err := NewNavigator(seq, store)
	require.NoError(t, err)
	return nav, store
}

func TestNewNavigator_EmptySequence(t *testing.T) {
	_, err := NewNavigator(nil, NewAnswerStore(nil))
	assert.ErrorIs(t, err, ErrQuestionnaireUnavailable)
}

func TestNavigator_RequiredGate(t *testing.T) {
	nav, store := newTestNavigator(t)

	assert.False(t, nav.CanAdvance())
	assert.Equal(t, TransitionBlocked, nav.Advance())
	assert.Equal(t, 0, nav.Index())

	require.NoError(t, store.Set("goal", Text("leads")))
	assert.True(t, nav.CanAdvance())
	assert.Equal(t, TransitionMoved, nav.Advance())
	assert.Equal(t, 1, nav.Index())

	// optional question passes unanswered
	assert.Equal(t, TransitionMoved, nav.Advance())
	assert.Equal(t, TransitionMoved, nav.Advance())
	assert.Equal(t, "cta", nav.Current().ID)

	assert.Equal(t, TransitionBlocked, nav.Advance())
	require.NoError(t, store.Set("cta", Text("buy")))
	assert.Equal(t, TransitionCompleted, nav.Advance())
	assert.True(t, nav.Done())

	answers, done := nav.Completion()
	require.True(t, done)
	assert.Len(t, answers, 2)
}

func TestNavigator_Retreat(t *testing.T) {
	nav, store := newTestNavigator(t)

	assert.Equal(t, TransitionAtStart, nav.Retreat())
	assert.Equal(t, 0, nav.Index())

	require.NoError(t, store.Set("goal", Text("sales")))
	require.Equal(t, TransitionMoved, nav.Advance())
	assert.Equal(t, TransitionMoved, nav.Retreat())
	assert.Equal(t, 0, nav.Index())

	v, ok := store.Get("goal")
	require.True(t, ok)
	assert.Equal(t, "sales", v.Text(), "retreat keeps answers")
}

func TestNavigator_JumpTo(t *testing.T) {
	nav, _ := newTestNavigator(t)

	require.NoError(t, nav.JumpTo(3), "jump bypasses the gate")
	assert.Equal(t, "cta", nav.Current().ID)

	assert.ErrorIs(t, nav.JumpTo(4), ErrIndexOutOfRange)
	assert.ErrorIs(t, nav.JumpTo(-1), ErrIndexOutOfRange)
	assert.Equal(t, 3, nav.Index())
}

func TestNavigator_ClosedAfterCompletion(t *testing.T) {
	seq := testSequence()[3:]
	store := NewAnswerStore(seq)
	nav, err := NewNavigator(seq, store)
	require.NoError(t, err)

	require.NoError(t, store.Set("cta", Text("go")))
	require.Equal(t, TransitionCompleted, nav.Advance())

	assert.Equal(t, TransitionClosed, nav.Advance())
	assert.Equal(t, TransitionClosed, nav.Retreat())
	assert.ErrorIs(t, nav.JumpTo(0), ErrWrongStage)
	assert.False(t, nav.CanAdvance())
}

func TestNavigator_Statuses(t *testing.T) {
	nav, store := newTestNavigator(t)
	require.NoError(t, store.Set("goal", Text("leads")))
	require.NoError(t, store.Set("features", Selection("a")))
	require.NoError(t, nav.JumpTo(1))

	assert.Equal(t, []QuestionStatus{
		StatusAnswered,
		StatusCurrent,
		StatusAnswered,
		StatusPending,
	}, nav.Statuses())
}
