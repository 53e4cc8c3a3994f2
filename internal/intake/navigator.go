package intake

import (
	"github.com/webjhones/requirements-intake/internal/catalog"
)

// Transition is the outcome of a navigation intent.
type Transition string

// Navigation outcomes.
const (
	// TransitionBlocked: the current required question is unanswered.
	TransitionBlocked Transition = "blocked"
	// TransitionMoved: the current index changed.
	TransitionMoved Transition = "moved"
	// TransitionCompleted: Advance passed the gate on the last question.
	TransitionCompleted Transition = "completed"
	// TransitionAtStart: Retreat was asked for on the first question; the
	// caller leaves the questionnaire.
	TransitionAtStart Transition = "at_start"
	// TransitionClosed: the questionnaire already completed.
	TransitionClosed Transition = "closed"
)

// QuestionStatus is the display state of one question in the navigator strip.
type QuestionStatus string

// Question statuses.
const (
	StatusCurrent  QuestionStatus = "current"
	StatusAnswered QuestionStatus = "answered"
	StatusPending  QuestionStatus = "pending"
)

// Navigator walks a question sequence. The only validation it performs is
// the presence-based required gate on Advance.
type Navigator struct {
	sequence []catalog.QuestionDefinition
	answers  *AnswerStore
	index    int
	done     bool
	result   Answers
}

// NewNavigator starts at the first question. An empty sequence is refused:
// callers route to the "no questionnaire configured" fallback instead.
func NewNavigator(sequence []catalog.QuestionDefinition, answers *AnswerStore) (*Navigator, error) {
	if len(sequence) == 0 {
		return nil, ErrQuestionnaireUnavailable
	}
	return &Navigator{sequence: sequence, answers: answers}, nil
}

// Index is the position of the current question.
func (n *Navigator) Index() int {
	return n.index
}

// Len is the number of questions in the sequence.
func (n *Navigator) Len() int {
	return len(n.sequence)
}

// Current returns the question at the current index.
func (n *Navigator) Current() catalog.QuestionDefinition {
	return n.sequence[n.index]
}

// Done reports whether the questionnaire has completed.
func (n *Navigator) Done() bool {
	return n.done
}

// CanAdvance reports whether Advance would pass the gate.
func (n *Navigator) CanAdvance() bool {
	return !n.done && n.answers.IsSatisfied(n.Current())
}

// Advance moves to the next question, or completes the questionnaire on the
// last one. It does nothing while the current question is unsatisfied.
func (n *Navigator) Advance() Transition {
	if n.done {
		return TransitionClosed
	}
	if !n.answers.IsSatisfied(n.Current()) {
		return TransitionBlocked
	}
	if n.index < len(n.sequence)-1 {
		n.index++
		return TransitionMoved
	}
	n.done = true
	n.result = n.answers.Snapshot()
	return TransitionCompleted
}

// Retreat moves to the previous question.
func (n *Navigator) Retreat() Transition {
	if n.done {
		return TransitionClosed
	}
	if n.index == 0 {
		return TransitionAtStart
	}
	n.index--
	return TransitionMoved
}

// JumpTo moves directly to index, bypassing the required gate.
func (n *Navigator) JumpTo(index int) error {
	if n.done {
		return ErrWrongStage
	}
	if index < 0 || index >= len(n.sequence) {
		return ErrIndexOutOfRange
	}
	n.index = index
	return nil
}

// Completion returns the answers captured when the questionnaire completed.
func (n *Navigator) Completion() (Answers, bool) {
	return n.result, n.done
}

// Statuses returns the display state of every question, in sequence order.
func (n *Navigator) Statuses() []QuestionStatus {
	out := make([]QuestionStatus, len(n.sequence))
	for i, q := range n.sequence {
		switch {
		case i == n.index && !n.done:
			out[i] = StatusCurrent
		case n.answers.Has(q.ID):
			out[i] = StatusAnswered
		default:
			out[i] = StatusPending
		}
	}
	return out
}
