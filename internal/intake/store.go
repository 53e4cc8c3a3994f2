package intake

import (
	"github.com/webjhones/requirements-intake/internal/catalog"
)

// Answers is an immutable snapshot of the present answers of a session,
// keyed by question id.
type Answers map[string]AnswerValue

// Get returns the answer for a question id.
func (a Answers) Get(questionID string) (AnswerValue, bool) {
	v, ok := a[questionID]
	return v, ok
}

// AnswerStore accumulates the answers of one questionnaire session. It is
// bound to the session's question sequence so that every stored value can
// be checked against its question's kind.
type AnswerStore struct {
	questions map[string]catalog.QuestionDefinition
	values    map[string]AnswerValue
}

// NewAnswerStore creates an empty store for the given sequence.
func NewAnswerStore(sequence []catalog.QuestionDefinition) *AnswerStore {
	s := &AnswerStore{
		questions: make(map[string]catalog.QuestionDefinition, len(sequence)),
		values:    make(map[string]AnswerValue),
	}
	for _, q := range sequence {
		s.questions[q.ID] = q
	}
	return s
}

// Set stores value for questionID, replacing any previous answer.
func (s *AnswerStore) Set(questionID string, value AnswerValue) error {
	q, ok := s.questions[questionID]
	if !ok {
		return ErrUnknownQuestion
	}
	if q.Kind.IsSelection() != value.IsSelection() {
		return &ShapeError{QuestionID: q.ID, Kind: string(q.Kind), Selection: value.IsSelection()}
	}
	if value.IsSelection() {
		value = Selection(value.options...)
	}
	s.values[questionID] = value
	return nil
}

// Get returns the stored answer for questionID.
func (s *AnswerStore) Get(questionID string) (AnswerValue, bool) {
	v, ok := s.values[questionID]
	return v, ok
}

// ToggleSelection adds option to (included) or removes it from a
// multi-choice answer. It is a no-op when membership already matches.
// Removing and re-adding an option moves it to the end.
func (s *AnswerStore) ToggleSelection(questionID, option string, included bool) error {
	q, ok := s.questions[questionID]
	if !ok {
		return ErrUnknownQuestion
	}
	if !q.Kind.IsSelection() {
		return &ShapeError{QuestionID: q.ID, Kind: string(q.Kind), Selection: true}
	}

	current, ok := s.values[questionID]
	if !ok {
		current = Selection()
	}
	if current.Contains(option) == included {
		return nil
	}
	s.values[questionID] = current.with(option, included)
	return nil
}

// IsSatisfied reports whether question passes the required-answer gate.
func (s *AnswerStore) IsSatisfied(question catalog.QuestionDefinition) bool {
	if !question.Required {
		return true
	}
	v, ok := s.values[question.ID]
	return ok && !v.IsEmpty()
}

// Has reports whether questionID holds a non-empty answer.
func (s *AnswerStore) Has(questionID string) bool {
	v, ok := s.values[questionID]
	return ok && !v.IsEmpty()
}

// Len is the number of questions with a non-empty answer.
func (s *AnswerStore) Len() int {
	n := 0
	for _, v := range s.values {
		if !v.IsEmpty() {
			n++
		}
	}
	return n
}

// Snapshot copies the non-empty answers. Blank texts and empty selections
// count as unanswered.
func (s *AnswerStore) Snapshot() Answers {
	out := make(Answers, len(s.values))
	for id, v := range s.values {
		if v.IsEmpty() {
			continue
		}
		if v.IsSelection() {
			v = Selection(v.options...)
		}
		out[id] = v
	}
	return out
}
