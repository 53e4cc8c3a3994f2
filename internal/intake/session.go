package intake

import (
	"github.com/webjhones/requirements-intake/internal/catalog"
)

// Session is one questionnaire run for a chosen service. It owns its answer
// store exclusively.
type Session struct {
	Service   catalog.ServiceDefinition
	Profile   ProfileRecord
	Sequence  []catalog.QuestionDefinition
	Answers   *AnswerStore
	Navigator *Navigator
}

// Completion is the finished record handed to persistence once the
// questionnaire completes.
type Completion struct {
	Profile     ProfileRecord `json:"profile"`
	ServiceID   string        `json:"service_id"`
	ServiceName string        `json:"service_name"`
	Answers     Answers       `json:"answers"`
}

// StartSession opens a questionnaire for serviceID. Unknown services and
// services without questions yield ErrQuestionnaireUnavailable.
func StartSession(cat *catalog.Catalog, serviceID string, profile ProfileRecord) (*Session, error) {
	service, ok := cat.Service(serviceID)
	if !ok {
		return nil, ErrQuestionnaireUnavailable
	}
	sequence := cat.QuestionsFor(serviceID)
	if len(sequence) == 0 {
		return nil, ErrQuestionnaireUnavailable
	}

	answers := NewAnswerStore(sequence)
	nav, err := NewNavigator(sequence, answers)
	if err != nil {
		return nil, err
	}
	return &Session{
		Service:   service,
		Profile:   profile,
		Sequence:  sequence,
		Answers:   answers,
		Navigator: nav,
	}, nil
}

// Question looks up a question of this session by id.
func (s *Session) Question(id string) (catalog.QuestionDefinition, bool) {
	for _, q := range s.Sequence {
		if q.ID == id {
			return q, true
		}
	}
	return catalog.QuestionDefinition{}, false
}

// Completion returns the finished record once the navigator has completed.
func (s *Session) Completion() (Completion, bool) {
	answers, done := s.Navigator.Completion()
	if !done {
		return Completion{}, false
	}
	return Completion{
		Profile:     s.Profile,
		ServiceID:   s.Service.ID,
		ServiceName: s.Service.Name,
		Answers:     answers,
	}, true
}
