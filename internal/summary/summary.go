// Package summary derives the read-only summary of a finished intake: the
// complexity heuristic, canned recommendations and the answered questions in
// questionnaire order. Everything here is a pure function of its inputs; a
// summary is recomputed, never patched.
package summary

import (
	"math"
	"time"

	"github.com/webjhones/requirements-intake/internal/catalog"
	"github.com/webjhones/requirements-intake/internal/intake"
)

// Label buckets a complexity score.
type Label string

// Complexity labels.
const (
	LabelLow    Label = "Low"
	LabelMedium Label = "Medium"
	LabelHigh   Label = "High"
)

const (
	// BaseScore is the score of a questionnaire with no answers.
	BaseScore = 3
	// MaxScore caps the complexity heuristic.
	MaxScore = 10
)

// AnsweredQuestion pairs a question with its answer. Position is the
// 1-based position of the question in its sequence.
type AnsweredQuestion struct {
	Position int                        `json:"position"`
	Question catalog.QuestionDefinition `json:"question"`
	Answer   intake.AnswerValue         `json:"answer"`
}

// Record is the summary handed to rendering and export.
type Record struct {
	Profile           intake.ProfileRecord      `json:"profile"`
	Service           catalog.ServiceDefinition `json:"service"`
	ComplexityScore   int                       `json:"complexity_score"`
	ComplexityLabel   Label                     `json:"complexity_label"`
	Recommendations   []string                  `json:"recommendations"`
	AnsweredQuestions []AnsweredQuestion        `json:"answered_questions"`
	GeneratedAt       time.Time                 `json:"generated_at"`
}

// ComplexityScore is a rough heuristic of answer volume and breadth: the base
// score, plus one point per three answered questions, plus half a point per
// selected option, rounded and clamped to [0, MaxScore]. It is only meant to
// sort projects into coarse buckets.
func ComplexityScore(answers intake.Answers) int {
	answered := 0
	selected := 0
	for _, v := range answers {
		if v.IsEmpty() {
			continue
		}
		answered++
		if v.IsSelection() {
			selected += v.Len()
		}
	}

	raw := float64(BaseScore) + float64(answered/3) + 0.5*float64(selected)
	score := int(math.Round(raw))
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// LabelFor maps a score onto its bucket: up to 3 is Low, 4 to 6 is Medium,
// 7 and above is High.
func LabelFor(score int) Label {
	switch {
	case score <= 3:
		return LabelLow
	case score <= 6:
		return LabelMedium
	default:
		return LabelHigh
	}
}

// AnsweredQuestions filters sequence to the questions with a present answer,
// keeping sequence order whatever order they were answered in.
func AnsweredQuestions(sequence []catalog.QuestionDefinition, answers intake.Answers) []AnsweredQuestion {
	out := make([]AnsweredQuestion, 0, len(answers))
	for i, q := range sequence {
		v, ok := answers.Get(q.ID)
		if !ok || v.IsEmpty() {
			continue
		}
		out = append(out, AnsweredQuestion{Position: i + 1, Question: q, Answer: v})
	}
	return out
}

// Compose builds the summary of a finished questionnaire.
func Compose(
	profile intake.ProfileRecord,
	service catalog.ServiceDefinition,
	sequence []catalog.QuestionDefinition,
	answers intake.Answers,
	generatedAt time.Time,
) Record {
	score := ComplexityScore(answers)
	return Record{
		Profile:           profile,
		Service:           service,
		ComplexityScore:   score,
		ComplexityLabel:   LabelFor(score),
		Recommendations:   Recommendations(profile, service, score),
		AnsweredQuestions: AnsweredQuestions(sequence, answers),
		GeneratedAt:       generatedAt,
	}
}

// FromCompletion composes the summary of a completed session.
func FromCompletion(cat *catalog.Catalog, c intake.Completion, generatedAt time.Time) Record {
	service, ok := cat.Service(c.ServiceID)
	if !ok {
		service = catalog.ServiceDefinition{ID: c.ServiceID, Name: c.ServiceName}
	}
	return Compose(c.Profile, service, cat.QuestionsFor(c.ServiceID), c.Answers, generatedAt)
}
