package rendering

import (
	"github.com/webjhones/requirements-intake/internal/summary"
)

// TimestampLayout formats completion times in the dd/mm/yyyy style clients read.
const TimestampLayout = "02/01/2006 15:04:05"

// Field is one labelled profile value.
type Field struct {
	Label string
	Value string
}

// AnswerView is an answered question prepared for display.
type AnswerView struct {
	Number int
	Prompt string
	Text   string
	Items  []string
}

// View is the data passed to the summary templates.
type View struct {
	ServiceName     string
	ServiceIcon     string
	UserType        string
	Client          []Field
	Description     string
	Score           int
	ComplexityCode  string
	Complexity      string
	Recommendations []string
	Answers         []AnswerView
	GeneratedAt     string
}

// NewView prepares rec for the templates. Only non-empty profile fields are
// listed; coded fields are replaced by their labels.
func NewView(rec summary.Record) View {
	p := rec.Profile

	client := []Field{
		{Label: "Nome", Value: SingleLine(p.Name)},
		{Label: "Email", Value: SingleLine(p.Email)},
	}
	optional := []Field{
		{Label: "Empresa", Value: SingleLine(p.Company)},
		{Label: "Cargo", Value: SingleLine(p.Role)},
		{Label: "Setor", Value: IndustryLabel(p.Industry)},
		{Label: "Tamanho da Empresa", Value: CompanySizeLabel(p.CompanySize)},
		{Label: "Orçamento", Value: BudgetLabel(p.Budget)},
		{Label: "Prazo", Value: TimelineLabel(p.Timeline)},
	}
	for _, f := range optional {
		if f.Value != "" {
			client = append(client, f)
		}
	}

	answers := make([]AnswerView, 0, len(rec.AnsweredQuestions))
	for _, aq := range rec.AnsweredQuestions {
		av := AnswerView{Number: aq.Position, Prompt: aq.Question.Prompt}
		if aq.Answer.IsSelection() {
			av.Items = aq.Answer.Options()
		} else {
			av.Text = aq.Answer.Text()
		}
		answers = append(answers, av)
	}

	v := View{
		ServiceName:     rec.Service.Name,
		ServiceIcon:     rec.Service.Icon,
		UserType:        lookup(userTypeLabels, string(p.UserType)),
		Client:          client,
		Description:     p.Description,
		Score:           rec.ComplexityScore,
		ComplexityCode:  string(rec.ComplexityLabel),
		Complexity:      ComplexityLabel(rec.ComplexityLabel),
		Recommendations: rec.Recommendations,
		Answers:         answers,
	}
	if !rec.GeneratedAt.IsZero() {
		v.GeneratedAt = rec.GeneratedAt.Format(TimestampLayout)
	}
	return v
}
