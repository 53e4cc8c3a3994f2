package intake

import (
	"github.com/webjhones/requirements-intake/internal/catalog"
)

func testSequence() []catalog.QuestionDefinition {
	return []catalog.QuestionDefinition{
		{ID: "goal", Prompt: "Goal?", Kind: catalog.KindSingleChoice, Choices: []string{"leads", "sales"}, Required: true},
		{ID: "notes", Prompt: "Notes?", Kind: catalog.KindLongText},
		{ID: "features", Prompt: "Features?", Kind: catalog.KindMultiChoice, Choices: []string{"a", "b", "c"}},
		{ID: "cta", Prompt: "CTA?", Kind: catalog.KindShortText, Required: true},
	}
}

func validProfile() ProfileInput {
	return ProfileInput{
		UserType: "company",
		Name:     "Ana Souza",
		Email:    "ana@example.com",
		Budget:   "5k-15k",
		Timeline: "3-months",
	}
}
