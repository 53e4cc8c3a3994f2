package summary

import (
	"github.com/webjhones/requirements-intake/internal/catalog"
	"github.com/webjhones/requirements-intake/internal/intake"
)

// MaxRecommendations bounds the recommendation list.
const MaxRecommendations = 3

type ruleInput struct {
	profile intake.ProfileRecord
	service catalog.ServiceDefinition
	score   int
}

type rule struct {
	name    string
	applies func(ruleInput) bool
	text    string
}

// rules are evaluated independently in declaration order.
var rules = []rule{
	{
		name: "budget-undefined",
		applies: func(in ruleInput) bool {
			return in.profile.Budget == "" || in.profile.Budget == "not-defined"
		},
		text: "Definir um orçamento claro ajudará a priorizar funcionalidades essenciais",
	},
	{
		name:    "high-complexity",
		applies: func(in ruleInput) bool { return in.score >= 7 },
		text:    "Projeto de alta complexidade: considere dividir a entrega em fases, começando por um MVP",
	},
	{
		name:    "urgent-timeline",
		applies: func(in ruleInput) bool { return in.profile.Timeline == "asap" },
		text:    "Com prazo urgente, priorize as funcionalidades essenciais para o lançamento inicial",
	},
	{
		name:    "mobile",
		applies: func(in ruleInput) bool { return in.service.Category == catalog.CategoryMobile },
		text:    "Para reduzir custos, considere desenvolver um app híbrido (React Native ou Flutter)",
	},
	{
		name:    "automation",
		applies: func(in ruleInput) bool { return in.service.Category == catalog.CategoryAutomation },
		text:    "Mapeie os fluxos atuais de atendimento antes de automatizar para garantir uma boa experiência",
	},
	{
		name:    "large-company",
		applies: func(in ruleInput) bool { return in.profile.CompanySize == "large" },
		text:    "Para empresas de grande porte, planeje integrações com os sistemas internos e requisitos de segurança",
	},
}

// Recommendations collects the text of every matching rule in declaration
// order, keeping at most MaxRecommendations entries.
func Recommendations(profile intake.ProfileRecord, service catalog.ServiceDefinition, score int) []string {
	in := ruleInput{profile: profile, service: service, score: score}
	out := make([]string, 0, MaxRecommendations)
	for _, r := range rules {
		if len(out) == MaxRecommendations {
			break
		}
		if r.applies(in) {
			out = append(out, r.text)
		}
	}
	return out
}
