package rendering

import (
	"github.com/webjhones/requirements-intake/internal/intake"
	"github.com/webjhones/requirements-intake/internal/summary"
)

var budgetLabels = map[string]string{
	"under-5k":    "Até R$ 5.000",
	"5k-15k":      "R$ 5.000 - R$ 15.000",
	"15k-50k":     "R$ 15.000 - R$ 50.000",
	"50k-100k":    "R$ 50.000 - R$ 100.000",
	"over-100k":   "Acima de R$ 100.000",
	"not-defined": "Ainda não definido",
}

var timelineLabels = map[string]string{
	"asap":     "O mais rápido possível",
	"1-month":  "Até 1 mês",
	"3-months": "Até 3 meses",
	"6-months": "Até 6 meses",
	"flexible": "Flexível",
}

var companySizeLabels = map[string]string{
	"individual": "Pessoa Física",
	"micro":      "Micro (até 9 funcionários)",
	"small":      "Pequena (10-49 funcionários)",
	"medium":     "Média (50-249 funcionários)",
	"large":      "Grande (250+ funcionários)",
}

var industryLabels = map[string]string{
	"tech":          "Tecnologia",
	"ecommerce":     "E-commerce",
	"healthcare":    "Saúde",
	"education":     "Educação",
	"finance":       "Financeiro",
	"retail":        "Varejo",
	"manufacturing": "Manufatura",
	"services":      "Serviços",
	"other":         "Outro",
}

var userTypeLabels = map[string]string{
	string(intake.UserIndividual): "Pessoa Física",
	string(intake.UserCompany):    "Empresa",
}

var complexityLabels = map[summary.Label]string{
	summary.LabelLow:    "Baixa",
	summary.LabelMedium: "Média",
	summary.LabelHigh:   "Alta",
}

// lookup returns the display label for code, or code itself when the table
// does not know it.
func lookup(table map[string]string, code string) string {
	if label, ok := table[code]; ok {
		return label
	}
	return code
}

// BudgetLabel returns the display label of a budget code.
func BudgetLabel(code string) string { return lookup(budgetLabels, code) }

// TimelineLabel returns the display label of a timeline code.
func TimelineLabel(code string) string { return lookup(timelineLabels, code) }

// CompanySizeLabel returns the display label of a company size code.
func CompanySizeLabel(code string) string { return lookup(companySizeLabels, code) }

// IndustryLabel returns the display label of an industry code.
func IndustryLabel(code string) string { return lookup(industryLabels, code) }

// ComplexityLabel returns the display label of a complexity bucket.
func ComplexityLabel(l summary.Label) string {
	if label, ok := complexityLabels[l]; ok {
		return label
	}
	return string(l)
}
