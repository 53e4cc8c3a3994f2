// Package observability provides formatted console output for the intake CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/webjhones/requirements-intake/internal/catalog"
	"github.com/webjhones/requirements-intake/internal/db"
	"github.com/webjhones/requirements-intake/internal/summary"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted console output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// pad right-pads s with spaces to width runes.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCatalog outputs every service with its category and question count.
func (p *Printer) PrintCatalog(cat *catalog.Catalog) {
	if cat == nil {
		return
	}

	services := cat.Services()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d services\n\n", len(services)))
	for i, svc := range services {
		questions := cat.QuestionsFor(svc.ID)
		status := fmt.Sprintf("%d questions", len(questions))
		if len(questions) == 0 {
			status = "no questionnaire"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", svc.Icon, svc.Name))
		sb.WriteString(fmt.Sprintf("  %s · %s · %s", svc.ID, svc.Category, status))
		if i < len(services)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SERVICE CATALOG", sb.String())
}

// PrintSummary outputs a composed summary: client, service, complexity,
// recommendations and the first answered questions.
func (p *Printer) PrintSummary(rec *summary.Record) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Client:     %s <%s>\n", rec.Profile.Name, rec.Profile.Email))
	if rec.Profile.Company != "" {
		sb.WriteString(fmt.Sprintf("Company:    %s\n", rec.Profile.Company))
	}
	sb.WriteString(fmt.Sprintf("Service:    %s\n", rec.Service.Name))
	sb.WriteString(fmt.Sprintf("Complexity: %d/%d (%s)\n", rec.ComplexityScore, summary.MaxScore, rec.ComplexityLabel))

	if len(rec.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, r := range rec.Recommendations {
			sb.WriteString(fmt.Sprintf("  • %s\n", r))
		}
	}

	if len(rec.AnsweredQuestions) > 0 {
		sb.WriteString("\nAnswers:\n")
		count := min(len(rec.AnsweredQuestions), maxItemsToShow)
		for i := 0; i < count; i++ {
			aq := rec.AnsweredQuestions[i]
			sb.WriteString(fmt.Sprintf("  %d. %s\n", aq.Position, aq.Question.Prompt))
			sb.WriteString(fmt.Sprintf("     %s\n", aq.Answer.String()))
		}
		if len(rec.AnsweredQuestions) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(rec.AnsweredQuestions)-maxItemsToShow))
		}
	}

	p.printBox("REQUIREMENTS SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSubmissions outputs a listing of stored submissions, newest first.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSubmissions(submissions []db.Submission) {
	if len(submissions) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("NO SUBMISSIONS FOUND", boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d submissions:\n\n", len(submissions)))
	for i, sub := range submissions {
		sb.WriteString(fmt.Sprintf("%s  %s\n", sub.CreatedAt.Format("2006-01-02 15:04"), sub.ServiceName))
		sb.WriteString(fmt.Sprintf("  %s <%s>\n", sub.Profile.Name, sub.Profile.Email))
		sb.WriteString(fmt.Sprintf("  %s", sub.ID))
		if i < len(submissions)-1 {
			sb.WriteString("\n\n")
		}
	}

	p.printBox("SUBMISSIONS", sb.String())
}
