package rendering

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"os"
	"strings"
	texttemplate "text/template"

	"github.com/webjhones/requirements-intake/internal/summary"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const messageRuleWidth = 50

// Renderer renders summary records. It is safe for concurrent use.
type Renderer struct {
	html    *htmltemplate.Template
	message *texttemplate.Template
}

// NewRenderer parses the built-in templates. A non-empty htmlTemplatePath
// replaces the built-in HTML summary template with a file from disk.
func NewRenderer(htmlTemplatePath string) (*Renderer, error) {
	html, err := parseHTMLTemplate(htmlTemplatePath)
	if err != nil {
		return nil, err
	}

	messageSrc, err := templateFS.ReadFile("templates/message.txt.tmpl")
	if err != nil {
		return nil, &TemplateError{Message: "failed to read message template", Cause: err}
	}
	message, err := texttemplate.New("message").Funcs(texttemplate.FuncMap{
		"rule": func() string { return strings.Repeat("=", messageRuleWidth) },
	}).Parse(string(messageSrc))
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse message template", Cause: err}
	}

	return &Renderer{html: html, message: message}, nil
}

// parseHTMLTemplate reads the summary template from path, or the embedded
// default when path is empty.
func parseHTMLTemplate(path string) (*htmltemplate.Template, error) {
	var content []byte
	var err error
	if path == "" {
		content, err = templateFS.ReadFile("templates/summary.html.tmpl")
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", path),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", path),
			Cause:   err,
		}
	}

	tmpl, err := htmltemplate.New("summary").Parse(string(content))
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

// HTML renders the printable summary page.
func (r *Renderer) HTML(rec summary.Record) (string, error) {
	var out strings.Builder
	if err := r.html.Execute(&out, NewView(rec)); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}
	return out.String(), nil
}

// Message renders the full requirements message sent over WhatsApp.
func (r *Renderer) Message(rec summary.Record) (string, error) {
	var out strings.Builder
	if err := r.message.Execute(&out, NewView(rec)); err != nil {
		return "", &TemplateError{Message: "failed to execute message template", Cause: err}
	}
	return strings.TrimRight(out.String(), "\n"), nil
}

// MailSubject is the subject line of the requirements e-mail.
func MailSubject(rec summary.Record) string {
	return fmt.Sprintf("Requisitos - %s - %s", SingleLine(rec.Service.Name), SingleLine(rec.Profile.Name))
}

// MailBody is the plain-text body of the requirements e-mail. The PDF is
// attached by the sender.
func MailBody(rec summary.Record) string {
	company := SingleLine(rec.Profile.Company)
	if company == "" {
		company = "Não informado"
	}
	name := SingleLine(rec.Profile.Name)

	var b strings.Builder
	b.WriteString("Olá,\n\nSegue o levantamento de requisitos:\n\n")
	fmt.Fprintf(&b, "Cliente: %s\n", name)
	fmt.Fprintf(&b, "Email: %s\n", SingleLine(rec.Profile.Email))
	fmt.Fprintf(&b, "Empresa: %s\n", company)
	fmt.Fprintf(&b, "Serviço: %s\n", SingleLine(rec.Service.Name))
	fmt.Fprintf(&b, "Complexidade: %s (%d/10)\n\n", ComplexityLabel(rec.ComplexityLabel), rec.ComplexityScore)
	b.WriteString("Por favor, anexe o PDF que foi baixado.\n\n")
	fmt.Fprintf(&b, "Atenciosamente,\n%s", name)
	return b.String()
}
