package rendering

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webjhones/requirements-intake/internal/catalog"
	"github.com/webjhones/requirements-intake/internal/intake"
	"github.com/webjhones/requirements-intake/internal/summary"
)

func testRecord() summary.Record {
	sequence := []catalog.QuestionDefinition{
		{ID: "objective", Prompt: "Qual o objetivo?", Kind: catalog.KindSingleChoice, Choices: []string{"Vender"}, Required: true},
		{ID: "notes", Prompt: "Observações", Kind: catalog.KindLongText},
		{ID: "sections", Prompt: "Quais seções?", Kind: catalog.KindMultiChoice, Choices: []string{"FAQ", "Preços"}},
	}
	profile := intake.ProfileRecord{
		UserType: intake.UserCompany,
		Name:     "Ana <Souza>",
		Email:    "ana@example.com",
		Company:  "Acme",
		Budget:   "not-defined",
		Timeline: "asap",
	}
	service := catalog.ServiceDefinition{ID: "landing-page", Name: "Landing Page", Icon: "🎯", Category: catalog.CategoryWeb}
	answers := intake.Answers{
		"objective": intake.Text("Vender"),
		"sections":  intake.Selection("FAQ", "Preços"),
	}
	return summary.Compose(profile, service, sequence, answers, time.Date(2026, 3, 4, 9, 5, 0, 0, time.UTC))
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer("")
	require.NoError(t, err)
	return r
}

func TestRenderer_HTML(t *testing.T) {
	out, err := newTestRenderer(t).HTML(testRecord())
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, "Landing Page", doc.Find("#service-name").Text())

	badge := doc.Find(".complexity")
	assert.True(t, badge.HasClass("complexity-Medium"))
	assert.Equal(t, "Média (4/10)", badge.Text())

	fields := doc.Find("#profile dd.field").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"Ana <Souza>", "ana@example.com", "Acme", "Ainda não definido", "O mais rápido possível"}, fields)

	answers := doc.Find("li.answer")
	require.Equal(t, 2, answers.Length())
	assert.Equal(t, "Qual o objetivo?", answers.Eq(0).Find(".prompt").Text())
	assert.Equal(t, "Vender", answers.Eq(0).Find(".text").Text())
	value, _ := answers.Eq(1).Attr("value")
	assert.Equal(t, "3", value)
	items := answers.Eq(1).Find("ul.items li").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"FAQ", "Preços"}, items)

	assert.Equal(t, 2, doc.Find("#recommendations .recommendation").Length())
	assert.Equal(t, "04/03/2026 09:05:00", doc.Find("#generated-at").Text())
}

func TestRenderer_HTMLEscapesUserText(t *testing.T) {
	out, err := newTestRenderer(t).HTML(testRecord())
	require.NoError(t, err)
	assert.NotContains(t, out, "<Souza>")
	assert.Contains(t, out, "Ana &lt;Souza&gt;")
}

func TestRenderer_HTMLWithoutAnswers(t *testing.T) {
	rec := testRecord()
	rec.AnsweredQuestions = nil
	rec.Recommendations = nil

	out, err := newTestRenderer(t).HTML(rec)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("#answers p.empty").Length())
	assert.Equal(t, 0, doc.Find("#recommendations").Length())
}

func TestRenderer_Message(t *testing.T) {
	out, err := newTestRenderer(t).Message(testRecord())
	require.NoError(t, err)

	rule := strings.Repeat("=", 50)
	expected := strings.Join([]string{
		"📋 *NOVO LEVANTAMENTO DE REQUISITOS*",
		rule,
		"",
		"👤 *DADOS DO CLIENTE*",
		"Nome: Ana <Souza>",
		"Email: ana@example.com",
		"Empresa: Acme",
		"Orçamento: Ainda não definido",
		"Prazo: O mais rápido possível",
		"",
		"🎯 *SERVIÇO SELECIONADO*",
		"Landing Page",
		"",
		"❓ *RESPOSTAS DO QUESTIONÁRIO*",
		rule,
		"",
		"*1. Qual o objetivo?*",
		"Vender",
		"",
		"*3. Quais seções?*",
		"  • FAQ",
		"  • Preços",
		"",
		rule,
		"✅ Levantamento concluído em: 04/03/2026 09:05:00",
		"📱 Enviado via WebJhones Requirements",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestRenderer_MessageIncludesDescription(t *testing.T) {
	rec := testRecord()
	rec.Profile.Description = "Loja de roupas"

	out, err := newTestRenderer(t).Message(rec)
	require.NoError(t, err)
	assert.Contains(t, out, "Prazo: O mais rápido possível\nDescrição: Loja de roupas\n\n🎯")
}

func TestMailTexts(t *testing.T) {
	rec := testRecord()
	assert.Equal(t, "Requisitos - Landing Page - Ana <Souza>", MailSubject(rec))

	body := MailBody(rec)
	assert.True(t, strings.HasPrefix(body, "Olá,\n\nSegue o levantamento de requisitos:\n\n"))
	assert.Contains(t, body, "Empresa: Acme\n")
	assert.Contains(t, body, "Complexidade: Média (4/10)\n")
	assert.True(t, strings.HasSuffix(body, "Atenciosamente,\nAna <Souza>"))

	rec.Profile.Company = ""
	assert.Contains(t, MailBody(rec), "Empresa: Não informado\n")
}

func TestNewRenderer_CustomTemplate(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "summary.html")
	require.NoError(t, os.WriteFile(path, []byte(`<h1>{{.ServiceName}}</h1>`), 0644))

	r, err := NewRenderer(path)
	require.NoError(t, err)
	out, err := r.HTML(testRecord())
	require.NoError(t, err)
	assert.Equal(t, "<h1>Landing Page</h1>", out)
}

func TestNewRenderer_TemplateErrors(t *testing.T) {
	_, err := NewRenderer("/nonexistent/summary.html")
	var templateErr *TemplateError
	require.ErrorAs(t, err, &templateErr)
	assert.Contains(t, err.Error(), "template file not found")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "broken.html")
	require.NoError(t, os.WriteFile(path, []byte(`{{.Broken{{}}`), 0644))
	_, err = NewRenderer(path)
	assert.ErrorAs(t, err, &templateErr)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "R$ 5.000 - R$ 15.000", BudgetLabel("5k-15k"))
	assert.Equal(t, "custom", BudgetLabel("custom"))
	assert.Equal(t, "Até 3 meses", TimelineLabel("3-months"))
	assert.Equal(t, "Grande (250+ funcionários)", CompanySizeLabel("large"))
	assert.Equal(t, "Saúde", IndustryLabel("healthcare"))
	assert.Equal(t, "Alta", ComplexityLabel(summary.LabelHigh))
	assert.Equal(t, "", BudgetLabel(""))
}
