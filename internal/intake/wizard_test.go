package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webjhones/requirements-intake/internal/catalog"
)

func newTestWizard(t *testing.T) *Wizard {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return NewWizard(cat)
}

func TestWizard_LandingPageFlow(t *testing.T) {
	w := newTestWizard(t)
	assert.Equal(t, StageProfile, w.Stage())

	_, err := w.SubmitProfile(validProfile())
	require.NoError(t, err)
	assert.Equal(t, StageService, w.Stage())

	require.NoError(t, w.SelectService("landing-page"))
	assert.Equal(t, StageQuestionnaire, w.Stage())
	assert.Equal(t, "Landing Page de Alta Conversão", w.Session().Service.Name)

	tr, err := w.Advance()
	require.NoError(t, err)
	assert.Equal(t, TransitionBlocked, tr)

	require.NoError(t, w.Answer("objective", Text("Capturar leads (e-mails)")))
	tr, _ = w.Advance()
	assert.Equal(t, TransitionMoved, tr)
	require.NoError(t, w.Answer("target-audience", Text("Pequenas empresas")))
	tr, _ = w.Advance()
	assert.Equal(t, TransitionMoved, tr)
	require.NoError(t, w.Answer("cta", Text("Agendar demonstração")))
	tr, _ = w.Advance()
	assert.Equal(t, TransitionMoved, tr)

	// optional tail
	for w.Stage() == StageQuestionnaire {
		_, err := w.Advance()
		require.NoError(t, err)
	}
	assert.Equal(t, StageComplete, w.Stage())

	completion, ok := w.Completion()
	require.True(t, ok)
	assert.Equal(t, "landing-page", completion.ServiceID)
	assert.Equal(t, "Ana Souza", completion.Profile.Name)
	assert.Len(t, completion.Answers, 3)

	_, err = w.Advance()
	assert.ErrorIs(t, err, ErrWrongStage)
}

func TestWizard_UnavailableService(t *testing.T) {
	w := newTestWizard(t)
	_, err := w.SubmitProfile(validProfile())
	require.NoError(t, err)

	err = w.SelectService("nonexistent")
	assert.ErrorIs(t, err, ErrQuestionnaireUnavailable)
	assert.Equal(t, StageUnavailable, w.Stage())
	assert.Equal(t, "nonexistent", w.RequestedService())
	assert.Nil(t, w.Session())

	require.NoError(t, w.BackToServices())
	assert.Equal(t, StageService, w.Stage())
	require.NoError(t, w.SelectService("pwa"))
	assert.Equal(t, StageQuestionnaire, w.Stage())
}

func TestWizard_ProfileValidationKeepsStage(t *testing.T) {
	w := newTestWizard(t)
	in := validProfile()
	in.Name = ""

	_, err := w.SubmitProfile(in)
	var pe *ProfileError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, []string{"name"}, pe.Missing)
	assert.Equal(t, StageProfile, w.Stage())

	assert.ErrorIs(t, w.SelectService("landing-page"), ErrWrongStage)
}

func TestWizard_RetreatFromFirstQuestion(t *testing.T) {
	w := newTestWizard(t)
	_, err := w.SubmitProfile(validProfile())
	require.NoError(t, err)
	require.NoError(t, w.SelectService("landing-page"))
	require.NoError(t, w.Answer("objective", Text("Vender produto/serviço")))

	tr, err := w.Retreat()
	require.NoError(t, err)
	assert.Equal(t, TransitionAtStart, tr)
	assert.Equal(t, StageService, w.Stage())
	assert.Nil(t, w.Session())

	require.NoError(t, w.SelectService("landing-page"))
	assert.Equal(t, 0, w.Session().Answers.Len(), "new session starts empty")
}

func TestWizard_Restart(t *testing.T) {
	w := newTestWizard(t)
	_, err := w.SubmitProfile(validProfile())
	require.NoError(t, err)
	require.NoError(t, w.SelectService("landing-page"))

	w.Restart()
	assert.Equal(t, StageProfile, w.Stage())
	_, ok := w.Profile()
	assert.False(t, ok)

	_, err = w.SubmitProfile(validProfile())
	assert.NoError(t, err)
}
