package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webjhones/requirements-intake/internal/catalog"
	"github.com/webjhones/requirements-intake/internal/intake"
)

func TestAnswerRequest_Decode(t *testing.T) {
	var text AnswerRequest
	require.NoError(t, json.Unmarshal([]byte(`{"value":"Comprar"}`), &text))
	assert.False(t, text.Value.IsSelection())
	assert.Equal(t, "Comprar", text.Value.Text())

	var selection AnswerRequest
	require.NoError(t, json.Unmarshal([]byte(`{"value":["FAQ","Preços"]}`), &selection))
	assert.True(t, selection.Value.IsSelection())
	assert.Equal(t, []string{"FAQ", "Preços"}, selection.Value.Options())
}

func TestJumpRequest_Validate(t *testing.T) {
	zero := 0
	negative := -1

	assert.NoError(t, (&JumpRequest{Index: &zero}).Validate())
	assert.Error(t, (&JumpRequest{}).Validate(), "index is required")
	assert.Error(t, (&JumpRequest{Index: &negative}).Validate())
}

func TestSelectServiceRequest_Validate(t *testing.T) {
	assert.NoError(t, (&SelectServiceRequest{ServiceID: "landing-page"}).Validate())
	assert.Error(t, (&SelectServiceRequest{}).Validate())
}

func TestToggleRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ToggleRequest{Option: "FAQ"}).Validate())
	assert.Error(t, (&ToggleRequest{Included: true}).Validate())
}

func TestNewQuestionnaireState(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	session, err := intake.StartSession(cat, "landing-page", intake.ProfileRecord{Name: "Ana"})
	require.NoError(t, err)

	state := NewQuestionnaireState(session)
	assert.Equal(t, 0, state.Index)
	assert.Equal(t, len(session.Sequence), state.Total)
	assert.Equal(t, 100/state.Total, state.Progress)
	require.NotNil(t, state.Current)
	assert.Equal(t, "objective", state.Current.ID)
	assert.Nil(t, state.CurrentAnswer)
	assert.False(t, state.CanAdvance)
	assert.Equal(t, intake.StatusCurrent, state.Statuses[0])

	require.NoError(t, session.Answers.Set("objective", intake.Text("Vender produto/serviço")))
	state = NewQuestionnaireState(session)
	require.NotNil(t, state.CurrentAnswer)
	assert.Equal(t, "Vender produto/serviço", state.CurrentAnswer.Text())
	assert.True(t, state.CanAdvance)
	assert.Len(t, state.Answers, 1)
}
