package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedPromptsLoad(t *testing.T) {
	p, err := LoadPrompts()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(p.MasterNoteSystem, "You are a Master Note Synthesizer."))
	assert.Contains(t, p.MasterNoteSystem, "6. Do not mention that you are an AI")
	assert.Contains(t, p.QuizRequest, `"answer": "A"`)
	assert.True(t, strings.HasSuffix(p.ContextWithMasterNote, "{{content}}\n\n"))
	assert.Contains(t, p.TutorSystem, "Mode: {{mode}}.")
	assert.NotContains(t, p.TutorSystem, "\n")
}

func TestRender(t *testing.T) {
	assert.Equal(t, "Mode: quiz. quiz", render("Mode: {{mode}}. {{mode}}", "mode", "quiz"))
	assert.Equal(t, "x {{y}}", render("x {{y}}"))
	assert.Equal(t, "a=1", render("a={{a}}", "a", "1", "dangling"))
}
