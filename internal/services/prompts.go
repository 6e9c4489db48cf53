package services

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

type Replies struct {
	NoPendingQuiz  string `yaml:"no_pending_quiz"`
	AnswerUnparsed string `yaml:"answer_unparsed"`
	QuizFailed     string `yaml:"quiz_failed"`
	ChatFailed     string `yaml:"chat_failed"`
}

type Prompts struct {
	MasterNoteSystem         string  `yaml:"master_note_system"`
	MasterNoteUser           string  `yaml:"master_note_user"`
	IngestionSystem          string  `yaml:"ingestion_system"`
	OCRUser                  string  `yaml:"ocr_user"`
	TutorSystem              string  `yaml:"tutor_system"`
	QuizRequest              string  `yaml:"quiz_request"`
	ChatRequest              string  `yaml:"chat_request"`
	ContextWithMasterNote    string  `yaml:"context_with_master_note"`
	ContextWithoutMasterNote string  `yaml:"context_without_master_note"`
	Replies                  Replies `yaml:"replies"`
	MockIngestion            string  `yaml:"mock_ingestion"`
}

var (
	promptsOnce sync.Once
	prompts     *Prompts
	promptsErr  error
)

// LoadPrompts parses the embedded prompt file once.
func LoadPrompts() (*Prompts, error) {
	promptsOnce.Do(func() {
		var p Prompts
		if err := yaml.Unmarshal(promptsYAML, &p); err != nil {
			promptsErr = fmt.Errorf("parse prompts.yaml: %w", err)
			return
		}
		if err := p.validate(); err != nil {
			promptsErr = err
			return
		}
		prompts = &p
	})
	return prompts, promptsErr
}

// MustLoadPrompts panics on a malformed embedded file.
func MustLoadPrompts() *Prompts {
	p, err := LoadPrompts()
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Prompts) validate() error {
	required := map[string]string{
		"master_note_system":          p.MasterNoteSystem,
		"master_note_user":            p.MasterNoteUser,
		"ingestion_system":            p.IngestionSystem,
		"ocr_user":                    p.OCRUser,
		"tutor_system":                p.TutorSystem,
		"quiz_request":                p.QuizRequest,
		"chat_request":                p.ChatRequest,
		"context_with_master_note":    p.ContextWithMasterNote,
		"context_without_master_note": p.ContextWithoutMasterNote,
		"replies.no_pending_quiz":     p.Replies.NoPendingQuiz,
		"replies.answer_unparsed":     p.Replies.AnswerUnparsed,
		"replies.quiz_failed":         p.Replies.QuizFailed,
		"replies.chat_failed":         p.Replies.ChatFailed,
		"mock_ingestion":              p.MockIngestion,
	}
	for k, v := range required {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("prompts.yaml: %s is empty", k)
		}
	}
	return nil
}

// render substitutes {{key}} placeholders.
func render(tmpl string, kv ...string) string {
	if len(kv) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(kv))
	for i := 0; i+1 < len(kv); i += 2 {
		pairs = append(pairs, "{{"+kv[i]+"}}", kv[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
