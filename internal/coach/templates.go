package coach

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed templates.json
var defaultTemplates []byte

// Templates holds the deterministic coaching text used when the LLM is
// unavailable and for the always-present improvement and practice slots.
type Templates struct {
	General GeneralTemplates `json:"general"`
}

// GeneralTemplates maps detected weaknesses to canned guidance.
type GeneralTemplates struct {
	ImprovementBullets  map[string]string `json:"improvement_bullets"`
	PracticePrompts     map[string]string `json:"practice_prompts"`
	ModelAnswerTemplate string            `json:"model_answer_template"`
}

// LoadDefaultTemplates parses the embedded template corpus.
func LoadDefaultTemplates() (Templates, error) {
	var t Templates
	if err := json.Unmarshal(defaultTemplates, &t); err != nil {
		return Templates{}, fmt.Errorf("parse coach templates: %w", err)
	}
	return t, nil
}

// skeletonModelAnswer renders the STAR skeleton used when a question
// carries no curated model answer.
func (t Templates) skeletonModelAnswer() string {
	tmpl := t.General.ModelAnswerTemplate
	if tmpl == "" {
		return "S: [Situation]\nT: [Task]\nA: [Action: what you did]\nR: [Result: measurable outcome]"
	}
	return strings.NewReplacer(
		"{situation}", "[Situation]",
		"{task}", "[Task]",
		"{actions}", "[Actions]",
		"{result}", "[Result]",
	).Replace(tmpl)
}
