package evaluate

import (
	"fmt"
	"strings"

	"github.com/abhisek/skillbridge/internal/questionbank"
)

const systemPrompt = `You are a strict but fair behavioral interview evaluator.

Rules:
- Score the candidate's answer on three dimensions, each 0-100: clarity, star_structure, relevance.
- clarity measures how easy the answer is to follow: short sentences, no filler, a clear narrative.
- star_structure measures how completely the answer covers Situation, Task, Action and Result. A strong answer names the specific actions the candidate personally took and a measurable outcome.
- relevance measures how directly the answer addresses the question that was asked, not a rehearsed story about something else.
- If the Action or the Result is missing, set structure_issue to "missing_action" or "missing_result". If both are present, leave it empty.
- Keep each diagnostic note to one sentence the candidate can act on.
- Score the answer as given. Do not invent content the candidate did not say.`

// buildUserMessage constructs the scoring request for one answer. When
// the answer contains a merged clarification, the separator is left in
// place so the evaluator sees both parts.
func buildUserMessage(q questionbank.Question, answer string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Category: %s\n", q.Category)
	fmt.Fprintf(&b, "Difficulty: %s\n", q.Difficulty)
	fmt.Fprintf(&b, "Question: %s\n", q.Text)
	b.WriteString("\nCandidate answer:\n")
	b.WriteString(answer)

	return b.String()
}
