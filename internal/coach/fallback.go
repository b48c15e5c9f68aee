package coach

import (
	"github.com/abhisek/skillbridge/internal/rubric"
)

// fallbackCoaching returns deterministic coaching for the weakest
// dimension when the LLM produced nothing usable.
func fallbackCoaching(score rubric.ScoreResult, weakest string) string {
	if weakest == rubric.DimStarStructure {
		if score.StructureIssue == "missing_result" {
			return "You provided context about the situation but didn't quantify the outcome. " +
				"Next time when answering behavioral questions, always end with measurable results " +
				"like 'reduced response time by 40%' or 'increased user engagement by 25%'. " +
				"This is good interview practice because interviewers want tangible evidence of " +
				"your impact, not just descriptions of what you did."
		}
		return "Your answer mentioned the situation but lacked specific actions you personally took. " +
			"Next time when facing this type of question, try structuring your answer with clear " +
			"action steps: 'I implemented X, configured Y, and tested Z.' This is good interview " +
			"practice because interviewers need to understand your hands-on contributions and " +
			"technical decision-making process."
	}
	if weakest == rubric.DimClarity {
		return "You covered the main points but the answer could be more concise and focused. " +
			"Next time when answering, start with a one-sentence situation summary, then move " +
			"directly to your actions and results. This is good interview practice because " +
			"interviewers appreciate clear, structured responses that respect their time and make " +
			"your accomplishments easy to understand."
	}
	return "Your answer was well-structured but didn't fully address what the question was asking " +
		"for. Next time when facing similar questions, ensure you directly answer the specific " +
		"scenario requested and include relevant examples. This is good interview practice because " +
		"staying on topic demonstrates your listening skills and ability to provide relevant " +
		"information under pressure."
}

// fallbackIdealAnswer returns a structured STAR example when the LLM
// produced no ideal answer.
func fallbackIdealAnswer() string {
	return `**Ideal STAR Answer Example:**

**Situation:** In my previous role at [Company], we faced [specific challenge related to the question].

**Task:** I was responsible for [clear objective or goal that needed to be achieved].

**Action:** I took the following steps:
- First, I analyzed [specific technical aspect] and identified [root cause]
- Then, I implemented [specific solution with technical details]
- I also [additional action that shows initiative]
- Finally, I tested and validated [how you ensured quality]

**Result:** This resulted in [quantified improvement, e.g. "40% performance increase" or "reduced downtime by 2 hours/week"]. The solution was adopted across [scope of impact].

Key takeaway: Always include measurable outcomes and specific technical decisions.`
}
