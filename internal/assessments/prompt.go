package assessments

import (
	"fmt"
	"strings"

	"career-backend/internal/llm"
)

func quizPrompt(industry string, skills []string) string {
	expertise := ""
	if len(skills) > 0 {
		expertise = " with expertise in " + strings.Join(skills, ", ")
	}
	return fmt.Sprintf(`Generate %d technical interview questions for a %s professional%s.

Each question should be multiple choice with 4 options.

Return the response in this JSON format only, no additional text:
{
  "questions": [
    {
      "question": "string",
      "options": ["string", "string", "string", "string"],
      "correctAnswer": "string",
      "explanation": "string"
    }
  ]
}`, QuizLength, industry, expertise)
}

func tipPrompt(industry string, wrong []QuestionResult) string {
	parts := make([]string, 0, len(wrong))
	for _, q := range wrong {
		parts = append(parts, fmt.Sprintf("Question: %q\nCorrect: %q\nUser: %q", q.Question, q.Answer, q.UserAnswer))
	}
	return fmt.Sprintf(`The user got the following %s technical interview questions wrong:

%s

Based on these mistakes, provide a concise, specific improvement tip.
Focus on knowledge gaps. Keep it under 2 sentences and encouraging.
Don't explicitly mention the mistakes, instead focus on what to learn/practice.`, industry, strings.Join(parts, "\n\n"))
}

type generatedQuiz struct {
	Questions []Question `json:"questions"`
}

var quizSchema = llm.MustSchema(`{
  "type": "object",
  "required": ["questions"],
  "properties": {
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["question", "options", "correctAnswer", "explanation"],
        "properties": {
          "question": {"type": "string", "minLength": 1},
          "options": {"type": "array", "minItems": 4, "maxItems": 4, "items": {"type": "string"}},
          "correctAnswer": {"type": "string", "minLength": 1},
          "explanation": {"type": "string"}
        }
      }
    }
  }
}`)
