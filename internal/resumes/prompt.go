package resumes

import (
	"fmt"

	"career-backend/internal/llm"
)

func improvePrompt(industry, kind, current string) string {
	return fmt.Sprintf(`As an expert resume writer, improve the following %s description for a %s professional.
Make it more impactful, quantifiable and aligned with industry standards.
Current content: %q

Requirements:
1. Use action verbs
2. Include metrics and results where possible
3. Highlight relevant technical skills
4. Keep it concise but detailed
5. Focus on achievements over responsibilities
6. Use industry-specific keywords

Return a single paragraph with no additional text or explanations.`, kind, industry, current)
}

func atsPrompt(industry, content string) string {
	return fmt.Sprintf(`You are an applicant tracking system reviewing a resume for the %s industry.
Score how well it would pass automated screening from 0 to 100 and list concrete improvements.
Return JSON only, no notes, in exactly this shape:
{ "atsScore": number, "feedback": ["string"] }

Resume:
%s`, industry, content)
}

var atsSchema = llm.MustSchema(`{
  "type": "object",
  "required": ["atsScore", "feedback"],
  "properties": {
    "atsScore": {"type": "number", "minimum": 0, "maximum": 100},
    "feedback": {"type": "array", "items": {"type": "string"}}
  }
}`)
