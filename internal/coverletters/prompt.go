package coverletters

import (
	"fmt"
	"strings"

	"career-backend/internal/profiles"
)

func buildPrompt(p profiles.Profile, in GenerateInput) string {
	return fmt.Sprintf(`Write a professional cover letter for a %s position at %s.

About the candidate:
- Industry: %s
- Years of Experience: %d
- Skills: %s
- Professional Background: %s

Job Description:
%s

Requirements:
1. Use a professional, enthusiastic tone
2. Highlight relevant skills and experience
3. Show understanding of the company's needs
4. Keep it concise (max 400 words)
5. Use proper business letter formatting in markdown
6. Include specific examples of achievements
7. Relate the candidate's background to the job requirements

Format the letter in markdown.`,
		in.JobTitle, in.CompanyName,
		p.Industry, p.Experience, strings.Join(p.Skills, ", "), p.Bio,
		in.JobDescription)
}
