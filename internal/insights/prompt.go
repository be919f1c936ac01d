package insights

import (
	"fmt"

	"career-backend/internal/llm"
)

func buildPrompt(industry string) string {
	return fmt.Sprintf(`Analyze the current state of the %s industry and return insights as JSON only, with no notes or explanations, in exactly this shape:
{
  "salaryRanges": [
    { "role": "string", "min": number, "max": number, "median": number, "location": "string" }
  ],
  "growthRate": number,
  "demandLevel": "High" | "Medium" | "Low",
  "topSkills": ["skill1", "skill2"],
  "marketOutlook": "Positive" | "Neutral" | "Negative",
  "keyTrends": ["trend1", "trend2"],
  "recommendedSkills": ["skill1", "skill2"]
}
Include at least 5 common roles in salaryRanges. growthRate is a percentage. Include at least 5 top skills and 5 key trends.`, industry)
}

type generatedInsight struct {
	SalaryRanges      []SalaryRange `json:"salaryRanges"`
	GrowthRate        float64       `json:"growthRate"`
	DemandLevel       string        `json:"demandLevel"`
	TopSkills         []string      `json:"topSkills"`
	MarketOutlook     string        `json:"marketOutlook"`
	KeyTrends         []string      `json:"keyTrends"`
	RecommendedSkills []string      `json:"recommendedSkills"`
}

var insightSchema = llm.MustSchema(`{
  "type": "object",
  "required": ["salaryRanges", "growthRate", "demandLevel", "topSkills", "marketOutlook", "keyTrends", "recommendedSkills"],
  "properties": {
    "salaryRanges": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["role", "min", "max", "median", "location"],
        "properties": {
          "role": {"type": "string", "minLength": 1},
          "min": {"type": "number"},
          "max": {"type": "number"},
          "median": {"type": "number"},
          "location": {"type": "string"}
        }
      }
    },
    "growthRate": {"type": "number"},
    "demandLevel": {"enum": ["High", "Medium", "Low"]},
    "topSkills": {"type": "array", "items": {"type": "string"}},
    "marketOutlook": {"enum": ["Positive", "Neutral", "Negative"]},
    "keyTrends": {"type": "array", "items": {"type": "string"}},
    "recommendedSkills": {"type": "array", "items": {"type": "string"}}
  }
}`)
