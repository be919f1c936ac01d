package assessments

import "time"

// QuizLength is how many questions a generated quiz asks for.
const QuizLength = 10

type Category string

const (
	CategoryTechnical  Category = "Technical"
	CategoryBehavioral Category = "Behavioral"
	CategoryOther      Category = "Other"
)

// Question is one generated multiple-choice question as sent to the client.
type Question struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
	Explanation   string   `json:"explanation"`
}

// QuestionResult is a graded question as stored on an assessment.
type QuestionResult struct {
	Question    string   `json:"question"`
	Options     []string `json:"options,omitempty"`
	Answer      string   `json:"answer"`
	UserAnswer  string   `json:"userAnswer"`
	IsCorrect   bool     `json:"isCorrect"`
	Explanation string   `json:"explanation"`
}

type Assessment struct {
	ID             string           `json:"id"`
	UserID         string           `json:"userId"`
	QuizScore      float64          `json:"quizScore"`
	Questions      []QuestionResult `json:"questions"`
	Category       Category         `json:"category"`
	ImprovementTip *string          `json:"improvementTip"`
	CreatedAt      time.Time        `json:"createdAt"`
}

type SaveInput struct {
	Questions []Question `json:"questions" validate:"min=1,dive"`
	Answers   []string   `json:"answers"`
	Score     *float64   `json:"score" validate:"required,gte=0,lte=100"`
}
