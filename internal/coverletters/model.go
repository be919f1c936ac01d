package coverletters

import "time"

type Status string

const (
	StatusDraft     Status = "draft"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

type CoverLetter struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Content        string    `json:"content"`
	JobTitle       string    `json:"jobTitle"`
	CompanyName    string    `json:"companyName"`
	JobDescription string    `json:"jobDescription"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type GenerateInput struct {
	JobTitle       string `json:"jobTitle" validate:"required,max=200"`
	CompanyName    string `json:"companyName" validate:"required,max=200"`
	JobDescription string `json:"jobDescription" validate:"max=20000"`
}

type StatusInput struct {
	Status Status `json:"status" validate:"required,oneof=draft completed archived"`
}
