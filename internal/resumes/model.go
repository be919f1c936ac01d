package resumes

import "time"

// PendingFeedback marks a resume whose ATS review has not run since the last save.
const PendingFeedback = "Not generated Yet"

// Resume is a user's single resume. SourceFileKey is set when the content came
// from an archived upload.
type Resume struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Content       string    `json:"content"`
	ATSScore      float64   `json:"atsScore"`
	Feedback      []string  `json:"feedback"`
	SourceFileKey string    `json:"sourceFileKey,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type SaveInput struct {
	Content string `json:"content" validate:"min=10"`
}

type ImproveInput struct {
	Current string `json:"current" validate:"required"`
	Type    string `json:"type" validate:"required,max=40"`
}

// ATSFeedback is the provider's review of a resume.
type ATSFeedback struct {
	ATSScore float64  `json:"atsScore"`
	Feedback []string `json:"feedback"`
}
