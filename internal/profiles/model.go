package profiles

import "time"

type Profile struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	ImageURL   string    `json:"imageUrl"`
	Industry   string    `json:"industry"`
	Skills     []string  `json:"skills"`
	Experience int       `json:"experience"`
	Bio        string    `json:"bio"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type OnboardingInput struct {
	Name       string   `json:"name" validate:"required"`
	ImageURL   string   `json:"imageUrl" validate:"omitempty,url"`
	Industry   string   `json:"industry" validate:"required"`
	Skills     []string `json:"skills" validate:"min=1,dive,required"`
	Experience *int     `json:"experience" validate:"required,gte=0,lte=60"`
	Bio        string   `json:"bio" validate:"max=2000"`
}

type Status struct {
	IsOnboarded bool     `json:"isOnboarded"`
	Profile     *Profile `json:"profile"`
}
