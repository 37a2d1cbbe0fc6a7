package domain

import "time"

// Education is a single education entry on a student profile
type Education struct {
	School    string `json:"school"`
	Degree    string `json:"degree,omitempty"`
	Field     string `json:"field,omitempty"`
	StartYear int    `json:"start_year,omitempty"`
	EndYear   int    `json:"end_year,omitempty"`
}

// StudentProfile is owned by a student-role user, one-to-one with a User.
// Skills are a case-sensitive string set used only for backend match
// scoring.
type StudentProfile struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	FirstName       string      `json:"first_name,omitempty"`
	LastName        string      `json:"last_name,omitempty"`
	Skills          []string    `json:"skills"`
	CVURL           string      `json:"cv_url,omitempty"`
	Bio             string      `json:"bio,omitempty"`
	ExperienceLevel JobType     `json:"experience_level,omitempty"`
	Education       []Education `json:"education,omitempty"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
