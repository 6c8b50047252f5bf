package model

import "time"

// Exercise types determine which set fields are meaningful.
const (
	ExerciseTypeRepsOnly   = "reps-only"
	ExerciseTypeTimeOnly   = "time-only"
	ExerciseTypeRepsWeight = "reps-weight"
	ExerciseTypeRepsTime   = "reps-time"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Exercise represents a catalog exercise. Public exercises are visible to
// everyone; private ones only to their creator.
type Exercise struct {
	ID           int64
	Name         string
	Type         string
	Category     string
	Equipment    string
	Difficulty   string
	Description  string
	Instructions []string
	IsPublic     bool
	CreatedBy    int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ExerciseRequest represents an exercise create or update payload.
type ExerciseRequest struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Category     string   `json:"category"`
	Equipment    string   `json:"equipment"`
	Difficulty   string   `json:"difficulty"`
	Description  string   `json:"description"`
	Instructions []string `json:"instructions"`
	IsPublic     *bool    `json:"is_public"`
}

// ExerciseResponse represents an exercise in API responses.
type ExerciseResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Category     string    `json:"category"`
	Equipment    string    `json:"equipment"`
	Difficulty   string    `json:"difficulty"`
	Description  string    `json:"description"`
	Instructions []string  `json:"instructions"`
	IsPublic     bool      `json:"is_public"`
	CreatedBy    int64     `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ExerciseFilter narrows exercise listings.
type ExerciseFilter struct {
	Category   string
	Difficulty string
	Equipment  string
	Search     string
}

// Pagination is the page/limit pair shared by list endpoints.
type Pagination struct {
	Page  int
	Limit int
}

// PageInfo describes the page of results actually returned.
type PageInfo struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ExerciseListResponse is a page of exercises.
type ExerciseListResponse struct {
	Success    bool               `json:"success"`
	Exercises  []ExerciseResponse `json:"exercises"`
	Pagination PageInfo           `json:"pagination"`
}
