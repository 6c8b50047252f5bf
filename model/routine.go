package model

import "time"

// Routine is a named exercise plan with a weekday schedule.
type Routine struct {
	ID          int64
	UserID      int64
	Name        string
	Description string
	Days        []string // "monday" .. "sunday"
	Exercises   []RoutineExercise
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoutineExercise is a planned exercise slot within a routine.
type RoutineExercise struct {
	ExerciseID   int64   `json:"exercise_id"`
	ExerciseName string  `json:"exercise_name"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps,omitempty"`
	Weight       float64 `json:"weight,omitempty"`
	Seconds      int     `json:"seconds,omitempty"`
}

// RoutineRequest represents a routine create or update payload.
type RoutineRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Days        []string          `json:"days"`
	Exercises   []RoutineExercise `json:"exercises"`
}

// RoutineResponse represents a routine in API responses.
type RoutineResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Days        []string          `json:"days"`
	Exercises   []RoutineExercise `json:"exercises"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
