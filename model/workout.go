package model

import "time"

// Workout represents a logged training session. The performed exercises are
// stored as a JSON column; a workout is always read and written whole.
type Workout struct {
	ID        int64
	UserID    int64
	Name      string
	Notes     string
	Date      time.Time
	Duration  int // minutes
	Exercises []WorkoutExercise
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkoutExercise is one exercise performed within a workout.
type WorkoutExercise struct {
	ExerciseID   int64        `json:"exercise_id"`
	ExerciseName string       `json:"exercise_name"`
	Sets         []WorkoutSet `json:"sets"`
}

// WorkoutSet is a single set. Which fields are populated depends on the
// exercise type (reps-only, time-only, reps-weight, reps-time).
type WorkoutSet struct {
	Reps    int     `json:"reps,omitempty"`
	Weight  float64 `json:"weight,omitempty"`
	Seconds int     `json:"seconds,omitempty"`
}

// WorkoutRequest represents a workout create or update payload.
type WorkoutRequest struct {
	Name      string            `json:"name"`
	Notes     string            `json:"notes"`
	Date      time.Time         `json:"date"`
	Duration  int               `json:"duration"`
	Exercises []WorkoutExercise `json:"exercises"`
}

// WorkoutResponse represents a workout in API responses.
type WorkoutResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Notes     string            `json:"notes,omitempty"`
	Date      time.Time         `json:"date"`
	Duration  int               `json:"duration"`
	Exercises []WorkoutExercise `json:"exercises"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// WorkoutListResponse is a page of workouts, most recent first.
type WorkoutListResponse struct {
	Success    bool              `json:"success"`
	Workouts   []WorkoutResponse `json:"workouts"`
	Pagination PageInfo          `json:"pagination"`
}
