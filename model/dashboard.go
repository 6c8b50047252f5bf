package model

import "time"

// DashboardStats is the stats projection served at /dashboard/stats.
type DashboardStats struct {
	TotalWorkouts  int              `json:"total_workouts"`
	TotalExercises int              `json:"total_exercises"`
	TotalSets      int              `json:"total_sets"`
	TotalWeight    float64          `json:"total_weight"`
	Streak         int              `json:"streak"`
	RecentWorkouts []WorkoutSummary `json:"recent_workouts"`
	WeeklyVolume   []WeeklyVolume   `json:"weekly_volume"`
}

// WorkoutSummary is the trimmed-down workout shown on the dashboard.
type WorkoutSummary struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`
	Duration int       `json:"duration"`
	Sets     int       `json:"sets"`
}

// WeeklyVolume is one point of the per-week volume series.
type WeeklyVolume struct {
	WeekStart time.Time `json:"week_start"`
	Workouts  int       `json:"workouts"`
	Sets      int       `json:"sets"`
	Weight    float64   `json:"weight"`
}
