package service

import (
	"context"
	"errors"
	"time"

	"github.com/repfit/repfit-go/model"
	"github.com/repfit/repfit-go/internal/repository"
)

// DashboardService derives the dashboard projection from the user's stats
// and recent workout log.
type DashboardService struct {
	users    *repository.UserRepository
	workouts *repository.WorkoutRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(users *repository.UserRepository, workouts *repository.WorkoutRepository) *DashboardService {
	return &DashboardService{users: users, workouts: workouts}
}

const (
	recentWorkoutCount = 5
	volumeWeeks        = 8
)

// Stats builds the dashboard projection for userID: the aggregate counters,
// the most recent workouts, and an 8-week volume series.
func (s *DashboardService) Stats(ctx context.Context, userID int64) (model.DashboardStats, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.DashboardStats{}, ErrUserNotFound
		}
		return model.DashboardStats{}, err
	}

	since := weekStart(time.Now().UTC()).AddDate(0, 0, -7*(volumeWeeks-1))
	workouts, err := s.workouts.ListSince(ctx, userID, since)
	if err != nil {
		return model.DashboardStats{}, err
	}

	return model.DashboardStats{
		TotalWorkouts:  user.Stats.TotalWorkouts,
		TotalExercises: user.Stats.TotalExercises,
		TotalSets:      user.Stats.TotalSets,
		TotalWeight:    user.Stats.TotalWeight,
		Streak:         user.Stats.Streak,
		RecentWorkouts: recentSummaries(workouts),
		WeeklyVolume:   weeklyVolume(workouts, since),
	}, nil
}

// recentSummaries returns the newest workouts, trimmed for the dashboard.
// Input is ordered oldest first.
func recentSummaries(workouts []model.Workout) []model.WorkoutSummary {
	summaries := make([]model.WorkoutSummary, 0, recentWorkoutCount)
	for i := len(workouts) - 1; i >= 0 && len(summaries) < recentWorkoutCount; i-- {
		w := workouts[i]
		sets := 0
		for _, ex := range w.Exercises {
			sets += len(ex.Sets)
		}
		summaries = append(summaries, model.WorkoutSummary{
			ID:       w.ID,
			Name:     w.Name,
			Date:     w.Date,
			Duration: w.Duration,
			Sets:     sets,
		})
	}
	return summaries
}

// weeklyVolume buckets workouts into calendar weeks starting at since.
// Empty weeks are kept so the chart has a continuous axis.
func weeklyVolume(workouts []model.Workout, since time.Time) []model.WeeklyVolume {
	series := make([]model.WeeklyVolume, volumeWeeks)
	for i := range series {
		series[i].WeekStart = since.AddDate(0, 0, 7*i)
	}

	for _, w := range workouts {
		idx := int(w.Date.UTC().Sub(since).Hours() / (24 * 7))
		if idx < 0 || idx >= volumeWeeks {
			continue
		}
		series[idx].Workouts++
		for _, ex := range w.Exercises {
			series[idx].Sets += len(ex.Sets)
			for _, set := range ex.Sets {
				series[idx].Weight += set.Weight * float64(set.Reps)
			}
		}
	}

	return series
}

// weekStart truncates t to the preceding Monday at 00:00 UTC.
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}
