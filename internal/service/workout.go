package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/repfit/repfit-go/model"
	"github.com/repfit/repfit-go/internal/repository"
)

var (
	ErrWorkoutExercisesRequired = errors.New("a workout needs at least one exercise")
	ErrWorkoutNotFound          = errors.New("workout not found")
)

// WorkoutService handles workout log business logic. Logging a workout also
// bumps the owner's aggregate stats and recomputes the daily streak.
type WorkoutService struct {
	repo  *repository.WorkoutRepository
	users *repository.UserRepository
}

// NewWorkoutService creates a new WorkoutService.
func NewWorkoutService(repo *repository.WorkoutRepository, users *repository.UserRepository) *WorkoutService {
	return &WorkoutService{repo: repo, users: users}
}

// Create logs a new workout for userID and updates the user's stats.
func (s *WorkoutService) Create(ctx context.Context, userID int64, req model.WorkoutRequest) (model.WorkoutResponse, error) {
	if len(req.Exercises) == 0 {
		return model.WorkoutResponse{}, ErrWorkoutExercisesRequired
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	w := &model.Workout{
		UserID:    userID,
		Name:      req.Name,
		Notes:     req.Notes,
		Date:      date,
		Duration:  req.Duration,
		Exercises: req.Exercises,
	}

	if err := s.repo.Create(ctx, w); err != nil {
		return model.WorkoutResponse{}, err
	}
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now

	// Stats are a derived projection; a failed update must not fail the log.
	if err := s.applyStats(ctx, userID, w); err != nil {
		slog.Warn("stats update failed after workout create", "user_id", userID, "workout_id", w.ID, "error", err)
	}

	return workoutToResponse(w), nil
}

// Get retrieves a workout owned by userID.
func (s *WorkoutService) Get(ctx context.Context, userID, workoutID int64) (model.WorkoutResponse, error) {
	w, err := s.repo.GetByID(ctx, userID, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrWorkoutNotFound) {
			return model.WorkoutResponse{}, ErrWorkoutNotFound
		}
		return model.WorkoutResponse{}, err
	}
	return workoutToResponse(w), nil
}

// List returns a page of the user's workouts, most recent first.
func (s *WorkoutService) List(ctx context.Context, userID int64, page model.Pagination) ([]model.WorkoutResponse, model.PageInfo, error) {
	page = normalizePage(page)

	workouts, total, err := s.repo.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, model.PageInfo{}, err
	}

	responses := make([]model.WorkoutResponse, len(workouts))
	for i := range workouts {
		responses[i] = workoutToResponse(&workouts[i])
	}

	return responses, pageInfo(page, total), nil
}

// Update modifies a workout owned by userID. Stats are not re-derived on
// edit; only logging a new workout moves the counters.
func (s *WorkoutService) Update(ctx context.Context, userID, workoutID int64, req model.WorkoutRequest) (model.WorkoutResponse, error) {
	if len(req.Exercises) == 0 {
		return model.WorkoutResponse{}, ErrWorkoutExercisesRequired
	}

	existing, err := s.repo.GetByID(ctx, userID, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrWorkoutNotFound) {
			return model.WorkoutResponse{}, ErrWorkoutNotFound
		}
		return model.WorkoutResponse{}, err
	}

	w := &model.Workout{
		ID:        existing.ID,
		UserID:    userID,
		Name:      req.Name,
		Notes:     req.Notes,
		Date:      req.Date,
		Duration:  req.Duration,
		Exercises: req.Exercises,
		CreatedAt: existing.CreatedAt,
	}
	if w.Date.IsZero() {
		w.Date = existing.Date
	}

	if err := s.repo.Update(ctx, w); err != nil {
		return model.WorkoutResponse{}, err
	}
	w.UpdatedAt = time.Now().UTC()

	return workoutToResponse(w), nil
}

// Delete removes a workout owned by userID.
func (s *WorkoutService) Delete(ctx context.Context, userID, workoutID int64) error {
	err := s.repo.Delete(ctx, userID, workoutID)
	if errors.Is(err, repository.ErrWorkoutNotFound) {
		return ErrWorkoutNotFound
	}
	return err
}

// applyStats folds a freshly logged workout into the user's aggregate counters.
func (s *WorkoutService) applyStats(ctx context.Context, userID int64, w *model.Workout) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	stats := user.Stats
	stats.TotalWorkouts++
	stats.TotalExercises += len(w.Exercises)
	for _, ex := range w.Exercises {
		stats.TotalSets += len(ex.Sets)
		for _, set := range ex.Sets {
			stats.TotalWeight += set.Weight * float64(set.Reps)
		}
	}

	streak, err := s.currentStreak(ctx, userID)
	if err != nil {
		return err
	}
	stats.Streak = streak

	return s.users.UpdateStats(ctx, userID, stats)
}

// currentStreak counts consecutive calendar days with at least one workout,
// ending today (UTC).
func (s *WorkoutService) currentStreak(ctx context.Context, userID int64) (int, error) {
	const lookback = 90 * 24 * time.Hour

	workouts, err := s.repo.ListSince(ctx, userID, time.Now().UTC().Add(-lookback))
	if err != nil {
		return 0, err
	}

	days := make(map[string]bool, len(workouts))
	for _, w := range workouts {
		days[w.Date.UTC().Format("2006-01-02")] = true
	}

	streak := 0
	day := time.Now().UTC()
	for days[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak, nil
}

func workoutToResponse(w *model.Workout) model.WorkoutResponse {
	return model.WorkoutResponse{
		ID:        w.ID,
		Name:      w.Name,
		Notes:     w.Notes,
		Date:      w.Date,
		Duration:  w.Duration,
		Exercises: w.Exercises,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
