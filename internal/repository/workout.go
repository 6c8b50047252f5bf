package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/repfit/repfit-go/model"
)

var ErrWorkoutNotFound = errors.New("workout not found")

// WorkoutRepository handles workout log persistence. The performed exercises
// of a workout live in a JSON column; every read and write covers the whole
// row, so no multi-row transactions are needed.
type WorkoutRepository struct {
	db *sql.DB
}

// NewWorkoutRepository creates a new WorkoutRepository.
func NewWorkoutRepository(db *sql.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

const workoutColumns = `id, user_id, name, notes, date, duration, exercises, created_at, updated_at`

// Create inserts a new workout and sets the generated ID.
func (r *WorkoutRepository) Create(ctx context.Context, w *model.Workout) error {
	exercises, err := json.Marshal(w.Exercises)
	if err != nil {
		return err
	}

	query := `INSERT INTO workouts (user_id, name, notes, date, duration, exercises)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, w.UserID, w.Name, w.Notes, w.Date, w.Duration, exercises)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	w.ID = id
	return nil
}

// GetByID retrieves a workout owned by userID.
func (r *WorkoutRepository) GetByID(ctx context.Context, userID, id int64) (*model.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE id = ? AND user_id = ?`

	w, err := scanWorkout(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return w, nil
}

// ListByUser retrieves a page of the user's workouts, most recent first.
// The total workout count for the user is returned alongside.
func (r *WorkoutRepository) ListByUser(ctx context.Context, userID int64, page model.Pagination) ([]model.Workout, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workouts WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + workoutColumns + ` FROM workouts
		WHERE user_id = ? ORDER BY date DESC, id DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, userID, page.Limit, (page.Page-1)*page.Limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	workouts, err := collectWorkouts(rows)
	if err != nil {
		return nil, 0, err
	}
	return workouts, total, nil
}

// ListSince retrieves the user's workouts dated at or after the given time,
// oldest first. Used for streak and weekly volume derivation.
func (r *WorkoutRepository) ListSince(ctx context.Context, userID int64, since time.Time) ([]model.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts
		WHERE user_id = ? AND date >= ? ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectWorkouts(rows)
}

// Update replaces the mutable fields of a workout owned by userID.
func (r *WorkoutRepository) Update(ctx context.Context, w *model.Workout) error {
	exercises, err := json.Marshal(w.Exercises)
	if err != nil {
		return err
	}

	query := `UPDATE workouts SET name = ?, notes = ?, date = ?, duration = ?, exercises = ?
		WHERE id = ? AND user_id = ?`

	_, err = r.db.ExecContext(ctx, query, w.Name, w.Notes, w.Date, w.Duration, exercises, w.ID, w.UserID)
	return err
}

// Delete removes a workout owned by userID.
func (r *WorkoutRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM workouts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

func collectWorkouts(rows *sql.Rows) ([]model.Workout, error) {
	var workouts []model.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *w)
	}
	return workouts, rows.Err()
}

func scanWorkout(row rowScanner) (*model.Workout, error) {
	w := &model.Workout{}
	var exercises []byte

	err := row.Scan(
		&w.ID, &w.UserID, &w.Name, &w.Notes, &w.Date, &w.Duration,
		&exercises, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(exercises, &w.Exercises); err != nil {
		return nil, err
	}

	return w, nil
}
