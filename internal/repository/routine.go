package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/repfit/repfit-go/model"
)

var ErrRoutineNotFound = errors.New("routine not found")

// RoutineRepository handles routine persistence. Days and planned exercises
// are JSON columns.
type RoutineRepository struct {
	db *sql.DB
}

// NewRoutineRepository creates a new RoutineRepository.
func NewRoutineRepository(db *sql.DB) *RoutineRepository {
	return &RoutineRepository{db: db}
}

const routineColumns = `id, user_id, name, description, days, exercises, created_at, updated_at`

// Create inserts a new routine and sets the generated ID.
func (r *RoutineRepository) Create(ctx context.Context, rt *model.Routine) error {
	days, err := json.Marshal(rt.Days)
	if err != nil {
		return err
	}
	exercises, err := json.Marshal(rt.Exercises)
	if err != nil {
		return err
	}

	query := `INSERT INTO routines (user_id, name, description, days, exercises)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, rt.UserID, rt.Name, rt.Description, days, exercises)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	rt.ID = id
	return nil
}

// GetByID retrieves a routine owned by userID.
func (r *RoutineRepository) GetByID(ctx context.Context, userID, id int64) (*model.Routine, error) {
	query := `SELECT ` + routineColumns + ` FROM routines WHERE id = ? AND user_id = ?`

	rt, err := scanRoutine(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	return rt, nil
}

// ListByUser retrieves all routines for a user, ordered by name.
func (r *RoutineRepository) ListByUser(ctx context.Context, userID int64) ([]model.Routine, error) {
	query := `SELECT ` + routineColumns + ` FROM routines WHERE user_id = ? ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routines []model.Routine
	for rows.Next() {
		rt, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		routines = append(routines, *rt)
	}

	return routines, rows.Err()
}

// Update replaces the mutable fields of a routine owned by userID.
func (r *RoutineRepository) Update(ctx context.Context, rt *model.Routine) error {
	days, err := json.Marshal(rt.Days)
	if err != nil {
		return err
	}
	exercises, err := json.Marshal(rt.Exercises)
	if err != nil {
		return err
	}

	query := `UPDATE routines SET name = ?, description = ?, days = ?, exercises = ?
		WHERE id = ? AND user_id = ?`

	_, err = r.db.ExecContext(ctx, query, rt.Name, rt.Description, days, exercises, rt.ID, rt.UserID)
	return err
}

// Delete removes a routine owned by userID.
func (r *RoutineRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM routines WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoutineNotFound
	}
	return nil
}

func scanRoutine(row rowScanner) (*model.Routine, error) {
	rt := &model.Routine{}
	var days, exercises []byte

	err := row.Scan(
		&rt.ID, &rt.UserID, &rt.Name, &rt.Description,
		&days, &exercises, &rt.CreatedAt, &rt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(days, &rt.Days); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(exercises, &rt.Exercises); err != nil {
		return nil, err
	}

	return rt, nil
}
