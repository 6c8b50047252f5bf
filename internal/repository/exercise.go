package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/repfit/repfit-go/model"
)

var ErrExerciseNotFound = errors.New("exercise not found")

// ExerciseRepository handles exercise catalog persistence.
type ExerciseRepository struct {
	db *sql.DB
}

// NewExerciseRepository creates a new ExerciseRepository.
func NewExerciseRepository(db *sql.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

const exerciseColumns = `id, name, type, category, equipment, difficulty, description, instructions, is_public, created_by, created_at, updated_at`

// Create inserts a new exercise and sets the generated ID.
func (r *ExerciseRepository) Create(ctx context.Context, ex *model.Exercise) error {
	instructions, err := json.Marshal(ex.Instructions)
	if err != nil {
		return err
	}

	query := `INSERT INTO exercises (name, type, category, equipment, difficulty, description, instructions, is_public, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		ex.Name, ex.Type, ex.Category, ex.Equipment, ex.Difficulty,
		ex.Description, instructions, ex.IsPublic, ex.CreatedBy,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	ex.ID = id
	return nil
}

// GetByID retrieves an exercise by its ID.
func (r *ExerciseRepository) GetByID(ctx context.Context, id int64) (*model.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE id = ?`

	ex, err := scanExercise(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return ex, nil
}

// List retrieves a page of exercises visible to userID: public exercises plus
// the user's own private ones, narrowed by the filter. The total count for
// the same filter is returned alongside.
func (r *ExerciseRepository) List(ctx context.Context, userID int64, filter model.ExerciseFilter, page model.Pagination) ([]model.Exercise, int, error) {
	where := `(is_public = TRUE OR created_by = ?)`
	args := []any{userID}

	if filter.Category != "" {
		where += ` AND category = ?`
		args = append(args, filter.Category)
	}
	if filter.Difficulty != "" {
		where += ` AND difficulty = ?`
		args = append(args, filter.Difficulty)
	}
	if filter.Equipment != "" {
		where += ` AND equipment LIKE ?`
		args = append(args, "%"+filter.Equipment+"%")
	}
	if filter.Search != "" {
		where += ` AND (name LIKE ? OR description LIKE ?)`
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM exercises WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM exercises WHERE %s ORDER BY name ASC LIMIT ? OFFSET ?`,
		exerciseColumns, where)
	args = append(args, page.Limit, (page.Page-1)*page.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var exercises []model.Exercise
	for rows.Next() {
		ex, err := scanExercise(rows)
		if err != nil {
			return nil, 0, err
		}
		exercises = append(exercises, *ex)
	}

	return exercises, total, rows.Err()
}

// Update replaces the mutable fields of an exercise.
func (r *ExerciseRepository) Update(ctx context.Context, ex *model.Exercise) error {
	instructions, err := json.Marshal(ex.Instructions)
	if err != nil {
		return err
	}

	query := `UPDATE exercises
		SET name = ?, type = ?, category = ?, equipment = ?, difficulty = ?,
			description = ?, instructions = ?, is_public = ?
		WHERE id = ?`

	_, err = r.db.ExecContext(ctx, query,
		ex.Name, ex.Type, ex.Category, ex.Equipment, ex.Difficulty,
		ex.Description, instructions, ex.IsPublic, ex.ID,
	)
	return err
}

// Delete removes an exercise by ID.
func (r *ExerciseRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

// Categories returns the distinct exercise categories visible to userID.
func (r *ExerciseRepository) Categories(ctx context.Context, userID int64) ([]string, error) {
	return r.distinct(ctx, `SELECT DISTINCT category FROM exercises
		WHERE (is_public = TRUE OR created_by = ?) AND category <> '' ORDER BY category`, userID)
}

// Equipment returns the distinct equipment types visible to userID.
func (r *ExerciseRepository) Equipment(ctx context.Context, userID int64) ([]string, error) {
	return r.distinct(ctx, `SELECT DISTINCT equipment FROM exercises
		WHERE (is_public = TRUE OR created_by = ?) AND equipment <> '' ORDER BY equipment`, userID)
}

func (r *ExerciseRepository) distinct(ctx context.Context, query string, userID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return values, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExercise(row rowScanner) (*model.Exercise, error) {
	ex := &model.Exercise{}
	var instructions []byte

	err := row.Scan(
		&ex.ID, &ex.Name, &ex.Type, &ex.Category, &ex.Equipment, &ex.Difficulty,
		&ex.Description, &instructions, &ex.IsPublic, &ex.CreatedBy,
		&ex.CreatedAt, &ex.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(instructions, &ex.Instructions); err != nil {
		return nil, err
	}

	return ex, nil
}
