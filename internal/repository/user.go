package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/repfit/repfit-go/model"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("email or username already exists")
)

// UserRepository handles user persistence operations. The users table carries
// unique indexes on email and username; settings and stats are JSON columns.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, is_active, settings, stats, created_at, last_login`

// Create inserts a new user and sets the generated ID on the user struct.
// Uniqueness of email and username is enforced by the database; either
// conflict surfaces as ErrDuplicateUser.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	settings, err := json.Marshal(user.Settings)
	if err != nil {
		return err
	}
	stats, err := json.Marshal(user.Stats)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (username, email, password_hash, is_active, settings, stats)
		VALUES (?, ?, ?, TRUE, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, user.Username, user.Email, user.PasswordHash, settings, stats)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateUser
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	user.IsActive = true
	return nil
}

// GetByEmail retrieves a user by exact email match. Callers are expected to
// normalize the email (trim + lowercase) the same way registration does.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

// GetByUsername retrieves a user by exact, case-sensitive username match.
// The username column is declared COLLATE utf8mb4_bin, so both this lookup
// and the unique index are case-sensitive.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	var settings, stats []byte
	var lastLogin sql.NullTime

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.IsActive, &settings, &stats, &user.CreatedAt, &lastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(settings, &user.Settings); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(stats, &user.Stats); err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}

	return user, nil
}

// UpdateLastLogin stamps the user's last successful login time.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = ? WHERE id = ?`, at, id)
	return err
}

// UpdateSettings replaces the user's settings JSON.
func (r *UserRepository) UpdateSettings(ctx context.Context, id int64, settings model.UserSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	// RowsAffected is not checked: MySQL reports zero changed rows when the
	// new JSON equals the old one.
	_, err = r.db.ExecContext(ctx, `UPDATE users SET settings = ? WHERE id = ?`, data, id)
	return err
}

// UpdateStats replaces the user's stats JSON.
func (r *UserRepository) UpdateStats(ctx context.Context, id int64, stats model.UserStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `UPDATE users SET stats = ? WHERE id = ?`, data, id)
	return err
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
