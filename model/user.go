package model

import "time"

// User represents a user row in the database. PasswordHash never crosses the
// API boundary; every response goes through UserResponse.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	Settings     UserSettings
	Stats        UserStats
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// UserSettings holds per-user preferences, stored as a JSON column.
type UserSettings struct {
	WorkoutsPrivate bool                 `json:"workouts_private"`
	Notifications   NotificationSettings `json:"notifications"`
	Preferences     Preferences          `json:"preferences"`
}

type NotificationSettings struct {
	WorkoutReminders bool `json:"workout_reminders"`
	Achievements     bool `json:"achievements"`
}

type Preferences struct {
	Theme    string `json:"theme"`
	Language string `json:"language"`
	Units    string `json:"units"`
}

// DefaultSettings returns the settings assigned to newly registered users.
func DefaultSettings() UserSettings {
	return UserSettings{
		Notifications: NotificationSettings{
			WorkoutReminders: true,
			Achievements:     true,
		},
		Preferences: Preferences{
			Theme:    "light",
			Language: "en",
			Units:    "metric",
		},
	}
}

// UserStats is the aggregate counters updated as workouts are logged.
// Stored as a JSON column alongside the user row.
type UserStats struct {
	TotalWorkouts  int     `json:"total_workouts"`
	TotalExercises int     `json:"total_exercises"`
	TotalSets      int     `json:"total_sets"`
	TotalWeight    float64 `json:"total_weight"`
	Streak         int     `json:"streak"`
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request. Identifier may be an email
// address or a username.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// RefreshRequest carries the refresh token presented in exchange for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenPair is an access/refresh token pair as returned by the auth endpoints.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserResponse represents user data safe for API responses (no credential fields).
type UserResponse struct {
	ID        int64         `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Settings  *UserSettings `json:"settings,omitempty"`
	Stats     *UserStats    `json:"stats,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	LastLogin *time.Time    `json:"last_login,omitempty"`
}

// AuthResponse is the body of successful register and login responses.
type AuthResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
	Tokens  TokenPair    `json:"tokens"`
}

// RefreshResponse is the body of a successful token refresh.
type RefreshResponse struct {
	Success bool      `json:"success"`
	Tokens  TokenPair `json:"tokens"`
}

// UpdateSettingsRequest carries a partial settings update. Nil fields are
// left untouched.
type UpdateSettingsRequest struct {
	WorkoutsPrivate *bool                 `json:"workouts_private"`
	Notifications   *NotificationSettings `json:"notifications"`
	Preferences     *Preferences          `json:"preferences"`
}
