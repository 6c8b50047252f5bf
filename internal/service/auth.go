package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/repfit/repfit-go/internal/crypto"
	"github.com/repfit/repfit-go/model"
	"github.com/repfit/repfit-go/internal/repository"
	"github.com/repfit/repfit-go/internal/token"
)

var (
	// ErrInvalidCredentials is deliberately the same for an unknown identifier
	// and a wrong password, so login failures cannot be used to enumerate users.
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrDuplicateUser       = errors.New("email or username already registered")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrUserNotFound        = errors.New("user not found")

	ErrFieldsRequired  = errors.New("username, email and password are required")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidUsername = errors.New("username must be 3-20 characters of letters, numbers and underscores")
	ErrWeakPassword    = errors.New("password must be at least 8 characters with an uppercase letter, a lowercase letter and a digit")
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
)

// dummyHash is what login compares against when the identifier resolves to
// no user. Generated at the real cost so the comparison takes as long as a
// genuine one.
var dummyHash = func() string {
	hash, err := crypto.HashPassword("repfit-placeholder-credential", crypto.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
}()

// UserStore is the credential-store surface the auth flow needs. Satisfied
// by *repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	UpdateSettings(ctx context.Context, id int64, settings model.UserSettings) error
}

// AuthService orchestrates the credential store and the token issuer into the
// register/login/refresh/me flow.
type AuthService struct {
	repo            UserStore
	issuer          *token.Issuer
	refreshVerifier *token.Verifier
	bcryptCost      int
}

// NewAuthService creates a new AuthService. The refresh verifier must be
// built from the refresh secret, never the access secret.
func NewAuthService(repo UserStore, issuer *token.Issuer, refreshVerifier *token.Verifier, bcryptCost int) *AuthService {
	return &AuthService{
		repo:            repo,
		issuer:          issuer,
		refreshVerifier: refreshVerifier,
		bcryptCost:      bcryptCost,
	}
}

// Register validates the request, creates the user and issues a token pair.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if username == "" || email == "" || req.Password == "" {
		return model.AuthResponse{}, ErrFieldsRequired
	}
	if !emailPattern.MatchString(email) {
		return model.AuthResponse{}, ErrInvalidEmail
	}
	if !usernamePattern.MatchString(username) {
		return model.AuthResponse{}, ErrInvalidUsername
	}
	if err := validatePassword(req.Password); err != nil {
		return model.AuthResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Settings:     model.DefaultSettings(),
	}
	user.CreatedAt = time.Now().UTC()

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return model.AuthResponse{}, ErrDuplicateUser
		}
		return model.AuthResponse{}, err
	}

	pair, err := s.issuer.Issue(user.ID)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		Success: true,
		User: model.UserResponse{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
		Tokens: model.TokenPair{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		},
	}, nil
}

// Login resolves the identifier (email first, then username), verifies the
// password, stamps last-login and issues a fresh token pair. All failure
// paths return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" || req.Password == "" {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, strings.ToLower(identifier))
	if errors.Is(err, repository.ErrUserNotFound) {
		user, err = s.repo.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Burn a bcrypt comparison anyway so an unknown identifier is not
			// measurably faster to reject than a wrong password.
			crypto.VerifyPassword(req.Password, dummyHash)
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return model.AuthResponse{}, err
	}

	pair, err := s.issuer.Issue(user.ID)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		Success: true,
		User: model.UserResponse{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
			LastLogin: &now,
		},
		Tokens: model.TokenPair{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		},
	}, nil
}

// Refresh exchanges a valid refresh token for a brand-new pair. The old
// refresh token is not tracked after rotation; it stays formally valid until
// its own expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.RefreshResponse, error) {
	claims, err := s.refreshVerifier.Verify(refreshToken)
	if err != nil {
		return model.RefreshResponse{}, ErrInvalidRefreshToken
	}

	pair, err := s.issuer.Issue(claims.UserID)
	if err != nil {
		return model.RefreshResponse{}, err
	}

	return model.RefreshResponse{
		Success: true,
		Tokens: model.TokenPair{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		},
	}, nil
}

// CurrentUser loads the full projection for the authenticated user.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (model.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	settings := user.Settings
	stats := user.Stats
	return model.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Settings:  &settings,
		Stats:     &stats,
		CreatedAt: user.CreatedAt,
		LastLogin: user.LastLogin,
	}, nil
}

// UpdateSettings applies a partial settings update and returns the result.
func (s *AuthService) UpdateSettings(ctx context.Context, userID int64, req model.UpdateSettingsRequest) (model.UserSettings, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserSettings{}, ErrUserNotFound
		}
		return model.UserSettings{}, err
	}

	settings := user.Settings
	if req.WorkoutsPrivate != nil {
		settings.WorkoutsPrivate = *req.WorkoutsPrivate
	}
	if req.Notifications != nil {
		settings.Notifications = *req.Notifications
	}
	if req.Preferences != nil {
		settings.Preferences = *req.Preferences
	}

	if err := s.repo.UpdateSettings(ctx, userID, settings); err != nil {
		return model.UserSettings{}, err
	}

	return settings, nil
}

// validatePassword enforces the minimum password policy: at least 8
// characters with an uppercase letter, a lowercase letter and a digit.
func validatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return ErrWeakPassword
	}
	return nil
}
