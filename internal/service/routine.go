package service

import (
	"context"
	"errors"
	"strings"

	"github.com/repfit/repfit-go/model"
	"github.com/repfit/repfit-go/internal/repository"
)

var (
	ErrRoutineNameRequired = errors.New("routine name is required")
	ErrInvalidRoutineDay   = errors.New("invalid routine day")
	ErrRoutineNotFound     = errors.New("routine not found")
)

var weekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// RoutineService handles routine business logic.
type RoutineService struct {
	repo *repository.RoutineRepository
}

// NewRoutineService creates a new RoutineService.
func NewRoutineService(repo *repository.RoutineRepository) *RoutineService {
	return &RoutineService{repo: repo}
}

// Create adds a new routine owned by userID.
func (s *RoutineService) Create(ctx context.Context, userID int64, req model.RoutineRequest) (model.RoutineResponse, error) {
	rt, err := routineFromRequest(req)
	if err != nil {
		return model.RoutineResponse{}, err
	}
	rt.UserID = userID

	if err := s.repo.Create(ctx, rt); err != nil {
		return model.RoutineResponse{}, err
	}

	return routineToResponse(rt), nil
}

// Get retrieves a routine owned by userID.
func (s *RoutineService) Get(ctx context.Context, userID, routineID int64) (model.RoutineResponse, error) {
	rt, err := s.repo.GetByID(ctx, userID, routineID)
	if err != nil {
		if errors.Is(err, repository.ErrRoutineNotFound) {
			return model.RoutineResponse{}, ErrRoutineNotFound
		}
		return model.RoutineResponse{}, err
	}
	return routineToResponse(rt), nil
}

// List returns all routines owned by userID.
func (s *RoutineService) List(ctx context.Context, userID int64) ([]model.RoutineResponse, error) {
	routines, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]model.RoutineResponse, len(routines))
	for i := range routines {
		responses[i] = routineToResponse(&routines[i])
	}
	return responses, nil
}

// Update modifies a routine owned by userID.
func (s *RoutineService) Update(ctx context.Context, userID, routineID int64, req model.RoutineRequest) (model.RoutineResponse, error) {
	existing, err := s.repo.GetByID(ctx, userID, routineID)
	if err != nil {
		if errors.Is(err, repository.ErrRoutineNotFound) {
			return model.RoutineResponse{}, ErrRoutineNotFound
		}
		return model.RoutineResponse{}, err
	}

	rt, err := routineFromRequest(req)
	if err != nil {
		return model.RoutineResponse{}, err
	}
	rt.ID = existing.ID
	rt.UserID = userID
	rt.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, rt); err != nil {
		return model.RoutineResponse{}, err
	}

	return routineToResponse(rt), nil
}

// Delete removes a routine owned by userID.
func (s *RoutineService) Delete(ctx context.Context, userID, routineID int64) error {
	err := s.repo.Delete(ctx, userID, routineID)
	if errors.Is(err, repository.ErrRoutineNotFound) {
		return ErrRoutineNotFound
	}
	return err
}

func routineFromRequest(req model.RoutineRequest) (*model.Routine, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrRoutineNameRequired
	}

	days := make([]string, 0, len(req.Days))
	for _, d := range req.Days {
		d = strings.ToLower(strings.TrimSpace(d))
		if !weekdays[d] {
			return nil, ErrInvalidRoutineDay
		}
		days = append(days, d)
	}

	exercises := req.Exercises
	if exercises == nil {
		exercises = []model.RoutineExercise{}
	}

	return &model.Routine{
		Name:        name,
		Description: req.Description,
		Days:        days,
		Exercises:   exercises,
	}, nil
}

func routineToResponse(rt *model.Routine) model.RoutineResponse {
	return model.RoutineResponse{
		ID:          rt.ID,
		Name:        rt.Name,
		Description: rt.Description,
		Days:        rt.Days,
		Exercises:   rt.Exercises,
		CreatedAt:   rt.CreatedAt,
		UpdatedAt:   rt.UpdatedAt,
	}
}
