package service

import (
	"context"
	"errors"
	"strings"

	"github.com/repfit/repfit-go/model"
	"github.com/repfit/repfit-go/internal/repository"
)

var (
	ErrExerciseNameRequired = errors.New("exercise name is required")
	ErrInvalidExerciseType  = errors.New("invalid exercise type")
	ErrInvalidDifficulty    = errors.New("invalid difficulty")
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrNotExerciseOwner     = errors.New("exercise can only be modified by its creator")
)

var exerciseTypes = map[string]bool{
	model.ExerciseTypeRepsOnly:   true,
	model.ExerciseTypeTimeOnly:   true,
	model.ExerciseTypeRepsWeight: true,
	model.ExerciseTypeRepsTime:   true,
}

var difficulties = map[string]bool{
	model.DifficultyBeginner:     true,
	model.DifficultyIntermediate: true,
	model.DifficultyAdvanced:     true,
}

// ExerciseService handles exercise catalog business logic.
type ExerciseService struct {
	repo *repository.ExerciseRepository
}

// NewExerciseService creates a new ExerciseService.
func NewExerciseService(repo *repository.ExerciseRepository) *ExerciseService {
	return &ExerciseService{repo: repo}
}

// Create adds a new exercise owned by userID. Exercises are public unless
// the request says otherwise.
func (s *ExerciseService) Create(ctx context.Context, userID int64, req model.ExerciseRequest) (model.ExerciseResponse, error) {
	ex, err := exerciseFromRequest(req)
	if err != nil {
		return model.ExerciseResponse{}, err
	}
	ex.CreatedBy = userID

	if err := s.repo.Create(ctx, ex); err != nil {
		return model.ExerciseResponse{}, err
	}

	return exerciseToResponse(ex), nil
}

// Get retrieves an exercise visible to userID.
func (s *ExerciseService) Get(ctx context.Context, userID, exerciseID int64) (model.ExerciseResponse, error) {
	ex, err := s.getVisible(ctx, userID, exerciseID)
	if err != nil {
		return model.ExerciseResponse{}, err
	}
	return exerciseToResponse(ex), nil
}

// List returns a filtered, paginated view of the catalog visible to userID.
func (s *ExerciseService) List(ctx context.Context, userID int64, filter model.ExerciseFilter, page model.Pagination) ([]model.ExerciseResponse, model.PageInfo, error) {
	page = normalizePage(page)

	exercises, total, err := s.repo.List(ctx, userID, filter, page)
	if err != nil {
		return nil, model.PageInfo{}, err
	}

	responses := make([]model.ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = exerciseToResponse(&exercises[i])
	}

	return responses, pageInfo(page, total), nil
}

// Update modifies an exercise. Only the creator may update it.
func (s *ExerciseService) Update(ctx context.Context, userID, exerciseID int64, req model.ExerciseRequest) (model.ExerciseResponse, error) {
	existing, err := s.repo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrExerciseNotFound) {
			return model.ExerciseResponse{}, ErrExerciseNotFound
		}
		return model.ExerciseResponse{}, err
	}
	if existing.CreatedBy != userID {
		return model.ExerciseResponse{}, ErrNotExerciseOwner
	}

	ex, err := exerciseFromRequest(req)
	if err != nil {
		return model.ExerciseResponse{}, err
	}
	ex.ID = existing.ID
	ex.CreatedBy = existing.CreatedBy
	ex.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, ex); err != nil {
		return model.ExerciseResponse{}, err
	}

	return exerciseToResponse(ex), nil
}

// Delete removes an exercise. Only the creator may delete it.
func (s *ExerciseService) Delete(ctx context.Context, userID, exerciseID int64) error {
	existing, err := s.repo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrExerciseNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	if existing.CreatedBy != userID {
		return ErrNotExerciseOwner
	}

	err = s.repo.Delete(ctx, exerciseID)
	if errors.Is(err, repository.ErrExerciseNotFound) {
		return ErrExerciseNotFound
	}
	return err
}

// Categories lists the distinct categories visible to userID.
func (s *ExerciseService) Categories(ctx context.Context, userID int64) ([]string, error) {
	return s.repo.Categories(ctx, userID)
}

// Equipment lists the distinct equipment types visible to userID.
func (s *ExerciseService) Equipment(ctx context.Context, userID int64) ([]string, error) {
	return s.repo.Equipment(ctx, userID)
}

func (s *ExerciseService) getVisible(ctx context.Context, userID, exerciseID int64) (*model.Exercise, error) {
	ex, err := s.repo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrExerciseNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	// Private exercises are indistinguishable from missing ones to non-owners.
	if !ex.IsPublic && ex.CreatedBy != userID {
		return nil, ErrExerciseNotFound
	}
	return ex, nil
}

func exerciseFromRequest(req model.ExerciseRequest) (*model.Exercise, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrExerciseNameRequired
	}
	if !exerciseTypes[req.Type] {
		return nil, ErrInvalidExerciseType
	}
	if req.Difficulty != "" && !difficulties[req.Difficulty] {
		return nil, ErrInvalidDifficulty
	}

	instructions := req.Instructions
	if instructions == nil {
		instructions = []string{}
	}

	return &model.Exercise{
		Name:         name,
		Type:         req.Type,
		Category:     strings.TrimSpace(req.Category),
		Equipment:    strings.TrimSpace(req.Equipment),
		Difficulty:   req.Difficulty,
		Description:  req.Description,
		Instructions: instructions,
		IsPublic:     boolOrDefault(req.IsPublic, true),
	}, nil
}

func exerciseToResponse(ex *model.Exercise) model.ExerciseResponse {
	return model.ExerciseResponse{
		ID:           ex.ID,
		Name:         ex.Name,
		Type:         ex.Type,
		Category:     ex.Category,
		Equipment:    ex.Equipment,
		Difficulty:   ex.Difficulty,
		Description:  ex.Description,
		Instructions: ex.Instructions,
		IsPublic:     ex.IsPublic,
		CreatedBy:    ex.CreatedBy,
		CreatedAt:    ex.CreatedAt,
		UpdatedAt:    ex.UpdatedAt,
	}
}

func normalizePage(page model.Pagination) model.Pagination {
	if page.Page < 1 {
		page.Page = 1
	}
	if page.Limit < 1 || page.Limit > 100 {
		page.Limit = 20
	}
	return page
}

func pageInfo(page model.Pagination, total int) model.PageInfo {
	pages := total / page.Limit
	if total%page.Limit != 0 {
		pages++
	}
	return model.PageInfo{
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
		Pages: pages,
	}
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
