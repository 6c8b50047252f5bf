package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/repfit/repfit-go/internal/middleware"
	"github.com/repfit/repfit-go/model"
	"github.com/repfit/repfit-go/internal/service"
)

// ExerciseHandler handles HTTP requests for the exercise catalog.
type ExerciseHandler struct {
	service *service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(svc *service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{service: svc}
}

// HandleCreate handles POST /api/v1/exercises requests.
func (h *ExerciseHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.ExerciseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		if isExerciseValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"exercise": resp,
	})
}

// HandleGet handles GET /api/v1/exercises/{exercise_id} requests.
func (h *ExerciseHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := pathID(w, r, "exercise_id")
	if !ok {
		return
	}

	resp, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"exercise": resp,
	})
}

// HandleList handles GET /api/v1/exercises requests with filter and
// pagination query parameters.
func (h *ExerciseHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q := r.URL.Query()
	filter := model.ExerciseFilter{
		Category:   q.Get("category"),
		Difficulty: q.Get("difficulty"),
		Equipment:  q.Get("equipment"),
		Search:     q.Get("search"),
	}

	exercises, page, err := h.service.List(r.Context(), userID, filter, queryPage(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if exercises == nil {
		exercises = []model.ExerciseResponse{}
	}

	writeJSON(w, http.StatusOK, model.ExerciseListResponse{
		Success:    true,
		Exercises:  exercises,
		Pagination: page,
	})
}

// HandleUpdate handles PUT /api/v1/exercises/{exercise_id} requests.
func (h *ExerciseHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := pathID(w, r, "exercise_id")
	if !ok {
		return
	}

	var req model.ExerciseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		switch {
		case isExerciseValidationError(err):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrExerciseNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotExerciseOwner):
			writeError(w, http.StatusForbidden, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"exercise": resp,
	})
}

// HandleDelete handles DELETE /api/v1/exercises/{exercise_id} requests.
func (h *ExerciseHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := pathID(w, r, "exercise_id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotExerciseOwner):
			writeError(w, http.StatusForbidden, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleCategories handles GET /api/v1/exercises/categories requests.
func (h *ExerciseHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	h.handleDistinct(w, r, "categories", h.service.Categories)
}

// HandleEquipment handles GET /api/v1/exercises/equipment requests.
func (h *ExerciseHandler) HandleEquipment(w http.ResponseWriter, r *http.Request) {
	h.handleDistinct(w, r, "equipment", h.service.Equipment)
}

func (h *ExerciseHandler) handleDistinct(w http.ResponseWriter, r *http.Request, key string, fn func(ctx context.Context, userID int64) ([]string, error)) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	values, err := fn(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if values == nil {
		values = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		key:       values,
	})
}

func isExerciseValidationError(err error) bool {
	return errors.Is(err, service.ErrExerciseNameRequired) ||
		errors.Is(err, service.ErrInvalidExerciseType) ||
		errors.Is(err, service.ErrInvalidDifficulty)
}

// pathID parses a positive int64 URL parameter, writing the error response
// itself on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// queryPage reads page/limit query parameters; the service normalizes ranges.
func queryPage(r *http.Request) model.Pagination {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return model.Pagination{Page: page, Limit: limit}
}
