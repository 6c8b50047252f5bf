package handler

import (
	"errors"
	"net/http"

	"github.com/repfit/repfit-go/internal/middleware"
	"github.com/repfit/repfit-go/model"
	"github.com/repfit/repfit-go/internal/service"
)

// WorkoutHandler handles HTTP requests for the workout log.
type WorkoutHandler struct {
	service *service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(svc *service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{service: svc}
}

// HandleCreate handles POST /api/v1/workouts requests.
func (h *WorkoutHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.WorkoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutExercisesRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"workout": resp,
	})
}

// HandleGet handles GET /api/v1/workouts/{workout_id} requests.
func (h *WorkoutHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := pathID(w, r, "workout_id")
	if !ok {
		return
	}

	resp, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"workout": resp,
	})
}

// HandleList handles GET /api/v1/workouts requests.
func (h *WorkoutHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	workouts, page, err := h.service.List(r.Context(), userID, queryPage(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if workouts == nil {
		workouts = []model.WorkoutResponse{}
	}

	writeJSON(w, http.StatusOK, model.WorkoutListResponse{
		Success:    true,
		Workouts:   workouts,
		Pagination: page,
	})
}

// HandleUpdate handles PUT /api/v1/workouts/{workout_id} requests.
func (h *WorkoutHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := pathID(w, r, "workout_id")
	if !ok {
		return
	}

	var req model.WorkoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutExercisesRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrWorkoutNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"workout": resp,
	})
}

// HandleDelete handles DELETE /api/v1/workouts/{workout_id} requests.
func (h *WorkoutHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := pathID(w, r, "workout_id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
