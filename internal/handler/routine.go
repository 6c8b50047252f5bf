package handler

import (
	"errors"
	"net/http"

	"github.com/repfit/repfit-go/internal/middleware"
	"github.com/repfit/repfit-go/model"
	"github.com/repfit/repfit-go/internal/service"
)

// RoutineHandler handles HTTP requests for routines.
type RoutineHandler struct {
	service *service.RoutineService
}

// NewRoutineHandler creates a new RoutineHandler.
func NewRoutineHandler(svc *service.RoutineService) *RoutineHandler {
	return &RoutineHandler{service: svc}
}

// HandleCreate handles POST /api/v1/routines requests.
func (h *RoutineHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.RoutineRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		if isRoutineValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"routine": resp,
	})
}

// HandleGet handles GET /api/v1/routines/{routine_id} requests.
func (h *RoutineHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := pathID(w, r, "routine_id")
	if !ok {
		return
	}

	resp, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrRoutineNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"routine": resp,
	})
}

// HandleList handles GET /api/v1/routines requests.
func (h *RoutineHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	routines, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if routines == nil {
		routines = []model.RoutineResponse{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"routines": routines,
	})
}

// HandleUpdate handles PUT /api/v1/routines/{routine_id} requests.
func (h *RoutineHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := pathID(w, r, "routine_id")
	if !ok {
		return
	}

	var req model.RoutineRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		switch {
		case isRoutineValidationError(err):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrRoutineNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"routine": resp,
	})
}

// HandleDelete handles DELETE /api/v1/routines/{routine_id} requests.
func (h *RoutineHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := pathID(w, r, "routine_id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrRoutineNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func isRoutineValidationError(err error) bool {
	return errors.Is(err, service.ErrRoutineNameRequired) ||
		errors.Is(err, service.ErrInvalidRoutineDay)
}
