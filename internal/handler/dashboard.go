package handler

import (
	"errors"
	"net/http"

	"github.com/repfit/repfit-go/internal/middleware"
	"github.com/repfit/repfit-go/internal/service"
)

// DashboardHandler handles HTTP requests for the dashboard projection.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// HandleStats handles GET /api/v1/dashboard/stats requests.
func (h *DashboardHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stats, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    stats,
	})
}
