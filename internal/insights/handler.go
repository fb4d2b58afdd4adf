package insights

import (
	"encoding/json"
	"net/http"

	"github.com/eliteproperties/realty-platform/pkg/logging"
)

// Handler handles HTTP requests for market insights
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new insights handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /api/market-insights requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list market insights", "error", err)
		http.Error(w, "failed to list market insights", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"insights": list, "count": len(list)})
}
