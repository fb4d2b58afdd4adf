package brokers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eliteproperties/realty-platform/pkg/logging"
)

// Handler handles HTTP requests for brokers
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new brokers handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /api/brokers requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		list []Broker
		err  error
	)
	if r.URL.Query().Get("availability") == string(Available) {
		list, err = h.repo.ListAvailable(r.Context())
	} else {
		list, err = h.repo.List(r.Context())
	}
	if err != nil {
		h.logger.Error("failed to list brokers", "error", err)
		http.Error(w, "failed to list brokers", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"brokers": list, "count": len(list)})
}

// Get handles GET /api/brokers/{id} requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	broker, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBrokerNotFound) {
			http.Error(w, "broker not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load broker", "error", err, "id", id)
		http.Error(w, "failed to load broker", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(broker)
}
