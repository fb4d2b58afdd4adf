package properties

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/eliteproperties/realty-platform/pkg/logging"
)

// Handler handles HTTP requests for property listings
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new properties handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// ListResponse is the response for listing properties
type ListResponse struct {
	Properties []Listing `json:"properties"`
	Count      int       `json:"count"`
}

// List handles GET /api/properties requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := SearchFilter{
		Type:     ListingType(r.URL.Query().Get("type")),
		Location: r.URL.Query().Get("location"),
		Status:   ListingStatus(r.URL.Query().Get("status")),
	}
	if v := r.URL.Query().Get("min_price"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.MinPrice = n
		}
	}
	if v := r.URL.Query().Get("max_price"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.MaxPrice = n
		}
	}
	if v := r.URL.Query().Get("bedrooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Bedrooms = n
		}
	}

	listings, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list properties", "error", err)
		http.Error(w, "failed to list properties", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ListResponse{Properties: listings, Count: len(listings)})
}

// Get handles GET /api/properties/{id} requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	listing, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrListingNotFound) {
			http.Error(w, "property not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load property", "error", err, "id", id)
		http.Error(w, "failed to load property", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// Create handles POST /api/properties requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var listing Listing
	if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	stored, err := h.repo.Create(r.Context(), &listing)
	if err != nil {
		if errors.Is(err, ErrInvalidListing) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to create property", "error", err)
		http.Error(w, "failed to create property", http.StatusInternalServerError)
		return
	}

	h.logger.Info("property created", "id", stored.ID, "title", stored.Title)
	writeJSON(w, http.StatusCreated, stored)
}

// Update handles PUT /api/properties/{id} requests
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var listing Listing
	if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	listing.ID = chi.URLParam(r, "id")

	stored, err := h.repo.Update(r.Context(), &listing)
	if err != nil {
		switch {
		case errors.Is(err, ErrListingNotFound):
			http.Error(w, "property not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidListing):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("failed to update property", "error", err, "id", listing.ID)
			http.Error(w, "failed to update property", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, stored)
}

// Delete handles DELETE /api/properties/{id} requests
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrListingNotFound) {
			http.Error(w, "property not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete property", "error", err, "id", id)
		http.Error(w, "failed to delete property", http.StatusInternalServerError)
		return
	}

	h.logger.Info("property deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
