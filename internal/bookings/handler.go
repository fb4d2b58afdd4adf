package bookings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eliteproperties/realty-platform/pkg/logging"
)

// Handler handles HTTP requests for bookings
type Handler struct {
	service *Service
	repo    Repository
	logger  *logging.Logger
}

// NewHandler creates a new bookings handler
func NewHandler(service *Service, repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, repo: repo, logger: logger}
}

// ListResponse is the response for listing bookings
type ListResponse struct {
	Bookings []Booking `json:"bookings"`
	Count    int       `json:"count"`
}

// List handles GET /api/bookings requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := Filter{
		Status:     Status(r.URL.Query().Get("status")),
		PropertyID: r.URL.Query().Get("propertyId"),
	}

	bookings, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list bookings", "error", err)
		http.Error(w, "failed to list bookings", http.StatusInternalServerError)
		return
	}
	if bookings == nil {
		bookings = []Booking{}
	}

	writeJSON(w, http.StatusOK, ListResponse{Bookings: bookings, Count: len(bookings)})
}

// Get handles GET /api/bookings/{id} requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	booking, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			http.Error(w, "booking not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load booking", "error", err, "id", id)
		http.Error(w, "failed to load booking", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// Create handles POST /api/bookings requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var booking Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	stored, err := h.service.Submit(r.Context(), &booking)
	if err != nil {
		if errors.Is(err, ErrInvalidBooking) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to create booking", "error", err)
		http.Error(w, "failed to create booking", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, stored)
}

// Update handles PUT /api/bookings/{id} requests
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var booking Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	booking.ID = chi.URLParam(r, "id")

	stored, err := h.repo.Update(r.Context(), &booking)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			http.Error(w, "booking not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidBooking):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("failed to update booking", "error", err, "id", booking.ID)
			http.Error(w, "failed to update booking", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, stored)
}

// UpdateStatus handles PATCH /api/bookings/{id}/status requests
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")

	stored, err := h.repo.UpdateStatus(r.Context(), id, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			http.Error(w, "booking not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidStatus):
			http.Error(w, "invalid status, must be one of: pending, confirmed, completed, cancelled", http.StatusBadRequest)
		default:
			h.logger.Error("failed to update booking status", "error", err, "id", id)
			http.Error(w, "failed to update booking status", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, stored)
}

// Delete handles DELETE /api/bookings/{id} requests
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			http.Error(w, "booking not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete booking", "error", err, "id", id)
		http.Error(w, "failed to delete booking", http.StatusInternalServerError)
		return
	}

	h.logger.Info("booking deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
