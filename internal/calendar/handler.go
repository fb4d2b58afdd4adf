package calendar

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/eliteproperties/realty-platform/pkg/logging"
)

// Handler handles HTTP requests for calendar events
type Handler struct {
	repo         Repository
	slotDuration time.Duration
	logger       *logging.Logger
}

// NewHandler creates a new calendar handler
func NewHandler(repo Repository, slotDuration time.Duration, logger *logging.Logger) *Handler {
	if slotDuration <= 0 {
		slotDuration = DefaultSlotDuration
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, slotDuration: slotDuration, logger: logger}
}

// ListEvents handles GET /api/calendar/events requests
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list calendar events", "error", err)
		http.Error(w, "failed to list events", http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []Event{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"events": events, "count": len(events)})
}

// CreateEvent handles POST /api/calendar/events requests
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var event Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	stored, err := h.repo.Create(r.Context(), &event)
	if err != nil {
		if errors.Is(err, ErrInvalidEvent) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to create calendar event", "error", err)
		http.Error(w, "failed to create event", http.StatusInternalServerError)
		return
	}

	h.logger.Info("calendar event created", "id", stored.ID, "client", stored.ClientName)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(stored)
}

// CheckConflicts handles GET /api/calendar/conflicts?date=YYYY-MM-DD&time=HH:MM.
// The check is advisory: clients use it to warn before submitting a booking.
func (h *Handler) CheckConflicts(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	clock := r.URL.Query().Get("time")
	if date == "" || clock == "" {
		http.Error(w, "date and time parameters required", http.StatusBadRequest)
		return
	}

	start, err := ParseSlot(date, clock)
	if err != nil {
		http.Error(w, "invalid date or time format", http.StatusBadRequest)
		return
	}

	events, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to load events for conflict check", "error", err)
		http.Error(w, "failed to check conflicts", http.StatusInternalServerError)
		return
	}

	check := CheckConflict(start, h.slotDuration, events)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(check)
}
