package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/eliteproperties/realty-platform/internal/bookings"
	"github.com/eliteproperties/realty-platform/internal/brokers"
	"github.com/eliteproperties/realty-platform/internal/calendar"
	httpmiddleware "github.com/eliteproperties/realty-platform/internal/http/middleware"
	"github.com/eliteproperties/realty-platform/internal/insights"
	"github.com/eliteproperties/realty-platform/internal/properties"
	"github.com/eliteproperties/realty-platform/internal/webchat"
	"github.com/eliteproperties/realty-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	PropertiesHandler  *properties.Handler
	BrokersHandler     *brokers.Handler
	InsightsHandler    *insights.Handler
	CalendarHandler    *calendar.Handler
	BookingsHandler    *bookings.Handler
	ChatHandler        *webchat.Handler
	AdminAuthSecret    string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints (health check, metrics)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.PropertiesHandler != nil {
			api.Route("/properties", func(r chi.Router) {
				r.Get("/", cfg.PropertiesHandler.List)
				r.Get("/{id}", cfg.PropertiesHandler.Get)
			})
		}
		if cfg.BrokersHandler != nil {
			api.Route("/brokers", func(r chi.Router) {
				r.Get("/", cfg.BrokersHandler.List)
				r.Get("/{id}", cfg.BrokersHandler.Get)
			})
		}
		if cfg.InsightsHandler != nil {
			api.Get("/market-insights", cfg.InsightsHandler.List)
		}
		if cfg.CalendarHandler != nil {
			api.Get("/calendar/conflicts", cfg.CalendarHandler.CheckConflicts)
		}
		if cfg.BookingsHandler != nil {
			api.Post("/bookings", cfg.BookingsHandler.Create)
			api.Get("/bookings/{id}", cfg.BookingsHandler.Get)
		}
		if cfg.ChatHandler != nil {
			api.Route("/chat", func(r chi.Router) {
				r.Post("/message", cfg.ChatHandler.HandleMessage)
				r.Post("/reset", cfg.ChatHandler.HandleReset)
				r.Get("/actions", cfg.ChatHandler.HandleQuickActions)
				r.Get("/ws", cfg.ChatHandler.HandleWebSocket)
			})
		}

		// Admin routes (protected by JWT)
		api.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			if cfg.PropertiesHandler != nil {
				admin.Route("/properties", func(r chi.Router) {
					r.Post("/", cfg.PropertiesHandler.Create)
					r.Put("/{id}", cfg.PropertiesHandler.Update)
					r.Delete("/{id}", cfg.PropertiesHandler.Delete)
				})
			}
			if cfg.BookingsHandler != nil {
				admin.Route("/bookings", func(r chi.Router) {
					r.Get("/", cfg.BookingsHandler.List)
					r.Get("/{id}", cfg.BookingsHandler.Get)
					r.Put("/{id}", cfg.BookingsHandler.Update)
					r.Patch("/{id}/status", cfg.BookingsHandler.UpdateStatus)
					r.Delete("/{id}", cfg.BookingsHandler.Delete)
				})
			}
			if cfg.CalendarHandler != nil {
				admin.Route("/calendar/events", func(r chi.Router) {
					r.Get("/", cfg.CalendarHandler.ListEvents)
					r.Post("/", cfg.CalendarHandler.CreateEvent)
				})
			}
		})
	})

	return r
}
