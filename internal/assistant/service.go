package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/eliteproperties/realty-platform/internal/observability/metrics"
	"github.com/eliteproperties/realty-platform/pkg/logging"
)

// MessageRequest is one inbound chat turn. An empty SessionID starts a new
// session.
type MessageRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// ResetRequest clears a session's conversation state.
type ResetRequest struct {
	SessionID string `json:"sessionId"`
}

// Response carries the assistant reply for one turn.
type Response struct {
	SessionID string `json:"sessionId"`
	Reply     Reply  `json:"reply"`
}

// Service is the per-turn conversation contract used by transports.
type Service interface {
	ProcessMessage(ctx context.Context, req MessageRequest) (*Response, error)
	ResetSession(ctx context.Context, req ResetRequest) error
}

// BookingSink receives the record assembled by a completed booking wizard.
type BookingSink interface {
	SubmitWizardBooking(ctx context.Context, record BookingRecord) error
}

// ChatService loads session context, runs the engine, and persists the
// updated context. A completed wizard's record is handed to the booking sink;
// a sink failure is logged but never fails the chat turn.
type ChatService struct {
	engine   *Engine
	sessions SessionStore
	sink     BookingSink
	tracer   trace.Tracer
	metrics  *metrics.ChatMetrics
	logger   *logging.Logger
}

var _ Service = (*ChatService)(nil)

// ChatServiceOption customizes a ChatService.
type ChatServiceOption func(*ChatService)

// WithChatMetrics records per-turn metrics.
func WithChatMetrics(m *metrics.ChatMetrics) ChatServiceOption {
	return func(s *ChatService) { s.metrics = m }
}

// NewChatService wires the chat service. sink may be nil when no booking
// collaborator is configured.
func NewChatService(engine *Engine, sessions SessionStore, sink BookingSink, logger *logging.Logger, opts ...ChatServiceOption) *ChatService {
	if engine == nil {
		panic("assistant: engine cannot be nil")
	}
	if sessions == nil {
		panic("assistant: session store cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	s := &ChatService{
		engine:   engine,
		sessions: sessions,
		sink:     sink,
		tracer:   otel.Tracer("realty.internal.assistant"),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessMessage runs one conversation turn for the session.
func (s *ChatService) ProcessMessage(ctx context.Context, req MessageRequest) (*Response, error) {
	ctx, span := s.tracer.Start(ctx, "assistant.process_message")
	defer span.End()
	start := time.Now()

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
		s.metrics.ObserveSessionStarted()
	}

	convo, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	reply, err := s.engine.ProcessTurn(ctx, convo, req.Message)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if reply.Kind == ReplyBookingDone && reply.Booking != nil && s.sink != nil {
		if err := s.sink.SubmitWizardBooking(ctx, *reply.Booking); err != nil {
			s.logger.Error("failed to submit wizard booking", "error", err, "session_id", sessionID)
		}
	}

	if err := s.sessions.Save(ctx, sessionID, convo); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.metrics.ObserveTurn(string(reply.Kind), time.Since(start).Seconds())
	return &Response{SessionID: sessionID, Reply: *reply}, nil
}

// ResetSession drops all conversation state for the session.
func (s *ChatService) ResetSession(ctx context.Context, req ResetRequest) error {
	ctx, span := s.tracer.Start(ctx, "assistant.reset_session")
	defer span.End()

	if req.SessionID == "" {
		return fmt.Errorf("assistant: session id required")
	}
	if err := s.sessions.Clear(ctx, req.SessionID); err != nil {
		span.RecordError(err)
		return err
	}
	s.metrics.ObserveReset()
	return nil
}
