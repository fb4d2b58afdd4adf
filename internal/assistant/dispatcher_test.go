package assistant

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatService struct {
	mu       sync.Mutex
	messages []MessageRequest
	resets   []ResetRequest
}

func (s *stubChatService) ProcessMessage(_ context.Context, req MessageRequest) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, req)
	return &Response{SessionID: req.SessionID, Reply: Reply{Kind: ReplyText, Text: "echo: " + req.Message}}, nil
}

func (s *stubChatService) ResetSession(_ context.Context, req ResetRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets = append(s.resets, req)
	return nil
}

func TestOrchestratorProcessesMessageThroughQueue(t *testing.T) {
	stub := &stubChatService{}
	o := NewOrchestrator(stub, NewMemoryQueue(8), nil, WithWorkerCount(1), WithReceiveWaitSeconds(1))
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		require.NoError(t, o.Shutdown(shutdownCtx))
	}()

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	resp, err := o.ProcessMessage(ctx, MessageRequest{SessionID: "s1", Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "s1", resp.SessionID)
	assert.Equal(t, "echo: hello", resp.Reply.Text)

	require.NoError(t, o.ResetSession(ctx, ResetRequest{SessionID: "s1"}))

	stub.mu.Lock()
	defer stub.mu.Unlock()
	assert.Len(t, stub.messages, 1)
	assert.Len(t, stub.resets, 1)
}

func TestOrchestratorShutdownRejectsPendingWork(t *testing.T) {
	stub := &stubChatService{}
	o := NewOrchestrator(stub, NewMemoryQueue(8), nil, WithWorkerCount(1), WithReceiveWaitSeconds(1))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, o.Shutdown(shutdownCtx))

	ctx, cancelReq := context.WithTimeout(t.Context(), 500*time.Millisecond)
	defer cancelReq()

	_, err := o.ProcessMessage(ctx, MessageRequest{SessionID: "s1", Message: "late"})
	assert.Error(t, err)
}

func TestMemoryQueueRoundTrip(t *testing.T) {
	q := NewMemoryQueue(4)

	first := chatJob{ID: "job-1", Kind: jobTypeMessage, Message: MessageRequest{SessionID: "s1", Message: "hello"}}
	second := chatJob{ID: "job-2", Kind: jobTypeReset, Reset: ResetRequest{SessionID: "s1"}}
	require.NoError(t, q.Send(t.Context(), first))
	require.NoError(t, q.Send(t.Context(), second))

	jobs, err := q.Receive(t.Context(), 10, 1)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	// Jobs come back typed and intact, in order, each with a receipt handle.
	assert.Equal(t, first, jobs[0].Job)
	assert.Equal(t, second, jobs[1].Job)
	assert.NotEmpty(t, jobs[0].ReceiptHandle)
	assert.NotEqual(t, jobs[0].ReceiptHandle, jobs[1].ReceiptHandle)

	// Empty queue times out and returns no jobs.
	jobs, err = q.Receive(t.Context(), 1, 1)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}
