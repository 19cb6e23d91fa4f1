package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"crpt-gateway/client/crpt/domain"
)

type immediateGate struct {
	acquired int
}

func (g *immediateGate) Acquire(context.Context) error {
	g.acquired++
	return nil
}

type blockingGate struct{}

func (blockingGate) Acquire(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

type closedGate struct{}

func (closedGate) Acquire(context.Context) error { return domain.ErrGateClosed }

type fakeSender struct {
	mu        sync.Mutex
	body      string
	err       error
	payload   []byte
	signature string
	calls     int
}

func (s *fakeSender) Send(_ context.Context, payload []byte, signature string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.payload = payload
	s.signature = signature
	return s.body, s.err
}

type captureStats struct {
	mu     sync.Mutex
	events []domain.StatsEvent
}

func (c *captureStats) Record(_ context.Context, ev domain.StatsEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
	return nil
}

func (c *captureStats) outcomes() []domain.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Outcome, 0, len(c.events))
	for _, ev := range c.events {
		out = append(out, ev.Outcome)
	}
	return out
}

func TestService_Submit_ReturnsBodyAndRecordsSent(t *testing.T) {
	gate := &immediateGate{}
	sender := &fakeSender{body: "OK"}
	stats := &captureStats{}
	svc := Service{Gate: gate, Sender: sender, Stats: stats}

	doc := domain.Document{DocID: "doc-1"}
	body, err := svc.Submit(context.Background(), doc, "sig")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != "OK" {
		t.Fatalf("expected body OK, got %q", body)
	}
	if gate.acquired != 1 {
		t.Fatalf("expected one acquire, got %d", gate.acquired)
	}
	if sender.signature != "sig" {
		t.Fatalf("expected signature to reach sender, got %q", sender.signature)
	}
	if got := stats.outcomes(); len(got) != 1 || got[0] != domain.OutcomeSent {
		t.Fatalf("expected [sent], got %v", got)
	}
}

func TestService_Submit_NormalizesNilProducts(t *testing.T) {
	sender := &fakeSender{body: "OK"}
	svc := Service{Gate: &immediateGate{}, Sender: sender}

	if _, err := svc.Submit(context.Background(), domain.Document{DocID: "d"}, "sig"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(sender.payload), `"products":[]`) {
		t.Fatalf("expected products normalized to [], payload: %s", sender.payload)
	}
}

func TestService_Submit_AllowsWhenNoGate(t *testing.T) {
	sender := &fakeSender{body: "OK"}
	svc := Service{Sender: sender}

	if _, err := svc.Submit(context.Background(), domain.Document{}, "sig"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_Submit_SerializationFailureSkipsSend(t *testing.T) {
	sender := &fakeSender{body: "OK"}
	stats := &captureStats{}
	svc := Service{
		Gate:   &immediateGate{},
		Sender: sender,
		Stats:  stats,
		Encode: func(domain.Document) ([]byte, error) { return nil, errors.New("boom") },
	}

	_, err := svc.Submit(context.Background(), domain.Document{DocID: "d"}, "sig")
	var serr *domain.SerializationError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SerializationError, got %v", err)
	}
	if sender.calls != 0 {
		t.Fatalf("expected no network call, got %d", sender.calls)
	}
	if got := stats.outcomes(); len(got) != 1 || got[0] != domain.OutcomeSerializationError {
		t.Fatalf("expected [serialization_error], got %v", got)
	}
}

func TestService_Submit_SenderFailureBecomesTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	sender := &fakeSender{err: cause}
	stats := &captureStats{}
	svc := Service{Gate: &immediateGate{}, Sender: sender, Stats: stats}

	_, err := svc.Submit(context.Background(), domain.Document{DocID: "d"}, "sig")
	var terr *domain.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be wrapped, got %v", err)
	}
	if got := stats.outcomes(); len(got) != 1 || got[0] != domain.OutcomeTransportError {
		t.Fatalf("expected [transport_error], got %v", got)
	}
}

func TestService_Submit_CancelledWhileWaitingOnGate(t *testing.T) {
	sender := &fakeSender{body: "OK"}
	stats := &captureStats{}
	svc := Service{Gate: blockingGate{}, Sender: sender, Stats: stats}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Submit(ctx, domain.Document{DocID: "d"}, "sig")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected Canceled, got %v", err)
	}
	var terr *domain.TransportError
	if errors.As(err, &terr) {
		t.Fatalf("cancellation must not look like a transport failure: %v", err)
	}
	if sender.calls != 0 {
		t.Fatalf("expected no network call after cancellation, got %d", sender.calls)
	}
	if got := stats.outcomes(); len(got) != 1 || got[0] != domain.OutcomeCancelled {
		t.Fatalf("expected [cancelled], got %v", got)
	}
}

func TestService_Submit_AcquireTimeoutExpiresAsDeadline(t *testing.T) {
	svc := Service{Gate: blockingGate{}, Sender: &fakeSender{}, AcquireTimeout: 10 * time.Millisecond}

	start := time.Now()
	_, err := svc.Submit(context.Background(), domain.Document{}, "sig")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected bounded wait, took %s", elapsed)
	}
}

func TestService_Submit_GateClosedPassesThrough(t *testing.T) {
	stats := &captureStats{}
	svc := Service{Gate: closedGate{}, Sender: &fakeSender{}, Stats: stats}

	_, err := svc.Submit(context.Background(), domain.Document{}, "sig")
	if !errors.Is(err, domain.ErrGateClosed) {
		t.Fatalf("expected ErrGateClosed, got %v", err)
	}
	if got := stats.outcomes(); len(got) != 0 {
		t.Fatalf("expected no outcome recorded for closed gate, got %v", got)
	}
}
