package failurenotifier

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shutterdesk/studio/internal/observability/notify"
)

type capture struct {
	mu     sync.Mutex
	events []notify.Event
}

func (c *capture) sink() notify.Sink {
	return notify.SinkFunc(func(_ context.Context, ev notify.Event) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.events = append(c.events, ev)
		return nil
	})
}

func TestServiceForwardsFailures(t *testing.T) {
	var got capture
	svc := NewService(Options{Sinks: []SinkRegistration{{Name: "capture", Sink: got.sink()}}})

	err := svc.Notify(context.Background(), notify.Event{
		Resource:  "invoices",
		Op:        "update",
		Outcome:   notify.OutcomeFailure,
		ErrorKind: "network",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got.events))
	}
	if got.events[0].Resource != "invoices" {
		t.Fatalf("unexpected resource %q", got.events[0].Resource)
	}
}

func TestServiceDropsSuccessAndValidation(t *testing.T) {
	var got capture
	svc := NewService(Options{Sinks: []SinkRegistration{{Sink: got.sink()}}})
	ctx := context.Background()

	_ = svc.Notify(ctx, notify.Event{Outcome: notify.OutcomeSuccess})
	_ = svc.Notify(ctx, notify.Event{Outcome: notify.OutcomeFailure, ErrorKind: "validation"})

	if len(got.events) != 0 {
		t.Fatalf("expected no events, got %d", len(got.events))
	}
}

func TestServiceCustomIgnoreKinds(t *testing.T) {
	var got capture
	svc := NewService(Options{
		Sinks:       []SinkRegistration{{Sink: got.sink()}},
		IgnoreKinds: []string{},
	})

	_ = svc.Notify(context.Background(), notify.Event{Outcome: notify.OutcomeFailure, ErrorKind: "validation"})
	if len(got.events) != 1 {
		t.Fatalf("expected validation failure to be forwarded, got %d events", len(got.events))
	}
}

func TestServiceSinkErrorsAreSwallowed(t *testing.T) {
	failing := notify.SinkFunc(func(context.Context, notify.Event) error { return errors.New("boom") })
	svc := NewService(Options{Sinks: []SinkRegistration{{Name: "failing", Sink: failing}}})

	if err := svc.Notify(context.Background(), notify.Event{Outcome: notify.OutcomeFailure}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestServiceDisabled(t *testing.T) {
	svc := NewService(Options{Sinks: []SinkRegistration{{Name: "nil"}}})
	if svc.Enabled() {
		t.Fatal("expected notifier to be disabled without sinks")
	}
	if err := svc.Notify(context.Background(), notify.Event{Outcome: notify.OutcomeFailure}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
