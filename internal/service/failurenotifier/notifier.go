// Package failurenotifier forwards mutation failures to operator-facing sinks.
package failurenotifier

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/shutterdesk/studio/internal/observability/notify"
)

// SinkRegistration pairs a sink implementation with a human-readable name for logging.
type SinkRegistration struct {
	Name string
	Sink notify.Sink
}

// Options configures the failure notifier service.
type Options struct {
	Logger *slog.Logger
	Sinks  []SinkRegistration
	// IgnoreKinds lists failure kinds that are not forwarded. Nil means the default of
	// ignoring validation failures, which are the user's to fix.
	IgnoreKinds []string
}

// Service dispatches failure events to all registered sinks.
type Service struct {
	logger *slog.Logger
	sinks  []SinkRegistration
	ignore []string
}

var _ notify.Sink = (*Service)(nil)

// NewService constructs a failure notifier.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "failure_notifier")
	}

	var sinks []SinkRegistration
	for _, entry := range opts.Sinks {
		if entry.Sink == nil {
			continue
		}
		name := entry.Name
		if name == "" {
			name = "sink"
		}
		sinks = append(sinks, SinkRegistration{Name: name, Sink: entry.Sink})
	}

	ignore := opts.IgnoreKinds
	if ignore == nil {
		ignore = []string{"validation"}
	}

	return &Service{logger: logger, sinks: sinks, ignore: ignore}
}

// Notify fans a failure event out to every sink. Successes and ignored kinds are dropped.
// Delivery errors are logged, never returned.
func (s *Service) Notify(ctx context.Context, event notify.Event) error {
	if len(s.sinks) == 0 || !event.Failed() {
		return nil
	}
	if slices.Contains(s.ignore, event.ErrorKind) {
		s.logger.DebugContext(ctx, "skipping failure notification",
			"resource", event.Resource,
			"op", event.Op,
			"kind", event.ErrorKind,
		)
		return nil
	}

	var wg sync.WaitGroup
	for _, entry := range s.sinks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := entry.Sink.Notify(ctx, event); err != nil {
				s.logger.Error("failure notifier delivery error",
					"sink", entry.Name,
					"resource", event.Resource,
					"op", event.Op,
					"error", err,
				)
			}
		}()
	}
	wg.Wait()
	return nil
}

// Enabled reports whether the notifier has any active sinks.
func (s *Service) Enabled() bool {
	return len(s.sinks) > 0
}
