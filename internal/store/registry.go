// Package store holds reference-counted, per-key caches of whole resource collections.
//
// A Registry is created once at startup and owns every Store. Reads are served from the
// local entry, then the optional shared tier, then the backend; concurrent reads of one key
// share a single backend fetch.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shutterdesk/studio/internal/core"
	"github.com/shutterdesk/studio/internal/observability/statsd"
)

var (
	// ErrDuplicateKey is returned when a key is registered twice.
	ErrDuplicateKey = errors.New("store key already registered")
	// ErrRegistryClosed is returned by operations on a closed registry.
	ErrRegistryClosed = errors.New("store registry closed")
	// ErrSubscriptionClosed is returned by reads through a closed subscription.
	ErrSubscriptionClosed = errors.New("subscription closed")
)

// Options configures a Registry.
type Options struct {
	Logger *slog.Logger
	// Cache is the optional shared second tier.
	Cache core.CacheRepository
	// Bus carries invalidations between replicas; optional.
	Bus core.InvalidationBus
	// CacheTTL is the expiry of collections written to Cache.
	CacheTTL time.Duration
	// StaleAfter bounds local freshness; zero keeps data fresh until invalidated.
	StaleAfter time.Duration
	// Grace is how long data survives after the last subscriber leaves; zero keeps it until
	// the next read.
	Grace time.Duration
	// FetchTimeout bounds one backend fetch; zero means no extra bound.
	FetchTimeout time.Duration
	Metrics      statsd.Sink
	Now          func() time.Time
}

// entry is the untyped view of a Store used by the registry.
type entry interface {
	invalidateLocal()
	reset()
}

// Registry is the process-wide set of resource stores.
type Registry struct {
	opts   Options
	origin string

	mu      sync.Mutex
	entries map[string]entry
	closed  bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts Options) *Registry {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = statsd.Nop{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Registry{
		opts:    opts,
		origin:  uuid.NewString(),
		entries: make(map[string]entry),
	}
}

func (r *Registry) add(key string, e entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRegistryClosed
	}
	if _, ok := r.entries[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, key)
	}
	r.entries[key] = e
	return nil
}

// Keys lists the registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Reset tears down every entry and forgets all registrations. Intended for tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]entry)
	r.mu.Unlock()

	for _, e := range entries {
		e.reset()
	}
}

// Close stops the invalidation listener and resets the registry. Further registrations fail.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	r.Reset()
	return nil
}

// Listen subscribes to invalidations published by other replicas and applies them locally.
// It returns immediately when no bus is configured.
func (r *Registry) Listen(ctx context.Context) {
	if r.opts.Bus == nil {
		return
	}
	r.mu.Lock()
	if r.closed || r.cancel != nil {
		r.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	done := r.done
	r.mu.Unlock()

	go func() {
		defer close(done)
		err := r.opts.Bus.SubscribeInvalidations(ctx, r.handleInvalidation)
		if err != nil && ctx.Err() == nil {
			r.opts.Logger.Error("invalidation listener stopped", "error", err)
		}
	}()
}

// handleInvalidation applies a remote announcement. Messages are "<key>|<origin>"; our own
// announcements are ignored since they were applied before publishing.
func (r *Registry) handleInvalidation(msg string) {
	key, origin, _ := strings.Cut(msg, "|")
	if origin == r.origin {
		return
	}
	r.mu.Lock()
	e, ok := r.entries[key]
	r.mu.Unlock()
	if !ok {
		return
	}
	e.invalidateLocal()
	r.opts.Logger.Debug("applied remote invalidation", "resource", key)
}

func (r *Registry) announce(ctx context.Context, key string) {
	if r.opts.Bus == nil {
		return
	}
	if err := r.opts.Bus.PublishInvalidation(ctx, key+"|"+r.origin); err != nil {
		r.opts.Logger.Warn("publish invalidation failed", "resource", key, "error", err)
	}
}
