package store

import (
	"context"
	"sync"
	"time"
)

// Subscription is one consumer's hold on a Store. While at least one subscription is open the
// entry is kept warm; closing the last one marks it stale.
type Subscription[T any] struct {
	store   *Store[T]
	updates chan Snapshot[T]

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// Subscribe registers a consumer. The first subscriber of a cold or stale entry starts a
// fetch in the background.
func (s *Store[T]) Subscribe(ctx context.Context) *Subscription[T] {
	sub := &Subscription[T]{
		store:   s,
		updates: make(chan Snapshot[T], 1),
		done:    make(chan struct{}),
	}

	now := s.reg.opts.Now()
	s.mu.Lock()
	s.expireLocked(now)
	s.refs++
	s.releasedAt = time.Time{}
	s.subs[sub] = struct{}{}
	warm := s.refs == 1 && !s.freshLocked(now)
	s.mu.Unlock()

	if warm {
		go s.Get(context.WithoutCancel(ctx))
	}
	return sub
}

// Updates delivers the snapshot committed by each completed fetch. Only the latest undelivered
// snapshot is kept. The channel is closed when the subscription closes.
func (sub *Subscription[T]) Updates() <-chan Snapshot[T] { return sub.updates }

// Snapshot returns the store's current snapshot without fetching.
func (sub *Subscription[T]) Snapshot() Snapshot[T] { return sub.store.Peek() }

// Get reads through the store. If the subscription is closed before the result arrives the
// result is discarded for this subscriber and ErrSubscriptionClosed is returned; the fetch
// still completes and populates the cache.
func (sub *Subscription[T]) Get(ctx context.Context) (Snapshot[T], error) {
	select {
	case <-sub.done:
		return Snapshot[T]{}, ErrSubscriptionClosed
	default:
	}

	ch, snap, ok := sub.store.start()
	if ok {
		return snap, nil
	}
	select {
	case <-sub.done:
		return Snapshot[T]{}, ErrSubscriptionClosed
	case <-ctx.Done():
		snap := sub.store.Peek()
		snap.Err = ctx.Err()
		return snap, ctx.Err()
	case res := <-ch:
		return res.Val.(Snapshot[T]), nil
	}
}

// Close releases the subscription. It is safe to call more than once.
func (sub *Subscription[T]) Close() {
	if !sub.detach() {
		return
	}
	s := sub.store
	s.mu.Lock()
	if _, ok := s.subs[sub]; ok {
		delete(s.subs, sub)
		s.refs--
		if s.refs == 0 {
			s.stale = true
			s.releasedAt = s.reg.opts.Now()
		}
	}
	s.mu.Unlock()
}

// detach closes the subscriber's channels; it reports whether this call did so.
func (sub *Subscription[T]) detach() bool {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed {
		return false
	}
	sub.closed = true
	close(sub.done)
	close(sub.updates)
	return true
}

func (sub *Subscription[T]) deliver(snap Snapshot[T]) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed {
		return
	}
	select {
	case <-sub.updates:
	default:
	}
	sub.updates <- snap
}
