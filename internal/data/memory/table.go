// Package memory provides in-memory implementations of the repository ports for
// development mode and tests.
package memory

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/shutterdesk/studio/internal/errors"
)

// table is a mutex-guarded map of rows. Rows are cloned on the way in and out so callers
// never share memory with the stored copy.
type table[T any] struct {
	mu       sync.RWMutex
	rows     map[string]*T
	clone    func(*T) *T
	less     func(a, b *T) int
	notFound error
	label    string
	now      func() time.Time
}

func newTable[T any](label string, notFound error, clone func(*T) *T, less func(a, b *T) int) *table[T] {
	return &table[T]{
		rows:     make(map[string]*T),
		clone:    clone,
		less:     less,
		notFound: notFound,
		label:    label,
		now:      time.Now,
	}
}

func (t *table[T]) list() []*T {
	t.mu.RLock()
	out := make([]*T, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, t.clone(row))
	}
	t.mu.RUnlock()
	slices.SortStableFunc(out, t.less)
	return out
}

func (t *table[T]) get(id string) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		return nil, t.missing()
	}
	return t.clone(row), nil
}

// insert stores row under a fresh id. check runs under the write lock against existing rows.
func (t *table[T]) insert(build func(id string, now time.Time) *T, check func(existing *T) error) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row := build(uuid.NewString(), t.now().UTC())
	if check != nil {
		for _, existing := range t.rows {
			if err := check(existing); err != nil {
				return nil, err
			}
		}
	}
	id := rowID(row)
	t.rows[id] = t.clone(row)
	return row, nil
}

// update mutates a copy of the row with apply and swaps it in when check passes.
func (t *table[T]) update(id string, apply func(row *T, now time.Time), check func(existing, updated *T) error) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, ok := t.rows[id]
	if !ok {
		return nil, t.missing()
	}
	next := t.clone(current)
	apply(next, t.now().UTC())
	if check != nil {
		for otherID, existing := range t.rows {
			if otherID == id {
				continue
			}
			if err := check(existing, next); err != nil {
				return nil, err
			}
		}
	}
	t.rows[id] = next
	return t.clone(next), nil
}

func (t *table[T]) remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

func (t *table[T]) missing() error {
	return apperrors.Wrap(t.notFound, apperrors.ErrCodeNotFound, t.label+" not found")
}

func rowID[T any](row *T) string {
	if r, ok := any(row).(interface{ ResourceID() string }); ok {
		return r.ResourceID()
	}
	return ""
}
