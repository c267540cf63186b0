// Package selection tracks which item a page has selected and which dialog is open.
package selection

import (
	"errors"
	"fmt"
	"sync"
)

// State is the dialog state of a page.
type State string

const (
	Closed           State = "closed"
	Creating         State = "creating"
	Viewing          State = "viewing"
	Editing          State = "editing"
	ConfirmingDelete State = "confirming_delete"
)

// ErrInvalidTransition is returned when an action is not allowed from the current state.
var ErrInvalidTransition = errors.New("invalid selection transition")

// Machine is a per-page selection state machine. It is safe for concurrent use.
type Machine[T any] struct {
	mu       sync.Mutex
	state    State
	selected T
	has      bool
}

// New returns a machine in the closed state.
func New[T any]() *Machine[T] {
	return &Machine[T]{state: Closed}
}

// State returns the current state.
func (m *Machine[T]) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Selected returns the selected item, if any.
func (m *Machine[T]) Selected() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected, m.has
}

// OpenCreate opens the empty "add" dialog.
func (m *Machine[T]) OpenCreate() error {
	return m.transition("open create", Creating, nil, Closed)
}

// View opens the details dialog for item.
func (m *Machine[T]) View(item T) error {
	return m.transition("view", Viewing, &item, Closed)
}

// Edit opens the edit dialog for item, either directly or from the details dialog.
func (m *Machine[T]) Edit(item T) error {
	return m.transition("edit", Editing, &item, Closed, Viewing)
}

// ConfirmDelete asks for delete confirmation of item.
func (m *Machine[T]) ConfirmDelete(item T) error {
	return m.transition("confirm delete", ConfirmingDelete, &item, Closed, Viewing)
}

// Cancel closes any open dialog and clears the selection.
func (m *Machine[T]) Cancel() error {
	return m.transition("cancel", Closed, nil, Creating, Viewing, Editing, ConfirmingDelete)
}

// Complete finishes a save or a confirmed delete and closes the dialog.
func (m *Machine[T]) Complete() error {
	return m.transition("complete", Closed, nil, Creating, Editing, ConfirmingDelete)
}

// Reset returns to closed unconditionally, as on navigation.
func (m *Machine[T]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(Closed, nil)
}

func (m *Machine[T]) transition(action string, to State, item *T, from ...State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	allowed := false
	for _, s := range from {
		if m.state == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, m.state)
	}
	m.set(to, item)
	return nil
}

func (m *Machine[T]) set(to State, item *T) {
	var zero T
	m.state = to
	if item == nil {
		m.selected, m.has = zero, false
		return
	}
	m.selected, m.has = *item, true
}
