package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/shutterdesk/studio/internal/domain/model"
	"github.com/shutterdesk/studio/internal/selection"
	"github.com/shutterdesk/studio/internal/validation"
)

// Editor is the subset of a resource service a Session drives.
type Editor[T model.Resource] interface {
	Create(ctx context.Context, draft validation.Draft) (T, error)
	Update(ctx context.Context, id string, patch validation.Draft) (T, error)
	Delete(ctx context.Context, id string) error
	ValidateField(field, value string) (string, bool)
	DraftOf(item T) validation.Draft
}

// Session is the state of one page's dialogs: which record is selected, what the open form
// holds and which fields failed validation.
type Session[T model.Resource] struct {
	editor  Editor[T]
	machine *selection.Machine[T]

	mu     sync.Mutex
	draft  validation.Draft
	base   validation.Draft
	errors map[string]string
}

// NewSession creates a closed session over editor.
func NewSession[T model.Resource](editor Editor[T]) *Session[T] {
	return &Session[T]{editor: editor, machine: selection.New[T]()}
}

// State returns the dialog state.
func (s *Session[T]) State() selection.State { return s.machine.State() }

// Selected returns the record the open dialog refers to.
func (s *Session[T]) Selected() (T, bool) { return s.machine.Selected() }

// OpenCreate opens an empty create form.
func (s *Session[T]) OpenCreate() error {
	if err := s.machine.OpenCreate(); err != nil {
		return err
	}
	s.load(validation.Draft{})
	return nil
}

// View opens the details dialog for item.
func (s *Session[T]) View(item T) error {
	return s.machine.View(item)
}

// Edit opens the edit form prefilled from item.
func (s *Session[T]) Edit(item T) error {
	if err := s.machine.Edit(item); err != nil {
		return err
	}
	s.load(s.editor.DraftOf(item))
	return nil
}

// ConfirmDelete asks for confirmation before deleting item.
func (s *Session[T]) ConfirmDelete(item T) error {
	return s.machine.ConfirmDelete(item)
}

// Cancel closes the open dialog and discards the form.
func (s *Session[T]) Cancel() error {
	if err := s.machine.Cancel(); err != nil {
		return err
	}
	s.load(nil)
	return nil
}

// Reset closes everything, as on navigation.
func (s *Session[T]) Reset() {
	s.machine.Reset()
	s.load(nil)
}

func (s *Session[T]) load(d validation.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = d
	s.base = maps.Clone(d)
	s.errors = map[string]string{}
}

// SetField records a form value and validates it. It returns the field's error message.
func (s *Session[T]) SetField(field, value string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return ""
	}
	s.draft[field] = value
	msg, ok := s.editor.ValidateField(field, value)
	if !ok {
		return ""
	}
	if msg == "" {
		delete(s.errors, field)
	} else {
		s.errors[field] = msg
	}
	return msg
}

// Draft returns a copy of the form values.
func (s *Session[T]) Draft() validation.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.draft)
}

// Errors returns a copy of the current field errors.
func (s *Session[T]) Errors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.errors)
}

// Submit performs the action of the open dialog: create, update with the changed fields, or
// delete. On success the dialog closes. On failure it stays open with the draft intact and
// validation messages recorded per field.
func (s *Session[T]) Submit(ctx context.Context) (T, error) {
	var zero T
	selected, _ := s.machine.Selected()
	draft, changed := s.pending()

	var (
		out T
		err error
	)
	switch state := s.machine.State(); state {
	case selection.Creating:
		out, err = s.editor.Create(ctx, draft)
	case selection.Editing:
		out, err = s.editor.Update(ctx, selected.ResourceID(), changed)
	case selection.ConfirmingDelete:
		err = s.editor.Delete(ctx, selected.ResourceID())
		out = selected
	default:
		return zero, fmt.Errorf("%w: submit from %s", selection.ErrInvalidTransition, state)
	}
	if err != nil {
		s.recordFailure(err)
		return zero, err
	}

	if err := s.machine.Complete(); err != nil {
		return out, err
	}
	s.load(nil)
	return out, nil
}

// pending returns the full draft and the subset that differs from what the form opened with.
func (s *Session[T]) pending() (validation.Draft, validation.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft := maps.Clone(s.draft)
	changed := validation.Draft{}
	for k, v := range s.draft {
		if old, ok := s.base[k]; !ok || old != v {
			changed[k] = v
		}
	}
	return draft, changed
}

func (s *Session[T]) recordFailure(err error) {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.errors == nil {
		s.errors = map[string]string{}
	}
	maps.Copy(s.errors, verr.Fields)
}
