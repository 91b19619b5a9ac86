package crud

import (
	"context"
	"errors"

	"github.com/monocle-dev/catalog/internal/listing"
	"github.com/monocle-dev/catalog/internal/validation"
)

var ErrNoPendingDelete = errors.New("no delete is awaiting confirmation")

// Store is the persistence side of one entity type. Create and Update
// validate before writing and return a *validation.Error when the form is
// rejected.
type Store[F any] interface {
	// Find returns the current form values of the record and its display name.
	Find(ctx context.Context, id uint) (F, string, error)
	Create(ctx context.Context, form F) error
	Update(ctx context.Context, id uint, form F) error
	Delete(ctx context.Context, id uint) error
}

type Messages struct {
	Created string
	Updated string
	Deleted string
}

// Manager runs the create/edit/delete workflow shared by every entity page.
type Manager[F any] struct {
	store    Store[F]
	blank    func() F
	messages Messages
}

func NewManager[F any](store Store[F], blank func() F, messages Messages) *Manager[F] {
	return &Manager[F]{
		store:    store,
		blank:    blank,
		messages: messages,
	}
}

func (m *Manager[F]) NewState() *State[F] {
	s := &State[F]{Listing: listing.NewState()}
	s.Form.Reset(m.blank())
	s.syncMode()
	return s
}

func (m *Manager[F]) OpenCreate(s *State[F]) {
	s.Form.Reset(m.blank())
	s.Form.ShowModal = true
	s.syncMode()
}

// OpenEdit loads the record into the form. A missing record leaves the
// state untouched and returns e.ErrNotFound.
func (m *Manager[F]) OpenEdit(ctx context.Context, s *State[F], id uint) error {
	form, _, err := m.store.Find(ctx, id)
	if err != nil {
		return err
	}

	s.Form.Reset(m.blank())
	s.Form.Form = form
	s.Form.IsEditing = true
	s.Form.RecordID = id
	s.Form.ShowModal = true
	s.syncMode()

	return nil
}

func (m *Manager[F]) CloseForm(s *State[F]) {
	s.Form.Reset(m.blank())
	s.syncMode()
}

// Save validates and commits the submitted form. On a validation failure
// the form stays open with the submitted values and every field error.
func (m *Manager[F]) Save(ctx context.Context, s *State[F], form F) error {
	s.Form.Form = form

	var err error
	if s.Form.IsEditing {
		err = m.store.Update(ctx, s.Form.RecordID, form)
	} else {
		err = m.store.Create(ctx, form)
	}

	if verr, ok := validation.As(err); ok {
		s.Form.Errors = verr.Fields
		s.Form.ShowModal = true
		s.syncMode()
		return err
	}
	if err != nil {
		return err
	}

	if s.Form.IsEditing {
		s.Flash = m.messages.Updated
	} else {
		s.Flash = m.messages.Created
	}

	s.Form.Reset(m.blank())
	s.syncMode()

	return nil
}

func (m *Manager[F]) ConfirmDelete(ctx context.Context, s *State[F], id uint) error {
	_, name, err := m.store.Find(ctx, id)
	if err != nil {
		return err
	}

	s.Delete = DeleteState{Show: true, ID: id, Name: name}
	s.syncMode()

	return nil
}

func (m *Manager[F]) CancelDelete(s *State[F]) {
	s.Delete.Reset()
	s.syncMode()
}

func (m *Manager[F]) Delete(ctx context.Context, s *State[F]) error {
	if !s.Delete.Show || s.Delete.ID == 0 {
		return ErrNoPendingDelete
	}

	if err := m.store.Delete(ctx, s.Delete.ID); err != nil {
		return err
	}

	s.Delete.Reset()
	s.Flash = m.messages.Deleted
	s.syncMode()

	return nil
}

// ClearFilters drops every listing filter and returns to the first page.
func (m *Manager[F]) ClearFilters(s *State[F]) {
	s.Listing.Clear()
}
