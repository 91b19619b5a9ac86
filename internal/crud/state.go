package crud

import (
	"github.com/monocle-dev/catalog/internal/listing"
	"github.com/monocle-dev/catalog/internal/validation"
)

type Mode string

const (
	Idle             Mode = "idle"
	Creating         Mode = "creating"
	Editing          Mode = "editing"
	ConfirmingDelete Mode = "confirming_delete"
)

// FormState is the create/edit modal. The zero RecordID means a new record.
type FormState[F any] struct {
	Form      F                 `json:"form"`
	Errors    validation.Errors `json:"errors"`
	IsEditing bool              `json:"is_editing"`
	RecordID  uint              `json:"record_id,omitempty"`
	ShowModal bool              `json:"show_modal"`
}

// Reset empties the form, its errors and the editing flag.
func (f *FormState[F]) Reset(blank F) {
	*f = FormState[F]{Form: blank, Errors: validation.Errors{}}
}

// DeleteState holds a pending delete. Name is captured when the
// confirmation opens and is not re-read afterwards.
type DeleteState struct {
	Show bool   `json:"show_modal"`
	ID   uint   `json:"id,omitempty"`
	Name string `json:"name"`
}

func (d *DeleteState) Reset() {
	*d = DeleteState{}
}

// State is everything an interactive page remembers between requests for
// one principal.
type State[F any] struct {
	Mode    Mode          `json:"mode"`
	Form    FormState[F]  `json:"form_state"`
	Delete  DeleteState   `json:"delete"`
	Flash   string        `json:"flash,omitempty"`
	Listing listing.State `json:"listing"`
}

func (s *State[F]) syncMode() {
	switch {
	case s.Delete.Show:
		s.Mode = ConfirmingDelete
	case s.Form.ShowModal && s.Form.IsEditing:
		s.Mode = Editing
	case s.Form.ShowModal:
		s.Mode = Creating
	default:
		s.Mode = Idle
	}
}

// TakeFlash returns the pending flash message and clears it.
func (s *State[F]) TakeFlash() string {
	msg := s.Flash
	s.Flash = ""
	return msg
}
