// Package planner holds the interaction state of one scheduling dashboard:
// the working copy of the appointment list, the current selection, and which
// detail view or form is open. A Session is constructed per dashboard and
// passed to whatever needs it; nothing here is a process-wide singleton.
package planner

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nillow/booking-api/internal/model"
)

// FormMode distinguishes the create and edit variants of the booking form.
type FormMode string

const (
	FormModeCreate FormMode = "create"
	FormModeEdit   FormMode = "edit"
)

// closeGrace delays clearing the selection on CloseDetail so a closing view
// does not flash empty mid-animation.
const closeGrace = 300 * time.Millisecond

type Session struct {
	mu sync.Mutex

	appointments []*model.Appointment
	selected     *model.Appointment
	selectedSlot *model.TimeSlot

	detailOpen bool
	formOpen   bool
	formMode   FormMode

	// clearGen invalidates a pending deferred selection clear when the
	// detail view is reopened before the grace period elapses.
	clearGen uint64
}

// NewSession builds a session over an initial appointment list, typically
// the result of the dashboard's first range query.
func NewSession(appointments []*model.Appointment) *Session {
	s := &Session{}
	s.appointments = append(s.appointments, appointments...)
	return s
}

// Replace swaps the whole working copy, keeping the selection pointed at the
// fresh row when its id survives the reload.
func (s *Session) Replace(appointments []*model.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appointments = append(s.appointments[:0:0], appointments...)
	if s.selected != nil {
		s.selected = s.findLocked(s.selected.ID)
		if s.selected == nil {
			s.detailOpen = false
		}
	}
}

// OpenDetail selects the appointment and opens its detail view. Unknown ids
// are ignored. Calling it twice with the same id is equivalent to once.
func (s *Session) OpenDetail(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	apt := s.findLocked(id)
	if apt == nil {
		return
	}
	s.clearGen++
	s.selected = apt
	s.detailOpen = true
}

// CloseDetail closes the detail view. The selection is cleared after a short
// grace period unless the view is reopened first.
func (s *Session) CloseDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.detailOpen = false
	s.clearGen++
	gen := s.clearGen

	time.AfterFunc(closeGrace, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.clearGen == gen && !s.detailOpen {
			s.selected = nil
		}
	})
}

// OpenCreateForm opens the booking form in create mode, optionally seeded
// with a pre-chosen time slot from a grid click.
func (s *Session) OpenCreateForm(slot *model.TimeSlot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearGen++
	s.selected = nil
	s.selectedSlot = slot
	s.formMode = FormModeCreate
	s.formOpen = true
}

// OpenEditForm opens the form in edit mode for the appointment. No-op on a
// missing id.
func (s *Session) OpenEditForm(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	apt := s.findLocked(id)
	if apt == nil {
		return
	}
	s.clearGen++
	s.selected = apt
	s.formMode = FormModeEdit
	s.formOpen = true
}

// CloseForm closes the form. The selection survives when the detail view is
// still open behind the form, so closing an edit form does not blank an
// open detail view.
func (s *Session) CloseForm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.formOpen = false
	s.selectedSlot = nil
	if !s.detailOpen {
		s.selected = nil
	}
}

// Create appends an appointment to the working copy.
func (s *Session) Create(apt *model.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments = append(s.appointments, apt)
}

// Update replaces the entry with a matching id and refreshes the selection
// when it points at that entry, so open views show the edit immediately.
func (s *Session) Update(apt *model.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.appointments {
		if existing.ID == apt.ID {
			s.appointments[i] = apt
			if s.selected != nil && s.selected.ID == apt.ID {
				s.selected = apt
			}
			return
		}
	}
}

// Remove drops the entry. An open detail view for it is closed.
func (s *Session) Remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.appointments[:0]
	for _, apt := range s.appointments {
		if apt.ID != id {
			kept = append(kept, apt)
		}
	}
	s.appointments = kept

	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
		s.detailOpen = false
	}
}

// SetStatus moves the entry through the status machine, applying the same
// guards as the server. The entry is untouched when the guard rejects.
func (s *Session) SetStatus(id uuid.UUID, status model.AppointmentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	apt := s.findLocked(id)
	if apt == nil {
		return nil
	}

	if err := model.CanTransition(apt, status); err != nil {
		return err
	}
	apt.Status = status
	return nil
}

// Cancel is SetStatus to cancelled.
func (s *Session) Cancel(id uuid.UUID) error {
	return s.SetStatus(id, model.AppointmentStatusCancelled)
}

// AttachBeforePhoto stores the before-photo reference on the entry.
func (s *Session) AttachBeforePhoto(id uuid.UUID, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if apt := s.findLocked(id); apt != nil {
		apt.BeforeImage = url
	}
}

// AttachAfterPhoto stores the after-photo reference on the entry.
func (s *Session) AttachAfterPhoto(id uuid.UUID, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if apt := s.findLocked(id); apt != nil {
		apt.AfterImage = url
	}
}

// Appointments returns a snapshot of the working copy.
func (s *Session) Appointments() []*model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.Appointment(nil), s.appointments...)
}

// Selected returns the current selection, or nil.
func (s *Session) Selected() *model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// SelectedSlot returns the pre-chosen slot for a create form, or nil.
func (s *Session) SelectedSlot() *model.TimeSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedSlot
}

// DetailOpen reports whether the detail view is open.
func (s *Session) DetailOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detailOpen
}

// FormOpen reports whether the booking form is open, and in which mode.
func (s *Session) FormOpen() (bool, FormMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.formOpen, s.formMode
}

func (s *Session) findLocked(id uuid.UUID) *model.Appointment {
	for _, apt := range s.appointments {
		if apt.ID == id {
			return apt
		}
	}
	return nil
}
