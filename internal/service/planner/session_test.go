package planner

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nillow/booking-api/internal/model"
)

func newAppointment(status model.AppointmentStatus) *model.Appointment {
	apt := &model.Appointment{Status: status}
	apt.ID = uuid.New()
	return apt
}

func TestSessionOpenDetail(t *testing.T) {
	apt := newAppointment(model.AppointmentStatusScheduled)
	s := NewSession([]*model.Appointment{apt})

	s.OpenDetail(apt.ID)
	assert.True(t, s.DetailOpen())
	require.NotNil(t, s.Selected())
	assert.Equal(t, apt.ID, s.Selected().ID)

	// Opening twice is the same as once.
	s.OpenDetail(apt.ID)
	assert.True(t, s.DetailOpen())
	assert.Equal(t, apt.ID, s.Selected().ID)
}

func TestSessionOpenDetailUnknownIDIsNoop(t *testing.T) {
	s := NewSession(nil)
	s.OpenDetail(uuid.New())
	assert.False(t, s.DetailOpen())
	assert.Nil(t, s.Selected())
}

func TestSessionCloseDetailClearsSelectionAfterGrace(t *testing.T) {
	apt := newAppointment(model.AppointmentStatusScheduled)
	s := NewSession([]*model.Appointment{apt})

	s.OpenDetail(apt.ID)
	s.CloseDetail()

	// Selection survives the grace period so a closing view stays populated.
	assert.False(t, s.DetailOpen())
	assert.NotNil(t, s.Selected())

	assert.Eventually(t, func() bool {
		return s.Selected() == nil
	}, time.Second, 10*time.Millisecond)
}

func TestSessionReopenBeforeGraceKeepsSelection(t *testing.T) {
	apt := newAppointment(model.AppointmentStatusScheduled)
	s := NewSession([]*model.Appointment{apt})

	s.OpenDetail(apt.ID)
	s.CloseDetail()
	s.OpenDetail(apt.ID)

	time.Sleep(closeGrace + 100*time.Millisecond)
	assert.True(t, s.DetailOpen())
	assert.NotNil(t, s.Selected())
}

func TestSessionCreateThenOpenDetail(t *testing.T) {
	s := NewSession(nil)

	s.OpenCreateForm(nil)
	open, mode := s.FormOpen()
	require.True(t, open)
	assert.Equal(t, FormModeCreate, mode)

	apt := newAppointment(model.AppointmentStatusScheduled)
	s.Create(apt)
	s.CloseForm()
	s.OpenDetail(apt.ID)

	assert.True(t, s.DetailOpen())
	require.NotNil(t, s.Selected())
	assert.Equal(t, apt.ID, s.Selected().ID)
}

func TestSessionOpenCreateFormWithSlot(t *testing.T) {
	s := NewSession(nil)
	slot := &model.TimeSlot{
		Start: time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC),
	}

	s.OpenCreateForm(slot)
	require.NotNil(t, s.SelectedSlot())
	assert.Equal(t, slot.Start, s.SelectedSlot().Start)

	s.CloseForm()
	assert.Nil(t, s.SelectedSlot())
}

func TestSessionCloseFormKeepsSelectionBehindDetail(t *testing.T) {
	apt := newAppointment(model.AppointmentStatusScheduled)
	s := NewSession([]*model.Appointment{apt})

	s.OpenDetail(apt.ID)
	s.OpenEditForm(apt.ID)
	s.CloseForm()

	// The detail view is still open, so the selection must survive.
	assert.True(t, s.DetailOpen())
	assert.NotNil(t, s.Selected())
}

func TestSessionUpdateRefreshesSelection(t *testing.T) {
	apt := newAppointment(model.AppointmentStatusScheduled)
	s := NewSession([]*model.Appointment{apt})
	s.OpenDetail(apt.ID)

	edited := &model.Appointment{Status: apt.Status, CustomerName: "Dana"}
	edited.ID = apt.ID
	s.Update(edited)

	require.NotNil(t, s.Selected())
	assert.Equal(t, "Dana", s.Selected().CustomerName)
}

func TestSessionRemoveClosesDetail(t *testing.T) {
	apt := newAppointment(model.AppointmentStatusScheduled)
	s := NewSession([]*model.Appointment{apt})
	s.OpenDetail(apt.ID)

	s.Remove(apt.ID)
	assert.False(t, s.DetailOpen())
	assert.Nil(t, s.Selected())
	assert.Empty(t, s.Appointments())
}

func TestSessionSetStatusAppliesGuards(t *testing.T) {
	apt := newAppointment(model.AppointmentStatusScheduled)
	s := NewSession([]*model.Appointment{apt})

	err := s.SetStatus(apt.ID, model.AppointmentStatusInProgress)
	assert.ErrorIs(t, err, model.ErrBeforeImageRequired)
	assert.Equal(t, model.AppointmentStatusScheduled, s.Appointments()[0].Status)

	s.AttachBeforePhoto(apt.ID, "https://img/before.jpg")
	require.NoError(t, s.SetStatus(apt.ID, model.AppointmentStatusInProgress))
	assert.Equal(t, model.AppointmentStatusInProgress, s.Appointments()[0].Status)

	err = s.SetStatus(apt.ID, model.AppointmentStatusCompleted)
	assert.ErrorIs(t, err, model.ErrAfterImageRequired)

	s.AttachAfterPhoto(apt.ID, "https://img/after.jpg")
	require.NoError(t, s.SetStatus(apt.ID, model.AppointmentStatusCompleted))
}

func TestSessionSetStatusUnknownIDIsNoop(t *testing.T) {
	s := NewSession(nil)
	assert.NoError(t, s.SetStatus(uuid.New(), model.AppointmentStatusCancelled))
}

func TestSessionCancel(t *testing.T) {
	apt := newAppointment(model.AppointmentStatusScheduled)
	s := NewSession([]*model.Appointment{apt})
	require.NoError(t, s.Cancel(apt.ID))
	assert.Equal(t, model.AppointmentStatusCancelled, s.Appointments()[0].Status)
}

func TestSessionReplaceKeepsSurvivingSelection(t *testing.T) {
	apt := newAppointment(model.AppointmentStatusScheduled)
	s := NewSession([]*model.Appointment{apt})
	s.OpenDetail(apt.ID)

	fresh := &model.Appointment{Status: apt.Status, CustomerName: "Sam"}
	fresh.ID = apt.ID
	s.Replace([]*model.Appointment{fresh})

	require.NotNil(t, s.Selected())
	assert.Equal(t, "Sam", s.Selected().CustomerName)
	assert.True(t, s.DetailOpen())
}

func TestSessionReplaceDropsDeadSelection(t *testing.T) {
	apt := newAppointment(model.AppointmentStatusScheduled)
	s := NewSession([]*model.Appointment{apt})
	s.OpenDetail(apt.ID)

	s.Replace(nil)
	assert.Nil(t, s.Selected())
	assert.False(t, s.DetailOpen())
}
