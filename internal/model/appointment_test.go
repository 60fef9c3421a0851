package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name        string
		status      AppointmentStatus
		beforeImage string
		afterImage  string
		target      AppointmentStatus
		wantErr     error
	}{
		{
			name:    "start requires before photo",
			status:  AppointmentStatusScheduled,
			target:  AppointmentStatusInProgress,
			wantErr: ErrBeforeImageRequired,
		},
		{
			name:        "start with before photo",
			status:      AppointmentStatusScheduled,
			beforeImage: "https://img/before.jpg",
			target:      AppointmentStatusInProgress,
		},
		{
			name:        "complete requires after photo",
			status:      AppointmentStatusInProgress,
			beforeImage: "https://img/before.jpg",
			target:      AppointmentStatusCompleted,
			wantErr:     ErrAfterImageRequired,
		},
		{
			name:        "complete with after photo",
			status:      AppointmentStatusInProgress,
			beforeImage: "https://img/before.jpg",
			afterImage:  "https://img/after.jpg",
			target:      AppointmentStatusCompleted,
		},
		{
			name:   "cancel from scheduled",
			status: AppointmentStatusScheduled,
			target: AppointmentStatusCancelled,
		},
		{
			name:    "cancel from in_progress rejected",
			status:  AppointmentStatusInProgress,
			target:  AppointmentStatusCancelled,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "completed is absorbing",
			status:  AppointmentStatusCompleted,
			target:  AppointmentStatusScheduled,
			wantErr: ErrAppointmentFinal,
		},
		{
			name:    "cancelled is absorbing",
			status:  AppointmentStatusCancelled,
			target:  AppointmentStatusInProgress,
			wantErr: ErrAppointmentFinal,
		},
		{
			name:   "same status is a no-op",
			status: AppointmentStatusCompleted,
			target: AppointmentStatusCompleted,
		},
		{
			name:    "skipping in_progress rejected",
			status:  AppointmentStatusScheduled,
			target:  AppointmentStatusCompleted,
			wantErr: ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apt := &Appointment{
				Status:      tt.status,
				BeforeImage: tt.beforeImage,
				AfterImage:  tt.afterImage,
			}
			err := CanTransition(apt, tt.target)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanTransitionLeavesAppointmentUnchanged(t *testing.T) {
	apt := &Appointment{Status: AppointmentStatusScheduled}
	err := CanTransition(apt, AppointmentStatusInProgress)
	require.Error(t, err)
	assert.Equal(t, AppointmentStatusScheduled, apt.Status)
}

func TestDeriveEndTime(t *testing.T) {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run("sums service durations", func(t *testing.T) {
		end := DeriveEndTime(start, []AppointmentService{
			{DurationMinutes: 45},
			{DurationMinutes: 30},
		})
		assert.Equal(t, start.Add(75*time.Minute), end)
	})

	t.Run("default duration without services", func(t *testing.T) {
		end := DeriveEndTime(start, nil)
		assert.Equal(t, start.Add(DefaultAppointmentDuration), end)
	})

	t.Run("ignores non-positive durations", func(t *testing.T) {
		end := DeriveEndTime(start, []AppointmentService{
			{DurationMinutes: 0},
			{DurationMinutes: -15},
		})
		assert.Equal(t, start.Add(DefaultAppointmentDuration), end)
	})

	t.Run("never before start", func(t *testing.T) {
		end := DeriveEndTime(start, []AppointmentService{{DurationMinutes: 10}})
		assert.False(t, end.Before(start))
	})
}

func TestIsFinal(t *testing.T) {
	assert.True(t, AppointmentStatusCompleted.IsFinal())
	assert.True(t, AppointmentStatusCancelled.IsFinal())
	assert.False(t, AppointmentStatusScheduled.IsFinal())
	assert.False(t, AppointmentStatusInProgress.IsFinal())
}
