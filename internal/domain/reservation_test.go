package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservationStateMachine(t *testing.T) {
	t.Run("PendingIsActiveAndConfirmable", func(t *testing.T) {
		r := Reservation{Status: StatusPending}
		assert.True(t, r.IsActive())
		assert.False(t, r.IsTerminal())
		assert.True(t, r.CanBeConfirmed())
		assert.True(t, r.CanBeCancelled())
	})

	t.Run("ConfirmedIsActiveButNotConfirmable", func(t *testing.T) {
		r := Reservation{Status: StatusConfirmed}
		assert.True(t, r.IsActive())
		assert.False(t, r.CanBeConfirmed())
		assert.True(t, r.CanBeCancelled())
	})

	t.Run("CancelledIsTerminal", func(t *testing.T) {
		r := Reservation{Status: StatusCancelled}
		assert.False(t, r.IsActive())
		assert.True(t, r.IsTerminal())
		assert.False(t, r.CanBeConfirmed())
		assert.False(t, r.CanBeCancelled())
	})

	t.Run("CompletedIsTerminal", func(t *testing.T) {
		r := Reservation{Status: StatusCompleted}
		assert.True(t, r.IsTerminal())
		assert.False(t, r.CanBeCancelled())
	})
}
