package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotOverlaps(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	slot := Slot{
		ID:      1,
		StartAt: base,
		EndAt:   base.Add(time.Hour),
	}

	t.Run("FullyInside", func(t *testing.T) {
		assert.True(t, slot.Overlaps(base.Add(15*time.Minute), base.Add(30*time.Minute)))
	})

	t.Run("PartialOverlapLeft", func(t *testing.T) {
		assert.True(t, slot.Overlaps(base.Add(-30*time.Minute), base.Add(30*time.Minute)))
	})

	t.Run("PartialOverlapRight", func(t *testing.T) {
		assert.True(t, slot.Overlaps(base.Add(30*time.Minute), base.Add(90*time.Minute)))
	})

	t.Run("TouchingBoundariesDoNotOverlap", func(t *testing.T) {
		assert.False(t, slot.Overlaps(base.Add(-time.Hour), base))
		assert.False(t, slot.Overlaps(base.Add(time.Hour), base.Add(2*time.Hour)))
	})

	t.Run("Disjoint", func(t *testing.T) {
		assert.False(t, slot.Overlaps(base.Add(2*time.Hour), base.Add(3*time.Hour)))
	})
}

func TestSlotLifecycle(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	slot := Slot{StartAt: base, EndAt: base.Add(time.Hour)}

	t.Run("BeforeStart", func(t *testing.T) {
		assert.False(t, slot.HasStarted(base.Add(-time.Minute)))
		assert.False(t, slot.HasEnded(base.Add(-time.Minute)))
	})

	t.Run("AtStart", func(t *testing.T) {
		assert.True(t, slot.HasStarted(base))
	})

	t.Run("AtEnd", func(t *testing.T) {
		assert.True(t, slot.HasEnded(base.Add(time.Hour)))
	})
}

func TestIntervalOverlaps(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	first := Interval{StartAt: base, EndAt: base.Add(time.Hour)}

	t.Run("BackToBackAllowed", func(t *testing.T) {
		second := Interval{StartAt: base.Add(time.Hour), EndAt: base.Add(2 * time.Hour)}
		assert.False(t, first.Overlaps(second))
		assert.False(t, second.Overlaps(first))
	})

	t.Run("OverlappingDetectedBothWays", func(t *testing.T) {
		second := Interval{StartAt: base.Add(30 * time.Minute), EndAt: base.Add(90 * time.Minute)}
		assert.True(t, first.Overlaps(second))
		assert.True(t, second.Overlaps(first))
	})
}

func TestSlotAvailabilityIsBookable(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	slot := Slot{StartAt: base, EndAt: base.Add(time.Hour)}

	t.Run("FreeFutureSlot", func(t *testing.T) {
		a := SlotAvailability{Slot: slot}
		assert.True(t, a.IsBookable(base.Add(-time.Hour)))
	})

	t.Run("ReservedSlot", func(t *testing.T) {
		status := StatusPending
		a := SlotAvailability{Slot: slot, Reserved: true, ReservationStatus: &status}
		assert.False(t, a.IsBookable(base.Add(-time.Hour)))
	})

	t.Run("StartedSlot", func(t *testing.T) {
		a := SlotAvailability{Slot: slot}
		assert.False(t, a.IsBookable(base))
	})
}
