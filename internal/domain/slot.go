package domain

import "time"

// Slot represents one published viewing interval for a property.
// Slots are immutable: replacing availability means revoking the slot
// and publishing a new one.
type Slot struct {
	ID         int64
	PropertyID int64
	OwnerID    int64
	StartAt    time.Time
	EndAt      time.Time
	CreatedAt  time.Time
}

// IsValid returns true if the slot interval is well-formed
func (s *Slot) IsValid() bool {
	return s.EndAt.After(s.StartAt)
}

// Overlaps returns true if the slot interval overlaps the given interval.
// Touching boundaries do not overlap: a slot ending exactly when another
// starts is allowed.
func (s *Slot) Overlaps(start, end time.Time) bool {
	return s.StartAt.Before(end) && s.EndAt.After(start)
}

// HasStarted returns true if the slot start time has passed
func (s *Slot) HasStarted(now time.Time) bool {
	return !now.Before(s.StartAt)
}

// HasEnded returns true if the slot end time has passed
func (s *Slot) HasEnded(now time.Time) bool {
	return !now.Before(s.EndAt)
}

// Interval is a requested viewing interval before it becomes a Slot
type Interval struct {
	StartAt time.Time
	EndAt   time.Time
}

// IsValid returns true if the interval is well-formed
func (i Interval) IsValid() bool {
	return i.EndAt.After(i.StartAt)
}

// Overlaps returns true if two intervals overlap (touching boundaries allowed)
func (i Interval) Overlaps(other Interval) bool {
	return i.StartAt.Before(other.EndAt) && i.EndAt.After(other.StartAt)
}

// SlotAvailability pairs a slot with the state of its active reservation,
// if any. Returned by availability listings; the access code is never
// part of this projection.
type SlotAvailability struct {
	Slot              Slot
	Reserved          bool
	ReservationStatus *ReservationStatus
}

// IsBookable returns true if the slot can still be reserved
func (a *SlotAvailability) IsBookable(now time.Time) bool {
	return !a.Reserved && !a.Slot.HasStarted(now)
}
