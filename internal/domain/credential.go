package domain

import "time"

// AccessCredential is the time-boxed lockbox code bound to exactly one
// confirmed reservation. The code is only readable through the gated
// reveal path while the validity window is open; it never appears on
// slot, reservation or property projections.
type AccessCredential struct {
	ID            int64
	ReservationID int64
	Code          string
	ValidFrom     time.Time
	ValidUntil    time.Time
	RevokedAt     *time.Time
	CreatedAt     time.Time
}

// IsRevoked returns true if the credential has been invalidated explicitly
func (c *AccessCredential) IsRevoked() bool {
	return c.RevokedAt != nil
}

// InWindow returns true if the given instant falls inside the validity
// window [ValidFrom, ValidUntil]
func (c *AccessCredential) InWindow(at time.Time) bool {
	return !at.Before(c.ValidFrom) && !at.After(c.ValidUntil)
}

// IsRevealable returns true if the code may be returned to the caller
func (c *AccessCredential) IsRevealable(at time.Time) bool {
	return !c.IsRevoked() && c.InWindow(at)
}

// AccessWindowPolicy defines how a credential validity window is derived
// from the reserved slot. The window opens GraceBefore ahead of the slot
// start and closes at the slot end.
type AccessWindowPolicy struct {
	GraceBefore time.Duration
}

// WindowFor computes the validity window for the given slot
func (p AccessWindowPolicy) WindowFor(slot *Slot) (validFrom, validUntil time.Time) {
	return slot.StartAt.Add(-p.GraceBefore), slot.EndAt
}

// DefaultAccessWindowPolicy returns the policy used when the configuration
// does not override the grace period
func DefaultAccessWindowPolicy() AccessWindowPolicy {
	return AccessWindowPolicy{GraceBefore: DefaultGraceBeforeMinutes * time.Minute}
}
