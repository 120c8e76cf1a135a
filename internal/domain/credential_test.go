package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessCredentialWindow(t *testing.T) {
	from := time.Date(2025, 6, 1, 9, 45, 0, 0, time.UTC)
	until := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)
	cred := AccessCredential{Code: "12345678", ValidFrom: from, ValidUntil: until}

	t.Run("BeforeWindow", func(t *testing.T) {
		assert.False(t, cred.InWindow(from.Add(-time.Second)))
		assert.False(t, cred.IsRevealable(from.Add(-time.Second)))
	})

	t.Run("WindowBoundariesInclusive", func(t *testing.T) {
		assert.True(t, cred.InWindow(from))
		assert.True(t, cred.InWindow(until))
	})

	t.Run("InsideWindow", func(t *testing.T) {
		assert.True(t, cred.IsRevealable(from.Add(30*time.Minute)))
	})

	t.Run("AfterWindow", func(t *testing.T) {
		assert.False(t, cred.InWindow(until.Add(time.Second)))
	})

	t.Run("RevokedNeverRevealable", func(t *testing.T) {
		revokedAt := from.Add(time.Minute)
		revoked := cred
		revoked.RevokedAt = &revokedAt
		assert.True(t, revoked.InWindow(from.Add(30*time.Minute)))
		assert.False(t, revoked.IsRevealable(from.Add(30*time.Minute)))
	})
}

func TestAccessWindowPolicy(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	slot := Slot{StartAt: start, EndAt: start.Add(time.Hour)}

	t.Run("DefaultGrace", func(t *testing.T) {
		from, until := DefaultAccessWindowPolicy().WindowFor(&slot)
		assert.Equal(t, start.Add(-DefaultGraceBeforeMinutes*time.Minute), from)
		assert.Equal(t, slot.EndAt, until)
	})

	t.Run("CustomGrace", func(t *testing.T) {
		policy := AccessWindowPolicy{GraceBefore: 30 * time.Minute}
		from, until := policy.WindowFor(&slot)
		assert.Equal(t, start.Add(-30*time.Minute), from)
		assert.Equal(t, slot.EndAt, until)
	})
}
