package get_property_viewings

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	t.Run("AllParams", func(t *testing.T) {
		r := httptest.NewRequest("GET",
			"/properties/7/viewings?slotId=3&from=2025-06-01T09:00:00Z&to=2025-06-01T18:00:00Z&status=confirmed&includeTerminal=true", nil)

		req, err := parseFilter(r, 100, 7)
		require.NoError(t, err)

		assert.Equal(t, int64(100), req.UserID)
		assert.Equal(t, int64(7), req.PropertyID)
		require.NotNil(t, req.SlotID)
		assert.Equal(t, int64(3), *req.SlotID)
		require.NotNil(t, req.From)
		assert.True(t, req.From.Equal(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)))
		require.NotNil(t, req.To)
		assert.True(t, req.To.Equal(time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)))
		require.NotNil(t, req.Status)
		assert.Equal(t, "confirmed", *req.Status)
		assert.True(t, req.IncludeTerminal)
	})

	t.Run("NoParams", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/properties/7/viewings", nil)

		req, err := parseFilter(r, 100, 7)
		require.NoError(t, err)

		assert.Nil(t, req.SlotID)
		assert.Nil(t, req.From)
		assert.Nil(t, req.To)
		assert.Nil(t, req.Status)
		assert.False(t, req.IncludeTerminal)
	})

	t.Run("BadSlotID", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/properties/7/viewings?slotId=abc", nil)

		_, err := parseFilter(r, 100, 7)
		assert.Error(t, err)
	})

	t.Run("BadFrom", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/properties/7/viewings?from=yesterday", nil)

		_, err := parseFilter(r, 100, 7)
		assert.Error(t, err)
	})
}
