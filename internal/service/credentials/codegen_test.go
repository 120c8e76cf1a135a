package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
)

func TestGenerateAccessCode(t *testing.T) {
	t.Run("LengthAndDigitsOnly", func(t *testing.T) {
		code, err := generateAccessCode(domain.AccessCodeLength)
		require.NoError(t, err)
		assert.Len(t, code, domain.AccessCodeLength)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "unexpected character %q", c)
		}
	})

	t.Run("CodesVary", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			code, err := generateAccessCode(domain.AccessCodeLength)
			require.NoError(t, err)
			seen[code] = true
		}
		// 50 коллизий подряд на 10^8 вариантах - признак сломанного генератора
		assert.Greater(t, len(seen), 1)
	})
}
