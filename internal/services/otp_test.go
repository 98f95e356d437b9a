package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, expiry, err := generateOTP()
		require.NoError(t, err)
		require.Regexp(t, `^[1-9][0-9]{5}$`, code, "codes are uniform in 100000..999999, never zero-padded")
		require.WithinDuration(t, time.Now().Add(10*time.Minute), expiry, 5*time.Second)
		seen[code] = true
	}
	require.Greater(t, len(seen), 1, "50 draws collapsing to one code means the generator is broken")
}
