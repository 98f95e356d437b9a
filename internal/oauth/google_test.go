package oauth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/medimatch/medimatch-backend/internal/config"
)

func testClient(secret string) *GoogleClient {
	return NewGoogleClient(&config.Config{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleCallbackURL:  "http://localhost:8080/api/auth/google/callback",
		SessionSecret:      secret,
	})
}

func TestEnabled(t *testing.T) {
	require.True(t, testClient("s3cret").Enabled())
	require.False(t, NewGoogleClient(&config.Config{}).Enabled())
}

func TestStateRoundTrip(t *testing.T) {
	g := testClient("s3cret")

	authURL, err := g.AuthURL("doctor")
	require.NoError(t, err)
	require.Contains(t, authURL, "state=")

	state := g.signState("patient", "abcdef0123456789")
	userType, err := g.DecodeState(state)
	require.NoError(t, err)
	require.Equal(t, "patient", userType)
}

func TestDecodeStateRejectsTampering(t *testing.T) {
	g := testClient("s3cret")
	state := g.signState("patient", "abcdef0123456789")

	// Flipping the user type invalidates the signature.
	tampered := strings.Replace(state, "patient", "doctor", 1)
	_, err := g.DecodeState(tampered)
	require.ErrorIs(t, err, ErrBadState)

	_, err = g.DecodeState("not-even-close")
	require.ErrorIs(t, err, ErrBadState)

	_, err = g.DecodeState("")
	require.ErrorIs(t, err, ErrBadState)

	// A state signed under a different secret is rejected.
	other := testClient("other-secret").signState("patient", "abcdef0123456789")
	_, err = g.DecodeState(other)
	require.ErrorIs(t, err, ErrBadState)
}
