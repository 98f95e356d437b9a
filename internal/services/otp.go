package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const otpTTL = 10 * time.Minute

// generateOTP draws a uniformly random 6-digit code (100000-999999) and
// returns it with its absolute expiry.
func generateOTP() (string, time.Time, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate OTP: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64()+100000)
	return code, time.Now().Add(otpTTL), nil
}
