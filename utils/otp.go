package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// OTPValidity is the window within which a one-time code may be used.
const OTPValidity = 10 * time.Minute

// GenerateOTP returns a 6-digit numeric one-time code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// OTPExpired reports whether a stored code's expiration has passed.
func OTPExpired(expiresAt time.Time) bool {
	return time.Now().After(expiresAt)
}
