package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.Regexp(t, `^\d{6}$`, code)
	}
}

func TestOTPExpired(t *testing.T) {
	assert.False(t, OTPExpired(time.Now().Add(OTPValidity)))
	assert.True(t, OTPExpired(time.Now().Add(-time.Second)))
}
