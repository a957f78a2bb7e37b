package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.example.co",
		"name+tag@example.io",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@no-local-part.com",
		"user@",
		"user@no-tld",
		"user @example.com",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestMissingFields(t *testing.T) {
	missing := MissingFields(map[string]string{
		"name":    "Ashwagandha",
		"sku":     "",
		"price":   "",
		"status":  "Active",
		"country": "",
	})
	assert.Equal(t, []string{"country", "price", "sku"}, missing)
}

func TestMissingFieldsAllPresent(t *testing.T) {
	assert.Empty(t, MissingFields(map[string]string{"email": "user@example.com"}))
}
