package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCouponCode(t *testing.T) {
	assert.Equal(t, "SAVE10", normalizeCouponCode("SAVE10"))
	assert.Equal(t, "SAVE10", normalizeCouponCode("save10"))
	assert.Equal(t, "SAVE10", normalizeCouponCode(" Save10 "))
}

// A code entered lowercase at checkout must resolve to the same stored form
// the admin created it under, or apply and checkout disagree on validity.
func TestNormalizeCouponCodeAgreesAcrossPaths(t *testing.T) {
	stored := normalizeCouponCode("Summer-Sale")
	assert.Equal(t, stored, normalizeCouponCode("summer-sale"))
	assert.Equal(t, stored, normalizeCouponCode("SUMMER-SALE"))
}
