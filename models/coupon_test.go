package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCouponDiscountPercentage(t *testing.T) {
	c := &Coupon{DiscountType: DiscountTypePercentage, DiscountValue: 20}
	assert.InDelta(t, 30.0, c.Discount(150), 0.001)
	assert.InDelta(t, 0.0, c.Discount(0), 0.001)
}

func TestCouponDiscountFlat(t *testing.T) {
	c := &Coupon{DiscountType: DiscountTypeFlat, DiscountValue: 50}
	assert.InDelta(t, 50.0, c.Discount(150), 0.001)

	// Flat discounts never push the total below zero.
	assert.InDelta(t, 30.0, c.Discount(30), 0.001)
}

func TestCouponDiscountUnknownType(t *testing.T) {
	c := &Coupon{DiscountType: "BOGO", DiscountValue: 50}
	assert.Zero(t, c.Discount(150))
}

func TestCouponUsable(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	c := &Coupon{
		ValidFrom:  now.Add(-24 * time.Hour),
		ValidUntil: now.Add(24 * time.Hour),
		UsageLimit: 2,
		UsedCount:  1,
	}
	assert.True(t, c.Usable(now))

	c.UsedCount = 2
	assert.False(t, c.Usable(now))

	c.UsedCount = 0
	assert.False(t, c.Usable(now.Add(-48*time.Hour)))
	assert.False(t, c.Usable(now.Add(48*time.Hour)))
}

func TestCouponUsableUnlimited(t *testing.T) {
	now := time.Now()
	c := &Coupon{
		ValidFrom:  now.Add(-time.Hour),
		ValidUntil: now.Add(time.Hour),
		UsageLimit: 0,
		UsedCount:  10000,
	}
	assert.True(t, c.Usable(now))
}

func TestCartSubtotal(t *testing.T) {
	cart := &Cart{Items: []CartItem{
		{Quantity: 2, Price: 29.99},
		{Quantity: 1, Price: 14.50},
	}}
	assert.InDelta(t, 74.48, cart.Subtotal(), 0.001)

	empty := &Cart{}
	assert.Zero(t, empty.Subtotal())
}
