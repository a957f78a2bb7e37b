package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coupon discount types.
const (
	DiscountTypePercentage = "Percentage"
	DiscountTypeFlat       = "Flat"
)

// Coupon is a discount code. Code uniqueness is enforced by a unique index;
// UsageLimit of zero means unlimited.
type Coupon struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Code          string               `bson:"code" json:"code"`
	DiscountType  string               `bson:"discountType" json:"discountType"`
	DiscountValue float64              `bson:"discountValue" json:"discountValue"`
	ValidFrom     time.Time            `bson:"validFrom" json:"validFrom"`
	ValidUntil    time.Time            `bson:"validUntil" json:"validUntil"`
	UsageLimit    int                  `bson:"usageLimit" json:"usageLimit"`
	UsedCount     int                  `bson:"usedCount" json:"usedCount"`
	Products      []primitive.ObjectID `bson:"products,omitempty" json:"products,omitempty"`
	Categories    []primitive.ObjectID `bson:"categories,omitempty" json:"categories,omitempty"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Discount computes the amount taken off the given subtotal.
func (c *Coupon) Discount(subtotal float64) float64 {
	switch c.DiscountType {
	case DiscountTypePercentage:
		return subtotal * c.DiscountValue / 100
	case DiscountTypeFlat:
		if c.DiscountValue > subtotal {
			return subtotal
		}
		return c.DiscountValue
	}
	return 0
}

// Usable reports whether the coupon is inside its validity window and under
// its usage limit at the given time.
func (c *Coupon) Usable(now time.Time) bool {
	if now.Before(c.ValidFrom) || now.After(c.ValidUntil) {
		return false
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return false
	}
	return true
}
