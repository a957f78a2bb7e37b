package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShippingPrice maps an order-subtotal range to a shipping fee for a
// country/state combination. A nil MaxPrice means the range is unbounded
// above. Active rules for the same country/state must not overlap.
type ShippingPrice struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Country      string             `bson:"country" json:"country"`
	State        string             `bson:"state" json:"state"`
	MinPrice     float64            `bson:"minPrice" json:"minPrice"`
	MaxPrice     *float64           `bson:"maxPrice" json:"maxPrice"`
	Fee          float64            `bson:"fee" json:"fee"`
	DeliveryTime string             `bson:"deliveryTime" json:"deliveryTime"`
	Active       bool               `bson:"active" json:"active"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
