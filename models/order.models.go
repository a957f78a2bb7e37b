package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment methods.
const (
	PaymentMethodOnline = "Online"
	PaymentMethodCOD    = "CashOnDelivery"
)

// Payment statuses.
const (
	PaymentStatusPending  = "Pending"
	PaymentStatusPaid     = "Paid"
	PaymentStatusFailed   = "Failed"
	PaymentStatusRefunded = "Refunded"
)

// Order statuses, in fulfillment sequence (Cancelled excepted).
const (
	OrderStatusPending        = "Pending"
	OrderStatusConfirmed      = "Confirmed"
	OrderStatusPacked         = "Packed"
	OrderStatusShipped        = "Shipped"
	OrderStatusOutForDelivery = "OutForDelivery"
	OrderStatusDelivered      = "Delivered"
	OrderStatusCancelled      = "Cancelled"
)

// ValidOrderStatus reports whether s is one of the known order states.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPacked,
		OrderStatusShipped, OrderStatusOutForDelivery,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order finalizes a cart against an address. Cart, address and optional
// coupon are references resolved at read time.
type Order struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	InvoiceNo     string              `bson:"invoiceNo" json:"invoiceNo"`
	UserID        primitive.ObjectID  `bson:"user" json:"user"`
	CartID        primitive.ObjectID  `bson:"cart" json:"cart"`
	AddressID     primitive.ObjectID  `bson:"address" json:"address"`
	CouponID      *primitive.ObjectID `bson:"coupon,omitempty" json:"coupon,omitempty"`
	TotalAmount   float64             `bson:"totalAmount" json:"totalAmount"`
	PaymentMethod string              `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus string              `bson:"paymentStatus" json:"paymentStatus"`
	OrderStatus   string              `bson:"orderStatus" json:"orderStatus"`
	OrderDate     time.Time           `bson:"orderDate" json:"orderDate"`
	DeliveryDate  time.Time           `bson:"deliveryDate,omitempty" json:"deliveryDate,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// PendingOrder is the client-held reference to an in-progress checkout,
// carried in an unsigned cookie. It is convenience state, not an
// authorization boundary.
type PendingOrder struct {
	CartID    string `json:"cartId"`
	AddressID string `json:"addressId"`
}
