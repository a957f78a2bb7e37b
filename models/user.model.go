package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleUser       = "User"
	RoleSuperAdmin = "SuperAdmin"
)

// User account statuses.
const (
	StatusBlocked  = "Blocked"
	StatusPending  = "Pending"
	StatusInReview = "inReview"
	StatusActive   = "Active"
)

// User represents a customer or back-office account. Email uniqueness is
// enforced by a unique index on the users collection.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FullName string             `bson:"fullName" json:"fullName"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password,omitempty" json:"-"`
	Role     string             `bson:"role" json:"role"`
	Status   string             `bson:"status" json:"status"`
	Provider string             `bson:"provider,omitempty" json:"provider,omitempty"`

	OTP          string    `bson:"otp,omitempty" json:"-"`
	OTPExpiresAt time.Time `bson:"otpExpiresAt,omitempty" json:"-"`

	ResetToken          string    `bson:"resetToken,omitempty" json:"-"`
	ResetTokenExpiresAt time.Time `bson:"resetTokenExpiresAt,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Address is a delivery address owned by a user. Orders reference an address
// by id rather than embedding it.
type Address struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	FullName  string             `bson:"fullName" json:"fullName"`
	Phone     string             `bson:"phone" json:"phone"`
	Street    string             `bson:"street" json:"street"`
	City      string             `bson:"city" json:"city"`
	State     string             `bson:"state" json:"state"`
	Country   string             `bson:"country" json:"country"`
	ZipCode   string             `bson:"zipCode" json:"zipCode"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Wishlist holds the products a user has saved for later.
type Wishlist struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID   `bson:"user" json:"user"`
	Products  []primitive.ObjectID `bson:"products" json:"products"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}
