package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product statuses.
const (
	ProductStatusDraft    = "Draft"
	ProductStatusActive   = "Active"
	ProductStatusArchived = "Archived"
)

// Product is a catalog item. SKU uniqueness is enforced by a unique index on
// the products collection. Stock is required unless variant colors are
// declared, in which case per-variant availability lives with the variant.
type Product struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string               `bson:"name" json:"name"`
	Description   string               `bson:"description" json:"description"`
	SKU           string               `bson:"sku" json:"sku"`
	Price         float64              `bson:"price" json:"price"`
	SalePrice     float64              `bson:"salePrice,omitempty" json:"salePrice,omitempty"`
	Stock         int                  `bson:"stock" json:"stock"`
	VariantColors []string             `bson:"variantColors,omitempty" json:"variantColors,omitempty"`
	FeaturedImage string               `bson:"featuredImage" json:"featuredImage"`
	Images        []string             `bson:"images,omitempty" json:"images,omitempty"`
	Status        string               `bson:"status" json:"status"`
	Categories    []primitive.ObjectID `bson:"categories,omitempty" json:"categories,omitempty"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}
