package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog is an editorial article, optionally tied to a product. The cover
// image is required.
type Blog struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string              `bson:"title" json:"title"`
	Content   string              `bson:"content" json:"content"`
	Author    string              `bson:"author,omitempty" json:"author,omitempty"`
	Image     string              `bson:"image" json:"image"`
	Product   *primitive.ObjectID `bson:"product,omitempty" json:"product,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Review is a customer rating and comment on a product.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProductID primitive.ObjectID `bson:"product" json:"product"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FAQ is a question/answer pair, optionally tied to a product.
type FAQ struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Question  string              `bson:"question" json:"question"`
	Answer    string              `bson:"answer" json:"answer"`
	Product   *primitive.ObjectID `bson:"product,omitempty" json:"product,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Benefit highlights a product advantage; the illustration is required.
type Benefit struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image" json:"image"`
	ProductID   primitive.ObjectID `bson:"product" json:"product"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Video is an embedded product video with its thumbnail.
type Video struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string              `bson:"title" json:"title"`
	VideoURL  string              `bson:"videoUrl" json:"videoUrl"`
	Thumbnail string              `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Product   *primitive.ObjectID `bson:"product,omitempty" json:"product,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}
