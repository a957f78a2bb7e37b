package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"blushbelle-api/models"
	"blushbelle-api/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReviewController handles product reviews.
type ReviewController struct {
	Collection        *mongo.Collection
	ProductCollection *mongo.Collection
}

// NewReviewController creates a new ReviewController.
func NewReviewController(db *mongo.Database) *ReviewController {
	return &ReviewController{
		Collection:        db.Collection("reviews"),
		ProductCollection: db.Collection("products"),
	}
}

// CreateReview records a customer review for a product.
func (rc *ReviewController) CreateReview(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Product string `json:"product"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	missing := utils.MissingFields(map[string]string{
		"product": payload.Product,
		"name":    payload.Name,
		"comment": payload.Comment,
	})
	if len(missing) > 0 {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "), nil)
		return
	}
	if payload.Rating < 1 || payload.Rating > 5 {
		utils.RespondError(w, http.StatusBadRequest, "Rating must be between 1 and 5", nil)
		return
	}

	productID, err := primitive.ObjectIDFromHex(payload.Product)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if count, err := rc.ProductCollection.CountDocuments(ctx, bson.M{"_id": productID}); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Database error", err)
		return
	} else if count == 0 {
		utils.RespondError(w, http.StatusNotFound, "Product not found", nil)
		return
	}

	now := time.Now()
	review := models.Review{
		ProductID: productID,
		Name:      payload.Name,
		Email:     payload.Email,
		Rating:    payload.Rating,
		Comment:   payload.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := rc.Collection.InsertOne(ctx, review)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error creating review", err)
		return
	}
	review.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondSuccess(w, http.StatusCreated, review)
}

// GetReviewsByProduct lists reviews for one product; zero reviews answers
// 404 (the storefront hides the panel on that signal).
func (rc *ReviewController) GetReviewsByProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	productID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cursor, err := rc.Collection.Find(ctx, bson.M{"product": productID})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching reviews", err)
		return
	}

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading reviews", err)
		return
	}
	if len(reviews) == 0 {
		utils.RespondError(w, http.StatusNotFound, "No reviews found for this product", nil)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, reviews)
}

// GetReviews lists all reviews (admin only).
func (rc *ReviewController) GetReviews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cursor, err := rc.Collection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching reviews", err)
		return
	}

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading reviews", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, reviews)
}

// DeleteReview removes a review (admin only).
func (rc *ReviewController) DeleteReview(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid review ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := rc.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting review", err)
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Review not found", nil)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Review deleted successfully"})
}
