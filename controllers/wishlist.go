package controllers

import (
	"context"
	"net/http"
	"time"

	"blushbelle-api/models"
	"blushbelle-api/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WishlistController handles the authenticated user's saved products.
type WishlistController struct {
	Collection        *mongo.Collection
	ProductCollection *mongo.Collection
}

// NewWishlistController creates a new WishlistController.
func NewWishlistController(db *mongo.Database) *WishlistController {
	return &WishlistController{
		Collection:        db.Collection("wishlists"),
		ProductCollection: db.Collection("products"),
	}
}

// GetWishlist retrieves the session user's wishlist with products resolved.
func (wc *WishlistController) GetWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var wishlist models.Wishlist
	err := wc.Collection.FindOne(ctx, bson.M{"user": userID}).Decode(&wishlist)
	if err != nil {
		utils.RespondSuccess(w, http.StatusOK, []models.Product{})
		return
	}

	products := []models.Product{}
	if len(wishlist.Products) > 0 {
		cursor, err := wc.ProductCollection.Find(ctx, bson.M{"_id": bson.M{"$in": wishlist.Products}})
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Error resolving wishlist products", err)
			return
		}
		if err := cursor.All(ctx, &products); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Error resolving wishlist products", err)
			return
		}
	}

	utils.RespondSuccess(w, http.StatusOK, products)
}

// AddToWishlist saves a product, creating the wishlist on first use.
func (wc *WishlistController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var payload struct {
		Product string `json:"product"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	productID, err := primitive.ObjectIDFromHex(payload.Product)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if count, err := wc.ProductCollection.CountDocuments(ctx, bson.M{"_id": productID}); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Database error", err)
		return
	} else if count == 0 {
		utils.RespondError(w, http.StatusNotFound, "Product not found", nil)
		return
	}

	now := time.Now()
	_, err = wc.Collection.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{
			"$addToSet":    bson.M{"products": productID},
			"$set":         bson.M{"updatedAt": now},
			"$setOnInsert": bson.M{"user": userID, "createdAt": now},
		},
		optionsUpsert())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating wishlist", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Product added to wishlist"})
}

// RemoveFromWishlist drops a product from the session user's wishlist.
func (wc *WishlistController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	params := mux.Vars(r)
	productID, err := primitive.ObjectIDFromHex(params["productId"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := wc.Collection.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{
			"$pull": bson.M{"products": productID},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating wishlist", err)
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Wishlist not found", nil)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Product removed from wishlist"})
}
