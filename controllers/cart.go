package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"blushbelle-api/models"
	"blushbelle-api/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CartController handles cart requests for the authenticated user.
type CartController struct {
	Collection        *mongo.Collection
	ProductCollection *mongo.Collection
}

// NewCartController creates a new CartController.
func NewCartController(db *mongo.Database) *CartController {
	return &CartController{
		Collection:        db.Collection("carts"),
		ProductCollection: db.Collection("products"),
	}
}

// AddToCart adds a product to the user's cart, creating the cart on first
// use. The item price is snapshotted from the product at add time.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var payload struct {
		Product  string `json:"product"`
		Quantity int    `json:"quantity"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}
	if payload.Quantity <= 0 {
		utils.RespondError(w, http.StatusBadRequest, "Quantity must be positive", nil)
		return
	}

	productID, err := primitive.ObjectIDFromHex(payload.Product)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := cc.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Product not found", err)
		return
	}

	price := product.Price
	if product.SalePrice > 0 {
		price = product.SalePrice
	}
	item := models.CartItem{ProductID: productID, Quantity: payload.Quantity, Price: price}

	var cart models.Cart
	err = cc.Collection.FindOne(ctx, bson.M{"user": userID}).Decode(&cart)
	if err != nil {
		// Only a confirmed miss may create a cart; a transient lookup
		// failure would otherwise insert a duplicate.
		if !errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondError(w, http.StatusInternalServerError, "Error fetching cart", err)
			return
		}
		now := time.Now()
		cart = models.Cart{
			UserID:    userID,
			Items:     []models.CartItem{item},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := cc.Collection.InsertOne(ctx, cart); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Error creating cart", err)
			return
		}
		utils.RespondSuccess(w, http.StatusCreated, cart)
		return
	}

	updated := false
	for i, existing := range cart.Items {
		if existing.ProductID == productID {
			cart.Items[i].Quantity += payload.Quantity
			cart.Items[i].Price = price
			updated = true
			break
		}
	}
	if !updated {
		cart.Items = append(cart.Items, item)
	}

	_, err = cc.Collection.UpdateOne(ctx, bson.M{"_id": cart.ID}, bson.M{
		"$set": bson.M{"items": cart.Items, "updatedAt": time.Now()},
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating cart", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, cart)
}

// GetCart retrieves the user's cart.
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var cart models.Cart
	if err := cc.Collection.FindOne(ctx, bson.M{"user": userID}).Decode(&cart); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Cart not found", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, cart)
}

// RemoveFromCart removes one product line from the user's cart.
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
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

	var cart models.Cart
	if err := cc.Collection.FindOne(ctx, bson.M{"user": userID}).Decode(&cart); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Cart not found", err)
		return
	}

	updatedItems := []models.CartItem{}
	for _, item := range cart.Items {
		if item.ProductID != productID {
			updatedItems = append(updatedItems, item)
		}
	}

	_, err = cc.Collection.UpdateOne(ctx, bson.M{"_id": cart.ID}, bson.M{
		"$set": bson.M{"items": updatedItems, "updatedAt": time.Now()},
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating cart", err)
		return
	}

	cart.Items = updatedItems
	utils.RespondSuccess(w, http.StatusOK, cart)
}
