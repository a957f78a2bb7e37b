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

// AddressController handles the authenticated user's delivery addresses.
type AddressController struct {
	Collection *mongo.Collection
}

// NewAddressController creates a new AddressController.
func NewAddressController(db *mongo.Database) *AddressController {
	return &AddressController{Collection: db.Collection("addresses")}
}

// CreateAddress records a delivery address for the session user.
func (ac *AddressController) CreateAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var payload struct {
		FullName string `json:"fullName"`
		Phone    string `json:"phone"`
		Street   string `json:"street"`
		City     string `json:"city"`
		State    string `json:"state"`
		Country  string `json:"country"`
		ZipCode  string `json:"zipCode"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	missing := utils.MissingFields(map[string]string{
		"fullName": payload.FullName,
		"phone":    payload.Phone,
		"street":   payload.Street,
		"city":     payload.City,
		"country":  payload.Country,
		"zipCode":  payload.ZipCode,
	})
	if len(missing) > 0 {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "), nil)
		return
	}

	now := time.Now()
	address := models.Address{
		UserID:    userID,
		FullName:  payload.FullName,
		Phone:     payload.Phone,
		Street:    payload.Street,
		City:      payload.City,
		State:     payload.State,
		Country:   payload.Country,
		ZipCode:   payload.ZipCode,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := ac.Collection.InsertOne(ctx, address)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error saving address", err)
		return
	}
	address.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondSuccess(w, http.StatusCreated, address)
}

// GetAddresses lists the session user's addresses.
func (ac *AddressController) GetAddresses(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := ac.Collection.Find(ctx, bson.M{"user": userID})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching addresses", err)
		return
	}

	addresses := []models.Address{}
	if err := cursor.All(ctx, &addresses); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading addresses", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, addresses)
}

// DeleteAddress removes one of the session user's addresses.
func (ac *AddressController) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid address ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := ac.Collection.DeleteOne(ctx, bson.M{"_id": id, "user": userID})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting address", err)
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Address not found", nil)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Address deleted successfully"})
}
