package controllers

import (
	"context"
	"math"
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

// ShippingController handles shipping price rules.
type ShippingController struct {
	Collection *mongo.Collection
}

// NewShippingController creates a new ShippingController.
func NewShippingController(db *mongo.Database) *ShippingController {
	return &ShippingController{Collection: db.Collection("shippingprices")}
}

// rangesOverlap reports whether [newMin, newMax] intersects [exMin, exMax].
// A nil maximum is unbounded above. Three cases are checked: the new range
// contains the existing one, the new minimum falls inside the existing
// range, or the new maximum falls inside the existing range.
func rangesOverlap(newMin float64, newMax *float64, exMin float64, exMax *float64) bool {
	nMax := math.MaxFloat64
	if newMax != nil {
		nMax = *newMax
	}
	eMax := math.MaxFloat64
	if exMax != nil {
		eMax = *exMax
	}

	if newMin <= exMin && nMax >= eMax {
		return true
	}
	if newMin >= exMin && newMin <= eMax {
		return true
	}
	if nMax >= exMin && nMax <= eMax {
		return true
	}
	return false
}

// CreateShippingPrice adds a rule (admin only). Creation is rejected when
// the price range intersects any existing active rule for the same
// country/state combination.
func (sc *ShippingController) CreateShippingPrice(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Country      string   `json:"country"`
		State        string   `json:"state"`
		MinPrice     *float64 `json:"minPrice"`
		MaxPrice     *float64 `json:"maxPrice"`
		Fee          *float64 `json:"fee"`
		DeliveryTime string   `json:"deliveryTime"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	missing := utils.MissingFields(map[string]string{
		"country":      payload.Country,
		"deliveryTime": payload.DeliveryTime,
	})
	if payload.MinPrice == nil {
		missing = append(missing, "minPrice")
	}
	if payload.Fee == nil {
		missing = append(missing, "fee")
	}
	if len(missing) > 0 {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "), nil)
		return
	}
	if payload.MaxPrice != nil && *payload.MaxPrice < *payload.MinPrice {
		utils.RespondError(w, http.StatusBadRequest, "maxPrice must not be below minPrice", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := sc.Collection.Find(ctx, bson.M{
		"country": payload.Country,
		"state":   payload.State,
		"active":  true,
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Database error", err)
		return
	}

	existing := []models.ShippingPrice{}
	if err := cursor.All(ctx, &existing); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Database error", err)
		return
	}
	for _, rule := range existing {
		if rangesOverlap(*payload.MinPrice, payload.MaxPrice, rule.MinPrice, rule.MaxPrice) {
			utils.RespondError(w, http.StatusConflict,
				"Price range overlaps an existing shipping rule for this region", nil)
			return
		}
	}

	now := time.Now()
	rule := models.ShippingPrice{
		Country:      payload.Country,
		State:        payload.State,
		MinPrice:     *payload.MinPrice,
		MaxPrice:     payload.MaxPrice,
		Fee:          *payload.Fee,
		DeliveryTime: payload.DeliveryTime,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := sc.Collection.InsertOne(ctx, rule)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error creating shipping rule", err)
		return
	}
	rule.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondSuccess(w, http.StatusCreated, rule)
}

// GetShippingPrices lists rules, optionally filtered by country.
func (sc *ShippingController) GetShippingPrices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	filter := bson.M{}
	if country := r.URL.Query().Get("country"); country != "" {
		filter["country"] = country
	}

	cursor, err := sc.Collection.Find(ctx, filter)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching shipping rules", err)
		return
	}

	rules := []models.ShippingPrice{}
	if err := cursor.All(ctx, &rules); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading shipping rules", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, rules)
}

// GetShippingPriceByID retrieves one rule.
func (sc *ShippingController) GetShippingPriceByID(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid shipping rule ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var rule models.ShippingPrice
	if err := sc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rule); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Shipping rule not found", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, rule)
}

// UpdateShippingPrice merges the supplied fields (admin only). Range edits
// are not re-checked for overlap here; deactivate and recreate to move a
// rule between ranges.
func (sc *ShippingController) UpdateShippingPrice(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid shipping rule ID", err)
		return
	}

	var payload struct {
		Fee          *float64 `json:"fee"`
		DeliveryTime *string  `json:"deliveryTime"`
		Active       *bool    `json:"active"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if payload.Fee != nil {
		set["fee"] = *payload.Fee
	}
	if payload.DeliveryTime != nil {
		set["deliveryTime"] = *payload.DeliveryTime
	}
	if payload.Active != nil {
		set["active"] = *payload.Active
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := sc.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating shipping rule", err)
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Shipping rule not found", nil)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Shipping rule updated successfully"})
}

// DeleteShippingPrice removes a rule (admin only).
func (sc *ShippingController) DeleteShippingPrice(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid shipping rule ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := sc.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting shipping rule", err)
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Shipping rule not found", nil)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Shipping rule deleted successfully"})
}
