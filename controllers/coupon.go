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

// CouponController handles discount codes.
type CouponController struct {
	Collection *mongo.Collection
}

// normalizeCouponCode is the canonical form codes are stored and looked up
// in. Every code path touching the coupons collection must go through it,
// or a code that validates at apply time fails at checkout.
func normalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewCouponController creates a new CouponController.
func NewCouponController(db *mongo.Database) *CouponController {
	return &CouponController{Collection: db.Collection("coupons")}
}

// CreateCoupon adds a discount code (admin only). Codes are unique.
func (cc *CouponController) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Code          string   `json:"code"`
		DiscountType  string   `json:"discountType"`
		DiscountValue *float64 `json:"discountValue"`
		ValidFrom     string   `json:"validFrom"`
		ValidUntil    string   `json:"validUntil"`
		UsageLimit    int      `json:"usageLimit"`
		Products      []string `json:"products"`
		Categories    []string `json:"categories"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	missing := utils.MissingFields(map[string]string{
		"code":         payload.Code,
		"discountType": payload.DiscountType,
		"validFrom":    payload.ValidFrom,
		"validUntil":   payload.ValidUntil,
	})
	if payload.DiscountValue == nil {
		missing = append(missing, "discountValue")
	}
	if len(missing) > 0 {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "), nil)
		return
	}
	if payload.DiscountType != models.DiscountTypePercentage && payload.DiscountType != models.DiscountTypeFlat {
		utils.RespondError(w, http.StatusBadRequest, "Invalid discount type", nil)
		return
	}

	validFrom, err := time.Parse(time.RFC3339, payload.ValidFrom)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid validFrom date", err)
		return
	}
	validUntil, err := time.Parse(time.RFC3339, payload.ValidUntil)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid validUntil date", err)
		return
	}
	if validUntil.Before(validFrom) {
		utils.RespondError(w, http.StatusBadRequest, "validUntil must be after validFrom", nil)
		return
	}

	now := time.Now()
	coupon := models.Coupon{
		Code:          normalizeCouponCode(payload.Code),
		DiscountType:  payload.DiscountType,
		DiscountValue: *payload.DiscountValue,
		ValidFrom:     validFrom,
		ValidUntil:    validUntil,
		UsageLimit:    payload.UsageLimit,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, raw := range payload.Products {
		productID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid product ID", err)
			return
		}
		coupon.Products = append(coupon.Products, productID)
	}
	for _, raw := range payload.Categories {
		categoryID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid category ID", err)
			return
		}
		coupon.Categories = append(coupon.Categories, categoryID)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := cc.Collection.InsertOne(ctx, coupon)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondError(w, http.StatusConflict, "A coupon with this code already exists", nil)
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "Error creating coupon", err)
		return
	}
	coupon.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondSuccess(w, http.StatusCreated, coupon)
}

// GetCoupons lists all coupons (admin only).
func (cc *CouponController) GetCoupons(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cursor, err := cc.Collection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching coupons", err)
		return
	}

	coupons := []models.Coupon{}
	if err := cursor.All(ctx, &coupons); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading coupons", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, coupons)
}

// ApplyCoupon validates a code against its window and usage limit and
// returns the discounted total for the supplied subtotal. Usage is counted
// at order creation, not here.
func (cc *CouponController) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Code     string   `json:"code"`
		Subtotal *float64 `json:"subtotal"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}
	if payload.Code == "" || payload.Subtotal == nil {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: code, subtotal", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var coupon models.Coupon
	err := cc.Collection.FindOne(ctx, bson.M{"code": normalizeCouponCode(payload.Code)}).Decode(&coupon)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "Coupon not found", err)
		return
	}
	if !coupon.Usable(time.Now()) {
		utils.RespondError(w, http.StatusBadRequest, "Coupon is expired or exhausted", nil)
		return
	}

	discount := coupon.Discount(*payload.Subtotal)
	utils.RespondSuccess(w, http.StatusOK, map[string]interface{}{
		"coupon":   coupon,
		"discount": discount,
		"total":    *payload.Subtotal - discount,
	})
}

// UpdateCoupon merges the supplied fields (admin only).
func (cc *CouponController) UpdateCoupon(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid coupon ID", err)
		return
	}

	var payload struct {
		DiscountValue *float64 `json:"discountValue"`
		ValidUntil    *string  `json:"validUntil"`
		UsageLimit    *int     `json:"usageLimit"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if payload.DiscountValue != nil {
		set["discountValue"] = *payload.DiscountValue
	}
	if payload.ValidUntil != nil {
		validUntil, err := time.Parse(time.RFC3339, *payload.ValidUntil)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid validUntil date", err)
			return
		}
		set["validUntil"] = validUntil
	}
	if payload.UsageLimit != nil {
		set["usageLimit"] = *payload.UsageLimit
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := cc.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating coupon", err)
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Coupon not found", nil)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Coupon updated successfully"})
}

// DeleteCoupon removes a coupon (admin only).
func (cc *CouponController) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid coupon ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := cc.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting coupon", err)
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Coupon not found", nil)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Coupon deleted successfully"})
}
