package controllers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"blushbelle-api/models"
	"blushbelle-api/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// PendingOrderCookieName carries the unsigned checkout-in-progress
// reference. It is convenience state only, never an authorization boundary.
const PendingOrderCookieName = "pendingOrder"

// OrderController handles checkout and back-office order management.
type OrderController struct {
	OrderCollection   *mongo.Collection
	CartCollection    *mongo.Collection
	AddressCollection *mongo.Collection
	CouponCollection  *mongo.Collection
	UserCollection    *mongo.Collection
	EmailService      utils.Mailer
}

// NewOrderController creates a new OrderController.
func NewOrderController(db *mongo.Database, emailService utils.Mailer) *OrderController {
	return &OrderController{
		OrderCollection:   db.Collection("orders"),
		CartCollection:    db.Collection("carts"),
		AddressCollection: db.Collection("addresses"),
		CouponCollection:  db.Collection("coupons"),
		UserCollection:    db.Collection("users"),
		EmailService:      emailService,
	}
}

// CreateOrder finalizes a cart against an address. Address and payment
// method are required. The cart write and the confirmation email are
// independent round trips; there is no cross-document transaction.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var payload struct {
		Cart          string `json:"cart"`
		Address       string `json:"address"`
		PaymentMethod string `json:"paymentMethod"`
		Coupon        string `json:"coupon"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	missing := utils.MissingFields(map[string]string{
		"cart":          payload.Cart,
		"address":       payload.Address,
		"paymentMethod": payload.PaymentMethod,
	})
	if len(missing) > 0 {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "), nil)
		return
	}
	if payload.PaymentMethod != models.PaymentMethodOnline && payload.PaymentMethod != models.PaymentMethodCOD {
		utils.RespondError(w, http.StatusBadRequest, "Invalid payment method", nil)
		return
	}

	cartID, err := primitive.ObjectIDFromHex(payload.Cart)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid cart ID", err)
		return
	}
	addressID, err := primitive.ObjectIDFromHex(payload.Address)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid address ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var cart models.Cart
	if err := oc.CartCollection.FindOne(ctx, bson.M{"_id": cartID, "user": userID}).Decode(&cart); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Cart not found", err)
		return
	}
	if len(cart.Items) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "Cart is empty", nil)
		return
	}

	if count, err := oc.AddressCollection.CountDocuments(ctx, bson.M{"_id": addressID, "user": userID}); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Database error", err)
		return
	} else if count == 0 {
		utils.RespondError(w, http.StatusNotFound, "Address not found", nil)
		return
	}

	totalAmount := cart.Subtotal()

	var couponID *primitive.ObjectID
	if payload.Coupon != "" {
		var coupon models.Coupon
		err := oc.CouponCollection.FindOne(ctx, bson.M{"code": normalizeCouponCode(payload.Coupon)}).Decode(&coupon)
		if err != nil {
			utils.RespondError(w, http.StatusNotFound, "Coupon not found", err)
			return
		}
		if !coupon.Usable(time.Now()) {
			utils.RespondError(w, http.StatusBadRequest, "Coupon is expired or exhausted", nil)
			return
		}
		totalAmount -= coupon.Discount(totalAmount)
		couponID = &coupon.ID

		if _, err := oc.CouponCollection.UpdateOne(ctx, bson.M{"_id": coupon.ID}, bson.M{
			"$inc": bson.M{"usedCount": 1},
		}); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Error recording coupon usage", err)
			return
		}
	}

	now := time.Now()
	order := models.Order{
		InvoiceNo:     generateInvoiceNo(now),
		UserID:        userID,
		CartID:        cartID,
		AddressID:     addressID,
		CouponID:      couponID,
		TotalAmount:   totalAmount,
		PaymentMethod: payload.PaymentMethod,
		PaymentStatus: models.PaymentStatusPending,
		OrderStatus:   models.OrderStatusPending,
		OrderDate:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := oc.OrderCollection.InsertOne(ctx, order)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create order", err)
		return
	}
	order.ID = result.InsertedID.(primitive.ObjectID)

	clearPendingOrderCookie(w)

	var user models.User
	if err := oc.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err == nil {
		go func(email, invoiceNo string, total float64, method string) {
			if err := oc.EmailService.SendOrderConfirmationEmail(email, invoiceNo, total, method); err != nil {
				utils.GetLogger().Warn("failed to send order confirmation email",
					zap.String("email", email),
					zap.Error(err))
			}
		}(user.Email, order.InvoiceNo, order.TotalAmount, order.PaymentMethod)
	}

	utils.RespondSuccess(w, http.StatusCreated, order)
}

// GetOrders lists all orders (admin only), newest first.
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := r.URL.Query().Get("orderStatus"); status != "" {
		if !models.ValidOrderStatus(status) {
			utils.RespondError(w, http.StatusBadRequest, "Invalid order status", nil)
			return
		}
		filter["orderStatus"] = status
	}

	cursor, err := oc.OrderCollection.Find(ctx, filter)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to retrieve orders", err)
		return
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading orders", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, orders)
}

// GetOrderByID retrieves one order with its user, cart and address resolved
// (admin only). A failed reference resolution fails the whole request.
func (oc *OrderController) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	if err := oc.OrderCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Order not found", err)
		return
	}

	var user models.User
	if err := oc.UserCollection.FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&user); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error resolving order user", err)
		return
	}
	var cart models.Cart
	if err := oc.CartCollection.FindOne(ctx, bson.M{"_id": order.CartID}).Decode(&cart); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error resolving order cart", err)
		return
	}
	var address models.Address
	if err := oc.AddressCollection.FindOne(ctx, bson.M{"_id": order.AddressID}).Decode(&address); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error resolving order address", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]interface{}{
		"order":   order,
		"user":    user,
		"cart":    cart,
		"address": address,
	})
}

// UpdateOrderStatus moves an order through fulfillment or payment states
// (admin only).
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order ID", err)
		return
	}

	var payload struct {
		OrderStatus   string `json:"orderStatus"`
		PaymentStatus string `json:"paymentStatus"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if payload.OrderStatus != "" {
		if !models.ValidOrderStatus(payload.OrderStatus) {
			utils.RespondError(w, http.StatusBadRequest, "Invalid order status", nil)
			return
		}
		set["orderStatus"] = payload.OrderStatus
		if payload.OrderStatus == models.OrderStatusDelivered {
			set["deliveryDate"] = time.Now()
		}
	}
	if payload.PaymentStatus != "" {
		switch payload.PaymentStatus {
		case models.PaymentStatusPending, models.PaymentStatusPaid,
			models.PaymentStatusFailed, models.PaymentStatusRefunded:
		default:
			utils.RespondError(w, http.StatusBadRequest, "Invalid payment status", nil)
			return
		}
		set["paymentStatus"] = payload.PaymentStatus
	}
	if len(set) == 1 {
		utils.RespondError(w, http.StatusBadRequest, "Nothing to update", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := oc.OrderCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to update order", err)
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Order not found", nil)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Order updated successfully"})
}

// DeleteOrder removes an order (admin only).
func (oc *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := oc.OrderCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to delete order", err)
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Order not found", nil)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

// GetOrderHistory returns all orders belonging to the session user. It reads
// the session cookie itself rather than going through the auth middleware:
// a missing cookie or bad token answers 401, a well-formed token without a
// usable user id answers 400, and zero orders is a 200 with an empty list.
func (oc *OrderController) GetOrderHistory(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(utils.SessionCookieName)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	claims, err := utils.ParseSessionToken(cookie.Value)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid or expired session", err)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Session token carries no valid user ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := oc.OrderCollection.Find(ctx, bson.M{"user": userID})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to retrieve orders", err)
		return
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading orders", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, orders)
}

// SetPendingOrder stores the cart/address pairing for an in-progress
// checkout in an unsigned, base64-encoded cookie.
func (oc *OrderController) SetPendingOrder(w http.ResponseWriter, r *http.Request) {
	var pending models.PendingOrder
	if err := decodeJSONBody(r, &pending); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	missing := utils.MissingFields(map[string]string{
		"cartId":    pending.CartID,
		"addressId": pending.AddressID,
	})
	if len(missing) > 0 {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "), nil)
		return
	}

	encoded, err := EncodePendingOrder(pending)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to encode pending order", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     PendingOrderCookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int((24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	utils.RespondSuccess(w, http.StatusOK, pending)
}

// GetPendingOrder decodes the pending-order cookie without any signature
// verification. An absent cookie or one missing its fields is an internal
// error: this is read-only convenience state the client should only request
// mid-checkout.
func (oc *OrderController) GetPendingOrder(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(PendingOrderCookieName)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "No pending order found", err)
		return
	}

	pending, err := DecodePendingOrder(cookie.Value)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to decode pending order", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, pending)
}

// EncodePendingOrder serializes a pending order for cookie transport.
func EncodePendingOrder(pending models.PendingOrder) (string, error) {
	raw, err := json.Marshal(pending)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

// DecodePendingOrder reverses EncodePendingOrder and rejects payloads
// missing either reference.
func DecodePendingOrder(encoded string) (models.PendingOrder, error) {
	var pending models.PendingOrder

	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return pending, err
	}
	if err := json.Unmarshal(raw, &pending); err != nil {
		return pending, err
	}
	if pending.CartID == "" || pending.AddressID == "" {
		return pending, fmt.Errorf("pending order cookie is missing required fields")
	}
	return pending, nil
}

func clearPendingOrderCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     PendingOrderCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func generateInvoiceNo(now time.Time) string {
	return fmt.Sprintf("INV-%s-%s", now.Format("20060102"), strings.ToUpper(uuid.NewString()[:8]))
}
