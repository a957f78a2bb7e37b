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
	"go.uber.org/zap"
)

// NewsLetterController handles newsletter subscriptions.
type NewsLetterController struct {
	Collection   *mongo.Collection
	EmailService utils.Mailer
}

// NewNewsLetterController creates a new NewsLetterController.
func NewNewsLetterController(db *mongo.Database, emailService utils.Mailer) *NewsLetterController {
	return &NewsLetterController{
		Collection:   db.Collection("newsletters"),
		EmailService: emailService,
	}
}

// Subscribe records a subscription. An already-subscribed email is rejected
// as a duplicate; a failure to send the welcome email surfaces as a 500
// after the write.
func (nc *NewsLetterController) Subscribe(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}
	if payload.Email == "" {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: email", nil)
		return
	}
	if !utils.IsValidEmail(payload.Email) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid email address", nil)
		return
	}

	now := time.Now()
	subscription := models.NewsLetter{
		Email:     strings.ToLower(payload.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := nc.Collection.InsertOne(ctx, subscription)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondError(w, http.StatusConflict, "This email is already subscribed", nil)
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "Error saving subscription", err)
		return
	}
	subscription.ID = result.InsertedID.(primitive.ObjectID)

	if err := nc.EmailService.SendNewsletterWelcomeEmail(subscription.Email); err != nil {
		utils.GetLogger().Error("failed to send newsletter welcome email",
			zap.String("email", subscription.Email),
			zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error sending welcome email", err)
		return
	}

	utils.RespondSuccess(w, http.StatusCreated, subscription)
}

// GetSubscribers lists subscriptions (admin only).
func (nc *NewsLetterController) GetSubscribers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cursor, err := nc.Collection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching subscribers", err)
		return
	}

	subscribers := []models.NewsLetter{}
	if err := cursor.All(ctx, &subscribers); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading subscribers", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, subscribers)
}

// Unsubscribe removes a subscription (admin only).
func (nc *NewsLetterController) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid subscription ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := nc.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting subscription", err)
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Subscription not found", nil)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Subscription removed"})
}
