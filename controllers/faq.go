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

// FAQController handles question/answer entries.
type FAQController struct {
	Collection *mongo.Collection
}

// NewFAQController creates a new FAQController.
func NewFAQController(db *mongo.Database) *FAQController {
	return &FAQController{Collection: db.Collection("faqs")}
}

// GetFAQs lists entries, optionally filtered by product.
func (fc *FAQController) GetFAQs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	filter := bson.M{}
	if raw := r.URL.Query().Get("product"); raw != "" {
		productID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid product ID", err)
			return
		}
		filter["product"] = productID
	}

	cursor, err := fc.Collection.Find(ctx, filter)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching FAQs", err)
		return
	}

	faqs := []models.FAQ{}
	if err := cursor.All(ctx, &faqs); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading FAQs", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, faqs)
}

// CreateFAQ adds an entry (admin only).
func (fc *FAQController) CreateFAQ(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
		Product  string `json:"product"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}
	if payload.Question == "" || payload.Answer == "" {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: question, answer", nil)
		return
	}

	now := time.Now()
	faq := models.FAQ{
		Question:  payload.Question,
		Answer:    payload.Answer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if payload.Product != "" {
		productID, err := primitive.ObjectIDFromHex(payload.Product)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid product ID", err)
			return
		}
		faq.Product = &productID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := fc.Collection.InsertOne(ctx, faq)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error creating FAQ", err)
		return
	}
	faq.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondSuccess(w, http.StatusCreated, faq)
}

// UpdateFAQ merges the supplied fields (admin only).
func (fc *FAQController) UpdateFAQ(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid FAQ ID", err)
		return
	}

	var payload struct {
		Question *string `json:"question"`
		Answer   *string `json:"answer"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if payload.Question != nil {
		set["question"] = *payload.Question
	}
	if payload.Answer != nil {
		set["answer"] = *payload.Answer
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := fc.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating FAQ", err)
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "FAQ not found", nil)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "FAQ updated successfully"})
}

// DeleteFAQ removes an entry (admin only).
func (fc *FAQController) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid FAQ ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := fc.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting FAQ", err)
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "FAQ not found", nil)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "FAQ deleted successfully"})
}
