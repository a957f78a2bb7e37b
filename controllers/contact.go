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

// ContactController handles contact-form submissions.
type ContactController struct {
	Collection   *mongo.Collection
	EmailService utils.Mailer
}

// NewContactController creates a new ContactController.
func NewContactController(db *mongo.Database, emailService utils.Mailer) *ContactController {
	return &ContactController{
		Collection:   db.Collection("contacts"),
		EmailService: emailService,
	}
}

// CreateContact records a submission. The same email+message pair is
// rejected as a duplicate; a failure to send the acknowledgment email
// surfaces as a 500 after the write.
func (cc *ContactController) CreateContact(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	missing := utils.MissingFields(map[string]string{
		"name":    payload.Name,
		"email":   payload.Email,
		"message": payload.Message,
	})
	if len(missing) > 0 {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "), nil)
		return
	}
	if !utils.IsValidEmail(payload.Email) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid email address", nil)
		return
	}

	now := time.Now()
	contact := models.ContactUs{
		Name:      payload.Name,
		Email:     strings.ToLower(payload.Email),
		Phone:     payload.Phone,
		Message:   payload.Message,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := cc.Collection.InsertOne(ctx, contact)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondError(w, http.StatusConflict, "This message has already been submitted", nil)
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "Error saving contact message", err)
		return
	}
	contact.ID = result.InsertedID.(primitive.ObjectID)

	if err := cc.EmailService.SendContactAckEmail(contact.Email, contact.Name); err != nil {
		utils.GetLogger().Error("failed to send contact acknowledgment",
			zap.String("email", contact.Email),
			zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error sending acknowledgment email", err)
		return
	}

	utils.RespondSuccess(w, http.StatusCreated, contact)
}

// GetContacts lists submissions (admin only).
func (cc *ContactController) GetContacts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cursor, err := cc.Collection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching contact messages", err)
		return
	}

	contacts := []models.ContactUs{}
	if err := cursor.All(ctx, &contacts); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading contact messages", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, contacts)
}

// DeleteContact removes a submission (admin only).
func (cc *ContactController) DeleteContact(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid contact ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := cc.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting contact message", err)
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Contact message not found", nil)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Contact message deleted successfully"})
}
