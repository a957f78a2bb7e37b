package controllers

import (
	"context"
	"net/http"
	"time"

	"blushbelle-api/middleware"
	"blushbelle-api/models"
	"blushbelle-api/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserController handles profile reads and back-office user management.
type UserController struct {
	Collection *mongo.Collection
}

// NewUserController creates a new UserController.
func NewUserController(db *mongo.Database) *UserController {
	return &UserController{Collection: db.Collection("users")}
}

// GetProfile retrieves the authenticated user's profile. Answers the
// success envelope.
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Session token carries no valid user ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := uc.Collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondError(w, http.StatusNotFound, "User not found", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, user)
}

// GetUsers lists all accounts (admin only). Answers the success envelope.
func (uc *UserController) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	cursor, err := uc.Collection.Find(ctx, filter)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching users", err)
		return
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading users", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, users)
}

// GetUserByID retrieves one account (admin only).
func (uc *UserController) GetUserByID(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid user ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := uc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		utils.RespondError(w, http.StatusNotFound, "User not found", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, user)
}

// UpdateUserStatus moves an account between statuses (admin only).
func (uc *UserController) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid user ID", err)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	switch payload.Status {
	case models.StatusBlocked, models.StatusPending, models.StatusInReview, models.StatusActive:
	default:
		utils.RespondError(w, http.StatusBadRequest, "Invalid status", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := uc.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": payload.Status, "updatedAt": time.Now()},
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating user status", err)
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "User not found", nil)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "User status updated"})
}

// DeleteUser removes an account (admin only).
func (uc *UserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid user ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := uc.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting user", err)
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "User not found", nil)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
