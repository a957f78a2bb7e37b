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
	"go.uber.org/zap"
)

// CategoryController handles catalog category requests.
type CategoryController struct {
	Collection *mongo.Collection
	Assets     utils.AssetService
}

// NewCategoryController creates a new CategoryController.
func NewCategoryController(db *mongo.Database, assets utils.AssetService) *CategoryController {
	return &CategoryController{
		Collection: db.Collection("categories"),
		Assets:     assets,
	}
}

// GetCategories retrieves all categories as a bare array.
func (cc *CategoryController) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cursor, err := cc.Collection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching categories", err)
		return
	}

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading categories", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, categories)
}

// GetCategoryByID retrieves one category as a bare document.
func (cc *CategoryController) GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid category ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var category models.Category
	if err := cc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Category not found", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, category)
}

// CreateCategory adds a category (admin only). Multipart form with a
// required name and image file; the image is uploaded before the write.
func (cc *CategoryController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Failed to parse multipart form", err)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: name", nil)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: image", err)
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	imageURL, err := cc.Assets.Upload(ctx, file, "categories")
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to upload category image", err)
		return
	}

	now := time.Now()
	category := models.Category{
		Name:      name,
		Image:     imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := cc.Collection.InsertOne(ctx, category)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error creating category", err)
		return
	}
	category.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondJSON(w, http.StatusCreated, category)
}

// UpdateCategory merges the supplied fields (admin only).
func (cc *CategoryController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid category ID", err)
		return
	}

	var payload struct {
		Name *string `json:"name"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if payload.Name != nil {
		set["name"] = *payload.Name
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := cc.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating category", err)
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Category not found", nil)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Category updated successfully"})
}

// DeleteCategory removes a category (admin only). The document is removed
// even when the downstream asset deletion fails; that failure is only
// logged.
func (cc *CategoryController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid category ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var category models.Category
	if err := cc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Category not found", err)
		return
	}

	if _, err := cc.Collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting category", err)
		return
	}

	if category.Image != "" {
		if err := cc.Assets.Delete(ctx, category.Image); err != nil {
			utils.GetLogger().Warn("failed to delete category image",
				zap.String("categoryId", id.Hex()),
				zap.Error(err))
		}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}
