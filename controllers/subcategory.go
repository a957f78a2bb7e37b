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

// SubCategoryController handles subcategory requests.
type SubCategoryController struct {
	Collection         *mongo.Collection
	CategoryCollection *mongo.Collection
	Assets             utils.AssetService
}

// NewSubCategoryController creates a new SubCategoryController.
func NewSubCategoryController(db *mongo.Database, assets utils.AssetService) *SubCategoryController {
	return &SubCategoryController{
		Collection:         db.Collection("subcategories"),
		CategoryCollection: db.Collection("categories"),
		Assets:             assets,
	}
}

// GetSubCategories lists subcategories, optionally filtered by parent
// category. Answers a bare array.
func (sc *SubCategoryController) GetSubCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	filter := bson.M{}
	if raw := r.URL.Query().Get("category"); raw != "" {
		categoryID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid category ID", err)
			return
		}
		filter["category"] = categoryID
	}

	cursor, err := sc.Collection.Find(ctx, filter)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching subcategories", err)
		return
	}

	subcategories := []models.SubCategory{}
	if err := cursor.All(ctx, &subcategories); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading subcategories", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, subcategories)
}

// CreateSubCategory adds a subcategory (admin only). The parent category
// reference is required and must exist.
func (sc *SubCategoryController) CreateSubCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Failed to parse multipart form", err)
		return
	}

	name := r.FormValue("name")
	categoryRaw := r.FormValue("category")
	if name == "" || categoryRaw == "" {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: name, category", nil)
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(categoryRaw)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid category ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	count, err := sc.CategoryCollection.CountDocuments(ctx, bson.M{"_id": categoryID})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Database error", err)
		return
	}
	if count == 0 {
		utils.RespondError(w, http.StatusNotFound, "Category not found", nil)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: image", err)
		return
	}
	defer file.Close()

	imageURL, err := sc.Assets.Upload(ctx, file, "subcategories")
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to upload subcategory image", err)
		return
	}

	now := time.Now()
	subcategory := models.SubCategory{
		Name:      name,
		Image:     imageURL,
		Category:  categoryID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := sc.Collection.InsertOne(ctx, subcategory)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error creating subcategory", err)
		return
	}
	subcategory.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondJSON(w, http.StatusCreated, subcategory)
}

// UpdateSubCategory merges the supplied fields (admin only).
func (sc *SubCategoryController) UpdateSubCategory(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid subcategory ID", err)
		return
	}

	var payload struct {
		Name     *string `json:"name"`
		Category *string `json:"category"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if payload.Name != nil {
		set["name"] = *payload.Name
	}
	if payload.Category != nil {
		categoryID, err := primitive.ObjectIDFromHex(*payload.Category)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid category ID", err)
			return
		}
		set["category"] = categoryID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := sc.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating subcategory", err)
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Subcategory not found", nil)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Subcategory updated successfully"})
}

// DeleteSubCategory removes a subcategory (admin only) with best-effort
// asset cleanup.
func (sc *SubCategoryController) DeleteSubCategory(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid subcategory ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var subcategory models.SubCategory
	if err := sc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&subcategory); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Subcategory not found", err)
		return
	}

	if _, err := sc.Collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting subcategory", err)
		return
	}

	if subcategory.Image != "" {
		if err := sc.Assets.Delete(ctx, subcategory.Image); err != nil {
			utils.GetLogger().Warn("failed to delete subcategory image",
				zap.String("subcategoryId", id.Hex()),
				zap.Error(err))
		}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Subcategory deleted successfully"})
}
