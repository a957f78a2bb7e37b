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

// BenefitController handles product benefit highlights.
type BenefitController struct {
	Collection        *mongo.Collection
	ProductCollection *mongo.Collection
	Assets            utils.AssetService
}

// NewBenefitController creates a new BenefitController.
func NewBenefitController(db *mongo.Database, assets utils.AssetService) *BenefitController {
	return &BenefitController{
		Collection:        db.Collection("benefits"),
		ProductCollection: db.Collection("products"),
		Assets:            assets,
	}
}

// GetBenefitsByProduct lists benefit highlights for one product.
func (bc *BenefitController) GetBenefitsByProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	productID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cursor, err := bc.Collection.Find(ctx, bson.M{"product": productID})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching benefits", err)
		return
	}

	benefits := []models.Benefit{}
	if err := cursor.All(ctx, &benefits); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading benefits", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, benefits)
}

// CreateBenefit adds a highlight (admin only). Multipart form; the
// illustration is required and uploaded before the write.
func (bc *BenefitController) CreateBenefit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Failed to parse multipart form", err)
		return
	}

	title := r.FormValue("title")
	description := r.FormValue("description")
	productRaw := r.FormValue("product")

	missing := utils.MissingFields(map[string]string{
		"title":       title,
		"description": description,
		"product":     productRaw,
	})
	if len(missing) > 0 {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "), nil)
		return
	}

	productID, err := primitive.ObjectIDFromHex(productRaw)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if count, err := bc.ProductCollection.CountDocuments(ctx, bson.M{"_id": productID}); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Database error", err)
		return
	} else if count == 0 {
		utils.RespondError(w, http.StatusNotFound, "Product not found", nil)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: image", err)
		return
	}
	defer file.Close()

	imageURL, err := bc.Assets.Upload(ctx, file, "benefits")
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to upload benefit image", err)
		return
	}

	now := time.Now()
	benefit := models.Benefit{
		Title:       title,
		Description: description,
		Image:       imageURL,
		ProductID:   productID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := bc.Collection.InsertOne(ctx, benefit)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error creating benefit", err)
		return
	}
	benefit.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondSuccess(w, http.StatusCreated, benefit)
}

// DeleteBenefit removes a highlight (admin only) with best-effort asset
// cleanup.
func (bc *BenefitController) DeleteBenefit(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid benefit ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var benefit models.Benefit
	if err := bc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&benefit); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Benefit not found", err)
		return
	}

	if _, err := bc.Collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting benefit", err)
		return
	}

	if benefit.Image != "" {
		if err := bc.Assets.Delete(ctx, benefit.Image); err != nil {
			utils.GetLogger().Warn("failed to delete benefit image",
				zap.String("benefitId", id.Hex()),
				zap.Error(err))
		}
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Benefit deleted successfully"})
}
