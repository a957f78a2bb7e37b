package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
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

// ProductController handles catalog product requests.
type ProductController struct {
	Collection         *mongo.Collection
	CategoryCollection *mongo.Collection
	Assets             utils.AssetService
}

// NewProductController creates a new ProductController.
func NewProductController(db *mongo.Database, assets utils.AssetService) *ProductController {
	return &ProductController{
		Collection:         db.Collection("products"),
		CategoryCollection: db.Collection("categories"),
		Assets:             assets,
	}
}

// GetProducts retrieves all products. Answers a bare array; an empty catalog
// answers 404 (storefront clients treat that as "nothing to show").
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	products, err := pc.findProducts(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching products", err)
		return
	}
	if len(products) == 0 {
		utils.RespondError(w, http.StatusNotFound, "No products found", nil)
		return
	}

	utils.RespondJSON(w, http.StatusOK, products)
}

// GetProductByID retrieves a single product with its categories resolved.
// Answers the bare product document plus a categories array.
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	err = pc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "Product not found", err)
		return
	}

	// Resolve category references at read time.
	categories := []models.Category{}
	if len(product.Categories) > 0 {
		cursor, err := pc.CategoryCollection.Find(ctx, bson.M{"_id": bson.M{"$in": product.Categories}})
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Error resolving product categories", err)
			return
		}
		if err := cursor.All(ctx, &categories); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Error resolving product categories", err)
			return
		}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"product":    product,
		"categories": categories,
	})
}

// GetRelatedProducts returns products to show alongside the given one. The
// panel must never come back empty while other products exist: a missing or
// category-less product falls back to the full catalog minus the given id,
// and an empty same-category set falls back the same way.
func (pc *ProductController) GetRelatedProducts(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	allOthers := bson.M{"_id": bson.M{"$ne": id}}

	var product models.Product
	err = pc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondError(w, http.StatusInternalServerError, "Error fetching product", err)
			return
		}
		products, err := pc.findProducts(ctx, allOthers)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Error fetching related products", err)
			return
		}
		utils.RespondJSON(w, http.StatusOK, products)
		return
	}

	if len(product.Categories) == 0 {
		products, err := pc.findProducts(ctx, allOthers)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Error fetching related products", err)
			return
		}
		utils.RespondJSON(w, http.StatusOK, products)
		return
	}

	sameCategory := bson.M{
		"_id":        bson.M{"$ne": id},
		"categories": bson.M{"$in": product.Categories},
	}
	products, err := pc.findProducts(ctx, sameCategory)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching related products", err)
		return
	}
	if len(products) == 0 {
		products, err = pc.findProducts(ctx, allOthers)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Error fetching related products", err)
			return
		}
	}

	utils.RespondJSON(w, http.StatusOK, products)
}

// CreateProduct adds a new product (admin only). Accepts multipart form data
// with a required featuredImage file; the image is uploaded to the asset
// host before the document is written, so an upload failure aborts the
// create.
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Failed to parse multipart form", err)
		return
	}

	product := models.Product{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		SKU:         r.FormValue("sku"),
		Status:      r.FormValue("status"),
	}
	if product.Status == "" {
		product.Status = models.ProductStatusActive
	}
	if colors := r.FormValue("variantColors"); colors != "" {
		product.VariantColors = splitTrimmed(colors)
	}

	missing := utils.MissingFields(map[string]string{
		"name":        product.Name,
		"description": product.Description,
		"sku":         product.SKU,
		"price":       r.FormValue("price"),
	})
	// Stock is only mandatory when the product has no color variants.
	if r.FormValue("stock") == "" && len(product.VariantColors) == 0 {
		missing = append(missing, "stock")
	}
	if len(missing) > 0 {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "), nil)
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid price", err)
		return
	}
	product.Price = price

	if v := r.FormValue("salePrice"); v != "" {
		salePrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid sale price", err)
			return
		}
		product.SalePrice = salePrice
	}
	if v := r.FormValue("stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid stock", err)
			return
		}
		product.Stock = stock
	}
	if v := r.FormValue("categories"); v != "" {
		for _, raw := range splitTrimmed(v) {
			categoryID, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				utils.RespondError(w, http.StatusBadRequest, "Invalid category ID", err)
				return
			}
			product.Categories = append(product.Categories, categoryID)
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	count, err := pc.Collection.CountDocuments(ctx, bson.M{"sku": product.SKU})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Database error", err)
		return
	}
	if count > 0 {
		utils.RespondError(w, http.StatusConflict, "A product with this SKU already exists", nil)
		return
	}

	file, _, err := r.FormFile("featuredImage")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: featuredImage", err)
		return
	}
	defer file.Close()

	imageURL, err := pc.Assets.Upload(ctx, file, "products")
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to upload product image", err)
		return
	}
	product.FeaturedImage = imageURL

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	result, err := pc.Collection.InsertOne(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondError(w, http.StatusConflict, "A product with this SKU already exists", err)
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "Error creating product", err)
		return
	}
	product.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondJSON(w, http.StatusCreated, product)
}

// productUpdate carries the mutable product fields; nil means "leave as is".
type productUpdate struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Price         *float64  `json:"price"`
	SalePrice     *float64  `json:"salePrice"`
	Stock         *int      `json:"stock"`
	Status        *string   `json:"status"`
	VariantColors *[]string `json:"variantColors"`
	Categories    *[]string `json:"categories"`
}

// UpdateProduct merges the supplied fields into a product (admin only);
// unspecified fields keep their prior values.
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var payload productUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if payload.Name != nil {
		set["name"] = *payload.Name
	}
	if payload.Description != nil {
		set["description"] = *payload.Description
	}
	if payload.Price != nil {
		set["price"] = *payload.Price
	}
	if payload.SalePrice != nil {
		set["salePrice"] = *payload.SalePrice
	}
	if payload.Stock != nil {
		set["stock"] = *payload.Stock
	}
	if payload.Status != nil {
		set["status"] = *payload.Status
	}
	if payload.VariantColors != nil {
		set["variantColors"] = *payload.VariantColors
	}
	if payload.Categories != nil {
		categoryIDs := []primitive.ObjectID{}
		for _, raw := range *payload.Categories {
			categoryID, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				utils.RespondError(w, http.StatusBadRequest, "Invalid category ID", err)
				return
			}
			categoryIDs = append(categoryIDs, categoryID)
		}
		set["categories"] = categoryIDs
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := pc.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating product", err)
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Product not found", nil)
		return
	}

	var product models.Product
	if err := pc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching updated product", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, product)
}

// DeleteProduct removes a product (admin only). Asset cleanup is best
// effort: a failed image deletion is logged, never surfaced.
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	err = pc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "Product not found", err)
		return
	}

	if _, err := pc.Collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting product", err)
		return
	}

	if product.FeaturedImage != "" {
		if err := pc.Assets.Delete(ctx, product.FeaturedImage); err != nil {
			utils.GetLogger().Warn("failed to delete product image",
				zap.String("productId", id.Hex()),
				zap.Error(err))
		}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

func (pc *ProductController) findProducts(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cursor, err := pc.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func splitTrimmed(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
