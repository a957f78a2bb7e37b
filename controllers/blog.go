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

// BlogController handles editorial articles.
type BlogController struct {
	Collection *mongo.Collection
	Assets     utils.AssetService
}

// NewBlogController creates a new BlogController.
func NewBlogController(db *mongo.Database, assets utils.AssetService) *BlogController {
	return &BlogController{Collection: db.Collection("blogs"), Assets: assets}
}

// GetBlogs lists articles; an empty list answers 404.
func (bc *BlogController) GetBlogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cursor, err := bc.Collection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching blogs", err)
		return
	}

	blogs := []models.Blog{}
	if err := cursor.All(ctx, &blogs); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading blogs", err)
		return
	}
	if len(blogs) == 0 {
		utils.RespondError(w, http.StatusNotFound, "No blogs found", nil)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, blogs)
}

// GetBlogByID retrieves one article.
func (bc *BlogController) GetBlogByID(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid blog ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var blog models.Blog
	if err := bc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&blog); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Blog not found", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, blog)
}

// CreateBlog adds an article (admin only). Multipart form; the cover image
// is required and uploaded before the write.
func (bc *BlogController) CreateBlog(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Failed to parse multipart form", err)
		return
	}

	blog := models.Blog{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
		Author:  r.FormValue("author"),
	}

	missing := utils.MissingFields(map[string]string{
		"title":   blog.Title,
		"content": blog.Content,
	})
	if len(missing) > 0 {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "), nil)
		return
	}

	if raw := r.FormValue("product"); raw != "" {
		productID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid product ID", err)
			return
		}
		blog.Product = &productID
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: image", err)
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	imageURL, err := bc.Assets.Upload(ctx, file, "blogs")
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to upload blog image", err)
		return
	}
	blog.Image = imageURL

	now := time.Now()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	result, err := bc.Collection.InsertOne(ctx, blog)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error creating blog", err)
		return
	}
	blog.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondSuccess(w, http.StatusCreated, blog)
}

// UpdateBlog merges the supplied fields (admin only).
func (bc *BlogController) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid blog ID", err)
		return
	}

	var payload struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
		Author  *string `json:"author"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if payload.Title != nil {
		set["title"] = *payload.Title
	}
	if payload.Content != nil {
		set["content"] = *payload.Content
	}
	if payload.Author != nil {
		set["author"] = *payload.Author
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := bc.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating blog", err)
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Blog not found", nil)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Blog updated successfully"})
}

// DeleteBlog removes an article (admin only) with best-effort asset
// cleanup.
func (bc *BlogController) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid blog ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var blog models.Blog
	if err := bc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&blog); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Blog not found", err)
		return
	}

	if _, err := bc.Collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting blog", err)
		return
	}

	if blog.Image != "" {
		if err := bc.Assets.Delete(ctx, blog.Image); err != nil {
			utils.GetLogger().Warn("failed to delete blog image",
				zap.String("blogId", id.Hex()),
				zap.Error(err))
		}
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Blog deleted successfully"})
}
