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

// VideoController handles product videos.
type VideoController struct {
	Collection *mongo.Collection
	Assets     utils.AssetService
}

// NewVideoController creates a new VideoController.
func NewVideoController(db *mongo.Database, assets utils.AssetService) *VideoController {
	return &VideoController{Collection: db.Collection("videos"), Assets: assets}
}

// GetVideos lists videos, optionally filtered by product.
func (vc *VideoController) GetVideos(w http.ResponseWriter, r *http.Request) {
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

	cursor, err := vc.Collection.Find(ctx, filter)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching videos", err)
		return
	}

	videos := []models.Video{}
	if err := cursor.All(ctx, &videos); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading videos", err)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, videos)
}

// CreateVideo adds a video (admin only). Multipart form with a required
// title and videoUrl; an optional thumbnail file is uploaded before the
// write.
func (vc *VideoController) CreateVideo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Failed to parse multipart form", err)
		return
	}

	title := r.FormValue("title")
	videoURL := r.FormValue("videoUrl")
	if title == "" || videoURL == "" {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: title, videoUrl", nil)
		return
	}

	now := time.Now()
	video := models.Video{
		Title:     title,
		VideoURL:  videoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if raw := r.FormValue("product"); raw != "" {
		productID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid product ID", err)
			return
		}
		video.Product = &productID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if file, _, err := r.FormFile("thumbnail"); err == nil {
		defer file.Close()
		thumbnailURL, err := vc.Assets.Upload(ctx, file, "videos")
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to upload video thumbnail", err)
			return
		}
		video.Thumbnail = thumbnailURL
	}

	result, err := vc.Collection.InsertOne(ctx, video)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error creating video", err)
		return
	}
	video.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondSuccess(w, http.StatusCreated, video)
}

// DeleteVideo removes a video (admin only) with best-effort thumbnail
// cleanup.
func (vc *VideoController) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid video ID", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var video models.Video
	if err := vc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&video); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Video not found", err)
		return
	}

	if _, err := vc.Collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting video", err)
		return
	}

	if video.Thumbnail != "" {
		if err := vc.Assets.Delete(ctx, video.Thumbnail); err != nil {
			utils.GetLogger().Warn("failed to delete video thumbnail",
				zap.String("videoId", id.Hex()),
				zap.Error(err))
		}
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Video deleted successfully"})
}
