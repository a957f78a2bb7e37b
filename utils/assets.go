package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// AssetService stores binary assets on an external host and returns stable
// reference URLs persisted on entities.
type AssetService interface {
	Upload(ctx context.Context, file io.Reader, folder string) (url string, err error)
	Delete(ctx context.Context, url string) error
}

type cloudinaryAssets struct {
	cld *cloudinary.Cloudinary
}

// NewAssetService builds a Cloudinary-backed AssetService from a
// cloudinary:// connection URL.
func NewAssetService(cloudinaryURL string) (AssetService, error) {
	if cloudinaryURL == "" {
		return nil, errors.New("CLOUDINARY_URL is not set")
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize asset host client: %w", err)
	}
	return &cloudinaryAssets{cld: cld}, nil
}

// Upload stores the file under the given folder and returns its secure URL.
func (ca *cloudinaryAssets) Upload(ctx context.Context, file io.Reader, folder string) (string, error) {
	res, err := ca.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", fmt.Errorf("asset upload failed: %w", err)
	}
	return res.SecureURL, nil
}

// Delete removes the asset referenced by a previously returned URL.
func (ca *cloudinaryAssets) Delete(ctx context.Context, url string) error {
	publicID, err := PublicIDFromURL(url)
	if err != nil {
		return err
	}
	_, err = ca.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("asset deletion failed: %w", err)
	}
	return nil
}

// PublicIDFromURL derives the asset host identifier from a delivery URL:
// everything after the upload/version segment, without the file extension.
func PublicIDFromURL(url string) (string, error) {
	parts := strings.Split(url, "/upload/")
	if len(parts) != 2 || parts[1] == "" {
		return "", fmt.Errorf("unrecognized asset URL: %s", url)
	}

	rest := parts[1]
	// Drop the version segment (v1234567890/) when present.
	if strings.HasPrefix(rest, "v") {
		if idx := strings.Index(rest, "/"); idx > 0 {
			if _, hasDigits := versionDigits(rest[1:idx]); hasDigits {
				rest = rest[idx+1:]
			}
		}
	}
	if rest == "" {
		return "", fmt.Errorf("unrecognized asset URL: %s", url)
	}
	return strings.TrimSuffix(rest, path.Ext(rest)), nil
}

func versionDigits(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return s, true
}
