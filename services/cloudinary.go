package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

var Cloudinary *CloudinaryService

func InitializeCloudinary(cloudinaryURL string) error {
	if cloudinaryURL == "" {
		return fmt.Errorf("cloudinary URL is required")
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	Cloudinary = &CloudinaryService{cld: cld}
	return nil
}

// UploadImageFromBytes uploads a product image and returns its HTTPS URL.
func (cs *CloudinaryService) UploadImageFromBytes(data []byte, folder, filename string) (*uploader.UploadResult, error) {
	return cs.upload(data, folder, filename, "image")
}

// UploadFileFromBytes uploads a deliverable asset (zip, pdf, bundle) as a raw
// resource and returns its HTTPS URL.
func (cs *CloudinaryService) UploadFileFromBytes(data []byte, folder, filename string) (*uploader.UploadResult, error) {
	return cs.upload(data, folder, filename, "raw")
}

func (cs *CloudinaryService) upload(data []byte, folder, filename, resourceType string) (*uploader.UploadResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	publicID := fmt.Sprintf("%s/%s_%d", folder, strings.TrimSuffix(filename, filepath.Ext(filename)), time.Now().UnixNano())

	useFilename := true
	uniqueFilename := true
	overwrite := false
	result, err := cs.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:       publicID,
		Folder:         folder,
		UseFilename:    &useFilename,
		UniqueFilename: &uniqueFilename,
		Overwrite:      &overwrite,
		ResourceType:   resourceType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", resourceType, err)
	}

	// Normalize URLs to HTTPS to avoid production blocking
	if result != nil {
		if result.URL != "" {
			result.URL = forceHTTPS(result.URL)
		}
		if result.SecureURL != "" {
			result.SecureURL = forceHTTPS(result.SecureURL)
		} else if result.URL != "" {
			result.SecureURL = result.URL
		}
	}

	return result, nil
}

func (cs *CloudinaryService) DeleteAsset(publicID, resourceType string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := cs.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}

// ExtractPublicID pulls the public id out of a Cloudinary delivery URL.
func ExtractPublicID(url string) string {
	parts := strings.Split(url, "/")
	if len(parts) < 4 {
		return ""
	}

	// Take everything after the "upload" segment, minus the version prefix
	for i, part := range parts {
		if part == "upload" && i+1 < len(parts) {
			path := strings.Join(parts[i+1:], "/")
			if strings.Contains(path, "/") {
				pathParts := strings.Split(path, "/")
				if len(pathParts) > 1 && strings.HasPrefix(pathParts[0], "v") {
					path = strings.Join(pathParts[1:], "/")
				}
			}
			return strings.TrimSuffix(path, filepath.Ext(path))
		}
	}

	return ""
}

// forceHTTPS ensures Cloudinary URLs use the https scheme
func forceHTTPS(in string) string {
	if in == "" {
		return in
	}
	out := strings.TrimSpace(in)
	out = strings.Replace(out, "http://", "https://", 1)
	return out
}
