package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Adnanwebguy1996/nex-goods-emporium/services"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 100 << 20 // 100MB

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".svg": true,
}

// UploadAsset handles POST /api/v1/admin/upload. kind=image stores a product
// image, kind=file stores a deliverable asset; the response carries the URL
// plus the descriptive file type/size strings shown on product cards.
func UploadAsset(c *gin.Context) {
	if services.Cloudinary == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Uploads are not configured"})
		return
	}

	kind := c.DefaultQuery("kind", "image")
	if kind != "image" && kind != "file" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be image or file"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 100MB upload limit"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if kind == "image" && !imageExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image format"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}

	if kind == "image" {
		uploaded, err := services.Cloudinary.UploadImageFromBytes(data, "products", fileHeader.Filename)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"url":     uploaded.SecureURL,
			"message": "Image uploaded successfully",
		})
		return
	}

	uploaded, err := services.Cloudinary.UploadFileFromBytes(data, "deliverables", fileHeader.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url":       uploaded.SecureURL,
		"file_type": strings.ToUpper(strings.TrimPrefix(ext, ".")),
		"file_size": humanSize(fileHeader.Size),
		"message":   "File uploaded successfully",
	})
}

func humanSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%dB", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
