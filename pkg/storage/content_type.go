package storage

import (
	"mime"
	"path/filepath"
	"strings"
)

// Overrides for extensions the platform mime database gets wrong or does
// not know.
var knownContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".txt":  "text/plain",
	".csv":  "text/csv",
	".json": "application/json",
	".pdf":  "application/pdf",
	".zip":  "application/zip",
	".gz":   "application/gzip",
}

// DetectContentType determines the content type of a file from its
// extension, falling back to application/octet-stream.
func DetectContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	if contentType, ok := knownContentTypes[ext]; ok {
		return contentType
	}

	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType
	}

	return "application/octet-stream"
}

// IsImageFile checks if a file is an image based on its extension.
func IsImageFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".tiff", ".tif", ".bmp", ".heic", ".heif":
		return true
	default:
		return false
	}
}
