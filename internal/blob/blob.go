// Package blob stores journal media and generated banner images.
package blob

import (
	"context"
	"errors"
	"path"
	"strings"
)

var (
	ErrObjectNotExist = errors.New("object does not exist")
)

// Store saves binary objects under slash-separated keys.
// Keys must not escape the store root.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	// URL returns the public address of key.
	URL(key string) string
}

var mimeTypes = map[string]string{
	".aac":  "audio/aac",
	".gif":  "image/gif",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".m4a":  "audio/mp4",
	".mov":  "video/quicktime",
	".mp3":  "audio/mpeg",
	".mp4":  "video/mp4",
	".mpeg": "video/mpeg",
	".oga":  "audio/ogg",
	".ogg":  "audio/ogg",
	".ogv":  "video/ogg",
	".opus": "audio/opus",
	".png":  "image/png",
	".wav":  "audio/wav",
	".weba": "audio/webm",
	".webm": "video/webm",
	".webp": "image/webp",
}

// MimeType returns the MIME type associated with the key extension.
func MimeType(key string) string {
	if mime, ok := mimeTypes[strings.ToLower(path.Ext(key))]; ok {
		return mime
	}
	return "application/octet-stream"
}

// Extension returns the preferred file extension for a MIME type, or "" if unknown.
func Extension(contentType string) string {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "audio/mpeg":
		return ".mp3"
	case "audio/ogg":
		return ".ogg"
	case "audio/webm":
		return ".webm"
	}
	for ext, mime := range mimeTypes {
		if mime == contentType {
			return ext
		}
	}
	return ""
}

// CleanKey normalizes key and rejects keys that are empty or leave the root.
func CleanKey(key string) (string, error) {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	if key == "" {
		return "", errors.New("object key cannot be empty")
	}
	cleaned := path.Clean("/" + key)
	if cleaned == "/" || strings.Contains(key, "..") {
		return "", errors.New("invalid object key: " + key)
	}
	return strings.TrimPrefix(cleaned, "/"), nil
}
