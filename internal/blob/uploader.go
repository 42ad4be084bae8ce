package blob

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// MaxDownloadSize bounds the size of a fetched source image.
const MaxDownloadSize = 20 << 20

// Uploader copies remote images into a Store.
type Uploader struct {
	store  Store
	client *http.Client
}

// NewUploader returns an Uploader. A nil client uses a client with a 60s timeout.
func NewUploader(store Store, client *http.Client) *Uploader {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Uploader{store: store, client: client}
}

// Upload fetches sourceURL (http, https or data URL), stores it as folder/id
// with an extension taken from its content type and returns the stored URL.
func (u *Uploader) Upload(ctx context.Context, sourceURL, folder, id string) (string, error) {
	if u == nil || u.store == nil {
		return "", fmt.Errorf("uploader not configured")
	}
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("object id cannot be empty")
	}

	data, contentType, err := u.fetch(ctx, sourceURL)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("source image is empty")
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	ext := Extension(contentType)
	if ext == "" {
		ext = ".png"
	}
	key := id + ext
	if folder = strings.Trim(folder, "/"); folder != "" {
		key = folder + "/" + key
	}
	if err := u.store.Put(ctx, key, data, contentType); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return u.store.URL(key), nil
}

func (u *Uploader) fetch(ctx context.Context, sourceURL string) ([]byte, string, error) {
	sourceURL = strings.TrimSpace(sourceURL)
	if strings.HasPrefix(sourceURL, "data:") {
		return DecodeDataURL(sourceURL)
	}

	parsed, err := url.Parse(sourceURL)
	if err != nil {
		return nil, "", fmt.Errorf("invalid source url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, "", fmt.Errorf("unsupported source url scheme: %q", parsed.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := u.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > MaxDownloadSize {
		return nil, "", fmt.Errorf("image exceeds %d bytes", MaxDownloadSize)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// DecodeDataURL decodes a base64 or percent-encoded data URL.
func DecodeDataURL(dataURL string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, "", fmt.Errorf("not a data url")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data url")
	}

	isBase64 := false
	if trimmed, found := strings.CutSuffix(meta, ";base64"); found {
		meta = trimmed
		isBase64 = true
	}
	contentType := meta
	if contentType == "" {
		contentType = "text/plain"
	}

	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("failed to decode data url: %w", err)
		}
		return data, contentType, nil
	}
	decoded, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode data url: %w", err)
	}
	return []byte(decoded), contentType, nil
}
