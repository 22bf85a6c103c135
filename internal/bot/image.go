package bot

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	maxImageSize = 5 << 20
	minImageSize = 512
)

var validMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// ImageFetcher downloads character images and checks that Telegram will
// accept them as photos.
type ImageFetcher struct {
	client *http.Client
}

func NewImageFetcher(client *http.Client) *ImageFetcher {
	return &ImageFetcher{client: client}
}

func (f *ImageFetcher) Fetch(ctx context.Context, url string) (tgbotapi.RequestFileData, error) {
	if url == "" {
		return nil, fmt.Errorf("empty image url")
	}

	imgData, contentType, err := f.downloadAndValidateImage(ctx, url)
	if err != nil {
		return nil, err
	}

	return tgbotapi.FileBytes{
		Name:  "character" + getExtensionFromContentType(contentType),
		Bytes: imgData,
	}, nil
}

func (f *ImageFetcher) downloadAndValidateImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request failed: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("http get failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("invalid status code: %d", resp.StatusCode)
	}

	imgData, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, "", fmt.Errorf("read failed: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(imgData)
	}

	if !validMimeTypes[contentType] {
		return nil, "", fmt.Errorf("invalid content type: %s", contentType)
	}

	if len(imgData) < minImageSize {
		return nil, "", fmt.Errorf("image too small: %d bytes", len(imgData))
	}

	_, _, err = image.DecodeConfig(bytes.NewReader(imgData))
	if err != nil {
		return nil, "", fmt.Errorf("invalid image format: %w", err)
	}

	return imgData, contentType, nil
}

func getExtensionFromContentType(contentType string) string {
	switch {
	case strings.Contains(contentType, "jpeg"):
		return ".jpg"
	case strings.Contains(contentType, "png"):
		return ".png"
	case strings.Contains(contentType, "gif"):
		return ".gif"
	default:
		return ".jpg"
	}
}
