package portraitgen

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Storage is an interface for saving downloaded results.
// Implementations can wrap any storage client; DirStorage writes to local disk.
type Storage interface {
	// SaveFile saves image data and returns where it can be accessed.
	// The path is relative to the storage root (e.g., "moon/2025-10-06_0.png").
	// The contentType is the image's MIME type (e.g., "image/png").
	SaveFile(ctx context.Context, data []byte, path string, contentType string) (string, error)
}

// StorageResult contains information about a saved image.
type StorageResult struct {
	// URL is where the image can be accessed (a file path for DirStorage)
	URL string

	// Path is the storage path/key where the image was saved
	Path string

	// Size is the number of bytes saved
	Size int
}

// DirStorage saves files below a local root directory.
type DirStorage struct {
	Root string
}

// NewDirStorage returns a DirStorage rooted at root.
func NewDirStorage(root string) *DirStorage {
	return &DirStorage{Root: root}
}

// SaveFile writes data to Root/path, creating parent directories.
func (s *DirStorage) SaveFile(ctx context.Context, data []byte, path string, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	full := filepath.Join(s.Root, filepath.Clean("/"+path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return full, nil
}

// SaveDataURI decodes a data URI result and saves it as {basePath}.{extension}.
func SaveDataURI(ctx context.Context, storage Storage, uri string, basePath string) (StorageResult, error) {
	if storage == nil {
		return StorageResult{}, ErrStorageNotConfigured
	}

	mediaType, payload, err := ParseDataURI(uri)
	if err != nil {
		return StorageResult{}, err
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return StorageResult{}, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}

	path := basePath + "." + extensionFromMIME(mediaType)
	url, err := storage.SaveFile(ctx, data, path, mediaType)
	if err != nil {
		return StorageResult{}, err
	}

	return StorageResult{
		URL:  url,
		Path: path,
		Size: len(data),
	}, nil
}

// SaveAll saves every result of a batch.
// Images are saved with paths like: {basePath}_{index}.{extension}
// It returns the results saved before the first failure along with that failure.
func SaveAll(ctx context.Context, storage Storage, uris []string, basePath string) ([]StorageResult, error) {
	if storage == nil {
		return nil, ErrStorageNotConfigured
	}

	results := make([]StorageResult, 0, len(uris))
	for i, uri := range uris {
		res, err := SaveDataURI(ctx, storage, uri, basePath+"_"+strconv.Itoa(i))
		if err != nil {
			return results, fmt.Errorf("image %d: %w", i, err)
		}
		results = append(results, res)
	}

	return results, nil
}

// MIMETypeFromExt returns the image MIME type for a file name's extension,
// or "" when the extension is missing or unknown.
func MIMETypeFromExt(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return ""
	}
}

// extensionFromMIME returns a file extension for common image MIME types.
func extensionFromMIME(mime string) string {
	switch mime {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}
