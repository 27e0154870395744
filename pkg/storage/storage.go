package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore saves uploaded car photos on local disk and hands back the
// public URL path they are served under.
type ImageStore struct {
	dir       string
	urlPrefix string
}

const maxImageSize = 5 << 20 // 5MB

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &ImageStore{
		dir:       dir,
		urlPrefix: "/" + strings.TrimPrefix(filepath.ToSlash(filepath.Clean(dir)), "/"),
	}, nil
}

// SaveImage validates and stores an uploaded file under a generated name.
// The original filename is discarded; only its extension survives.
func (s *ImageStore) SaveImage(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > maxImageSize {
		return "", fmt.Errorf("image exceeds maximum size of %d bytes", int64(maxImageSize))
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + ext
	dstPath := filepath.Join(s.dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return path.Join(s.urlPrefix, name), nil
}

// Remove deletes a previously stored image given its public URL path.
// Unknown paths are ignored.
func (s *ImageStore) Remove(urlPath string) error {
	if !strings.HasPrefix(urlPath, s.urlPrefix+"/") {
		return nil
	}
	name := path.Base(urlPath)
	return os.Remove(filepath.Join(s.dir, name))
}

// Dir returns the directory images are stored in, for static serving.
func (s *ImageStore) Dir() string {
	return s.dir
}
