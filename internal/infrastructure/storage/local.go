// Package storage persists uploaded invoice documents on the local
// filesystem under the configured storage path.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// EvidenceStore saves invoice documents attached to proformas and returns a
// URL path the API can serve them from.
type EvidenceStore struct {
	basePath string
	maxSize  int64
}

// NewEvidenceStore creates a store rooted at basePath. The directory is
// created on first save.
func NewEvidenceStore(basePath string, maxSize int64) *EvidenceStore {
	return &EvidenceStore{basePath: basePath, maxSize: maxSize}
}

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// SaveInvoice writes the uploaded file under invoices/<proforma-id>/ and
// returns the relative URL it is served from.
func (s *EvidenceStore) SaveInvoice(proformaID uuid.UUID, file *multipart.FileHeader) (string, error) {
	if s.maxSize > 0 && file.Size > s.maxSize {
		return "", fmt.Errorf("file exceeds the maximum upload size of %d bytes", s.maxSize)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported file type %q, upload a pdf or image", ext)
	}

	dir := filepath.Join(s.basePath, "invoices", proformaID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	name := uuid.New().String() + ext
	dst := filepath.Join(dir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return "/storage/invoices/" + proformaID.String() + "/" + name, nil
}

// BasePath returns the filesystem root the store writes under.
func (s *EvidenceStore) BasePath() string { return s.basePath }
