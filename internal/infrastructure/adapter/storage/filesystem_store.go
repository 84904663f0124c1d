package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/helphub-app/helphub-server/internal/domain/port/core"
)

// FilesystemStore persists NGO verification documents on local disk, one
// directory per account
type FilesystemStore struct {
	baseDir string
	logger  core.Logger
}

// NewFilesystemStore creates a document store rooted at baseDir, creating
// the directory if needed
func NewFilesystemStore(baseDir string, logger core.Logger) (*FilesystemStore, error) {
	if baseDir == "" {
		baseDir = "./data/documents"
	}
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create document directory: %w", err)
	}
	return &FilesystemStore{baseDir: baseDir, logger: logger}, nil
}

// Save stores a document for the given owner and returns its storage path
func (s *FilesystemStore) Save(ctx context.Context, ownerPublicID, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ownerDir := filepath.Join(s.baseDir, ownerPublicID)
	if err := os.MkdirAll(ownerDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create owner directory: %w", err)
	}

	path := filepath.Join(ownerDir, sanitizeFilename(filename))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create document file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			s.logger.Warn("Failed to close document file", map[string]any{
				"path":  path,
				"error": closeErr.Error(),
			})
		}
	}()

	if _, err := io.Copy(file, content); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write document: %w", err)
	}

	s.logger.Debug("Stored verification document", map[string]any{
		"owner": ownerPublicID,
		"path":  path,
	})
	return path, nil
}

// sanitizeFilename strips path separators so an uploaded name can't escape
// the owner's directory
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "document"
	}
	return name
}
