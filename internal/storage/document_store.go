// Package storage manages the on-disk layout of generated documents. Each
// report gets its own folder under the configured base directory.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DocumentStore resolves and prepares output paths for generated documents
type DocumentStore struct {
	baseDir string
	logger  *zap.Logger
}

// NewDocumentStore creates a document store rooted at baseDir
func NewDocumentStore(baseDir string, logger *zap.Logger) *DocumentStore {
	return &DocumentStore{baseDir: baseDir, logger: logger}
}

// ReportDir returns the directory holding a report's generated documents,
// creating it if needed
func (s *DocumentStore) ReportDir(reportID string) (string, error) {
	if err := validateSegment(reportID); err != nil {
		return "", err
	}

	dir := filepath.Join(s.baseDir, reportID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		s.logger.Error("Failed to create report document directory",
			zap.String("dir", dir), zap.Error(err))
		return "", fmt.Errorf("create document directory: %w", err)
	}
	return dir, nil
}

// StatementPath returns the target path for a report's expense statement
// workbook
func (s *DocumentStore) StatementPath(reportID string) (string, error) {
	dir, err := s.ReportDir(reportID)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fmt.Sprintf("rincian-biaya-%s.xlsx", reportID)), nil
}

// validateSegment rejects identifiers that would escape the base directory.
// Report IDs come straight from URL parameters.
func validateSegment(id string) error {
	if id == "" || id == "." || id == ".." ||
		strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("unsafe document path segment: %q", id)
	}
	return nil
}
