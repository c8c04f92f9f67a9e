// Package storage keeps uploaded proof images on the local filesystem
// and maps them to the public URLs recorded on bills.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProofStore writes proof files under a base directory served as
// static content. Stored names are random so original file names never
// reach the filesystem.
type ProofStore struct {
	baseDir       string
	publicBaseURL string
	logger        *zap.Logger
}

// NewProofStore creates a ProofStore rooted at baseDir. publicBaseURL
// is the URL prefix under which baseDir is served.
func NewProofStore(baseDir, publicBaseURL string, logger *zap.Logger) *ProofStore {
	return &ProofStore{
		baseDir:       baseDir,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		logger:        logger,
	}
}

// Save stores content under a random name keeping the original
// extension, and returns the public URL of the stored file.
func (s *ProofStore) Save(fileName string, content io.Reader) (string, error) {
	storedName := uuid.NewString() + filepath.Ext(fileName)
	fullPath := filepath.Join(s.baseDir, storedName)

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create proof directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		s.logger.Error("Failed to create proof file", zap.String("path", fullPath), zap.Error(err))
		return "", fmt.Errorf("failed to create proof file: %w", err)
	}
	defer file.Close()

	size, err := io.Copy(file, content)
	if err != nil {
		return "", fmt.Errorf("failed to write proof file: %w", err)
	}

	s.logger.Debug("Proof file saved",
		zap.String("path", fullPath),
		zap.Int64("size", size))

	return s.publicBaseURL + "/" + storedName, nil
}

// Delete removes a stored proof given its public URL. Unknown URLs are
// a no-op so bill deletion stays idempotent.
func (s *ProofStore) Delete(fileURL string) error {
	storedName := filepath.Base(fileURL)
	if storedName == "." || storedName == "/" || strings.Contains(storedName, "..") {
		return fmt.Errorf("invalid proof URL: %s", fileURL)
	}

	fullPath := filepath.Join(s.baseDir, storedName)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}
	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("failed to delete proof file: %w", err)
	}
	return nil
}

// Dir returns the base directory, for static file serving.
func (s *ProofStore) Dir() string {
	return s.baseDir
}
