// Package storage persists export artifacts (workbooks, CSV extracts) on the
// local filesystem, with JSON sidecar metadata per artifact.
package storage

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// FileInfo contains metadata about a stored artifact
type FileInfo struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	Path        string    `json:"path"` // Internal storage path
	CreatedAt   time.Time `json:"created_at"`
}

// Storage defines the interface for artifact storage operations
type Storage interface {
	// Save stores an artifact and returns its metadata
	Save(ctx context.Context, filename string, contentType string, r io.Reader) (*FileInfo, error)

	// Open retrieves an artifact by its ID
	Open(ctx context.Context, fileID uuid.UUID) (io.ReadCloser, *FileInfo, error)

	// Delete removes an artifact by its ID
	Delete(ctx context.Context, fileID uuid.UUID) error

	// List returns all stored artifacts
	List(ctx context.Context) ([]*FileInfo, error)

	// GetInfo returns metadata for an artifact without opening it
	GetInfo(ctx context.Context, fileID uuid.UUID) (*FileInfo, error)
}

// Config holds storage configuration
type Config struct {
	// LocalPath is the artifact directory on disk.
	LocalPath string
}

// New creates a Storage implementation based on configuration
func New(cfg *Config) (Storage, error) {
	return NewLocalStorage(cfg.LocalPath)
}
