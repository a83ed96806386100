package ports

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrArchiveNotFound   = errors.New("archived export not found")
	ErrArchiveConflict   = errors.New("archived export already exists")
	ErrArchiveNotEnabled = errors.New("export archive not configured")
)

// ArchiveObject describes one stored export.
type ArchiveObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"contentType,omitempty"`
	LastModified time.Time `json:"lastModified"`
}

// Archive keeps exported files in blob storage. Put never overwrites.
type Archive interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (ArchiveObject, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}
