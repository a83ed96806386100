// Package fs keeps archived exports under a local directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/ports"
)

var _ ports.Archive = (*Archive)(nil)

// Archive maps keys to files below root. Existing files are never replaced.
type Archive struct {
	root string
}

// New returns an archive rooted at root, creating the directory if needed.
func New(root string) (*Archive, error) {
	if root == "" {
		root = "./archive"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Archive{root: root}, nil
}

// sanitizeKey rejects empty, absolute and traversing keys.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid key contains '..'")
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("invalid absolute key")
	}
	return filepath.ToSlash(filepath.Clean(key)), nil
}

// Put streams r into a new file named by key.
func (a *Archive) Put(_ context.Context, key string, r io.Reader, contentType string) (ports.ArchiveObject, error) {
	clean, err := sanitizeKey(key)
	if err != nil {
		return ports.ArchiveObject{}, err
	}
	dataPath := filepath.Join(a.root, clean)
	if _, err := os.Stat(dataPath); err == nil {
		return ports.ArchiveObject{}, fmt.Errorf("%w: %s", ports.ErrArchiveConflict, key)
	}
	if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		return ports.ArchiveObject{}, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dataPath), ".tmp-*")
	if err != nil {
		return ports.ArchiveObject{}, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	size, err := io.Copy(tmp, r)
	if err != nil {
		_ = tmp.Close()
		return ports.ArchiveObject{}, err
	}
	if err := tmp.Close(); err != nil {
		return ports.ArchiveObject{}, err
	}
	if err := os.Rename(tmp.Name(), dataPath); err != nil {
		return ports.ArchiveObject{}, err
	}
	info, err := os.Stat(dataPath)
	if err != nil {
		return ports.ArchiveObject{}, err
	}
	return ports.ArchiveObject{Key: clean, Size: size, ContentType: contentType, LastModified: info.ModTime().UTC()}, nil
}

// Get opens the file stored under key.
func (a *Archive) Get(_ context.Context, key string) (io.ReadCloser, error) {
	clean, err := sanitizeKey(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(a.root, clean))
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ports.ErrArchiveNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}
