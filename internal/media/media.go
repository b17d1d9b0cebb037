// Package media implements the object store holding generated hero images.
// The store is an interface so the pipeline never knows where bytes live;
// the shipped implementation keeps them on local disk and serves them
// through the HTTP /media/ route.
package media

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Object is one stored blob with its content type.
type Object struct {
	Body        []byte
	ContentType string
}

// Store is the object-store contract consumed by the hero image pipeline
// and the media-serving route.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) (*Object, error)
	List(ctx context.Context) ([]string, error)
}

// ErrNotFound is returned by Get for keys with no stored object.
var ErrNotFound = fmt.Errorf("media: object not found")

// DiskStore stores objects as files under a root directory. Content types
// are derived from key extensions on read.
type DiskStore struct {
	root string
}

// NewDiskStore creates the root directory if needed and returns a store
// backed by it.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Put writes data under key. The contentType argument is part of the store
// contract; the disk implementation relies on the key's extension instead.
func (s *DiskStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write object %s: %w", key, err)
	}
	return nil
}

// Get returns the stored object for key, or ErrNotFound.
func (s *DiskStore) Get(ctx context.Context, key string) (*Object, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Object{Body: data, ContentType: contentType}, nil
}

// List returns all stored keys in lexical order.
func (s *DiskStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list media directory: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		keys = append(keys, entry.Name())
	}
	sort.Strings(keys)
	return keys, nil
}

// resolve maps a key to a path inside the root, rejecting traversal.
func (s *DiskStore) resolve(key string) (string, error) {
	if key == "" || strings.Contains(key, "..") || strings.ContainsAny(key, "/\\") {
		return "", fmt.Errorf("media: invalid key %q", key)
	}
	return filepath.Join(s.root, key), nil
}
