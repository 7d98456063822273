// Package storage holds the asset store backends for listing images.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// File is one uploaded file as received from the caller.
type File struct {
	Name string
	Data []byte
}

// Store persists image bytes and serves them back by public URL.
// Delete is idempotent: removing an asset that is already gone is not an error.
type Store interface {
	Store(ctx context.Context, file File) (string, error)
	Delete(ctx context.Context, url string) error
}

// objectName builds a collision-resistant asset name from the upload time and
// a random suffix, keeping the original extension. Collisions are made
// astronomically unlikely rather than checked for.
func objectName(originalName string) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}
