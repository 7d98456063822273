package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DiskStore writes assets to a local directory served as static files.
type DiskStore struct {
	// Dir is the directory files are written to.
	Dir string
	// BaseURL prefixes the returned public URLs, e.g. "http://localhost:8080".
	// Empty means URLs are root-relative ("/uploads/<name>").
	BaseURL string
}

// Store writes the file under a fresh name and returns its public URL.
// O_EXCL makes an accidental name reuse fail loudly instead of overwriting.
func (d *DiskStore) Store(ctx context.Context, file File) (string, error) {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", fmt.Errorf("disk store: create dir: %w", err)
	}
	name := objectName(file.Name)
	f, err := os.OpenFile(filepath.Join(d.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("disk store: create %s: %w", name, err)
	}
	if _, err := f.Write(file.Data); err != nil {
		f.Close()
		return "", fmt.Errorf("disk store: write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("disk store: close %s: %w", name, err)
	}
	return fmt.Sprintf("%s/uploads/%s", strings.TrimRight(d.BaseURL, "/"), name), nil
}

// Delete removes the file the URL points at. A missing file is not an error.
func (d *DiskStore) Delete(ctx context.Context, url string) error {
	name := path.Base(url)
	if name == "" || name == "." || name == "/" {
		return nil
	}
	if err := os.Remove(filepath.Join(d.Dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("disk store: delete %s: %w", name, err)
	}
	return nil
}
