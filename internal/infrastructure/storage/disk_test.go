package storage

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_StoreAndDelete(t *testing.T) {
	d := &DiskStore{Dir: t.TempDir(), BaseURL: "http://localhost:8080"}

	url, err := d.Store(context.Background(), File{Name: "kitchen.jpg", Data: []byte("bytes")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	onDisk := filepath.Join(d.Dir, path.Base(url))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, []byte("bytes"), data)

	require.NoError(t, d.Delete(context.Background(), url))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStore_DeleteIsIdempotent(t *testing.T) {
	d := &DiskStore{Dir: t.TempDir()}

	url, err := d.Store(context.Background(), File{Name: "a.png", Data: []byte("x")})
	require.NoError(t, err)

	require.NoError(t, d.Delete(context.Background(), url))
	require.NoError(t, d.Delete(context.Background(), url))
	require.NoError(t, d.Delete(context.Background(), "http://elsewhere/uploads/never-existed.png"))
}

func TestDiskStore_NamesDoNotCollide(t *testing.T) {
	d := &DiskStore{Dir: t.TempDir()}

	u1, err := d.Store(context.Background(), File{Name: "same.jpg", Data: []byte("1")})
	require.NoError(t, err)
	u2, err := d.Store(context.Background(), File{Name: "same.jpg", Data: []byte("2")})
	require.NoError(t, err)
	assert.NotEqual(t, u1, u2)
}
