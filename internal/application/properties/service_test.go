package properties

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"amlak-backend/internal/application/events"
	"amlak-backend/internal/application/uploads"
	"amlak-backend/internal/domain"
	"amlak-backend/internal/infrastructure/storage"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeStore is an in-memory asset store double.
type fakeStore struct {
	mu         sync.Mutex
	files      map[string][]byte
	storeCalls int
	failNames  map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: map[string][]byte{}, failNames: map[string]bool{}}
}

func (f *fakeStore) Store(ctx context.Context, file storage.File) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.storeCalls++
	if f.failNames[file.Name] {
		return "", errors.New("disk full")
	}
	url := fmt.Sprintf("http://assets.test/uploads/%s", file.Name)
	f.files[url] = file.Data
	return url, nil
}

func (f *fakeStore) Delete(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, url)
	return nil
}

func (f *fakeStore) has(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[url]
	return ok
}

func setupService(t *testing.T) (*Service, *fakeStore, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Property{}, &domain.PropertyEvent{}))
	fs := newFakeStore()
	svc := &Service{
		Repo:    &Repository{DB: db},
		Uploads: &uploads.Service{Assets: fs},
		Events:  &events.Recorder{DB: db},
	}
	return svc, fs, db
}

func file(name string) storage.File {
	return storage.File{Name: name, Data: []byte(name)}
}

func TestService_CreateRoundTrip(t *testing.T) {
	svc, _, _ := setupService(t)

	p, failures, err := svc.Create(context.Background(), saleBody(), nil)
	require.NoError(t, err)
	assert.Empty(t, failures)
	assert.False(t, p.CreatedAt.IsZero())
	assert.True(t, strings.HasPrefix(p.Slug, "flat-"))

	byID, err := svc.Get(context.Background(), p.ID.String())
	require.NoError(t, err)
	assert.Equal(t, p.Title, byID.Title)
	assert.Equal(t, p.Area, byID.Area)
	require.NotNil(t, byID.Price)
	assert.Equal(t, 500000.0, *byID.Price)
	assert.Nil(t, byID.Rent)
	assert.Nil(t, byID.Deposit)

	bySlug, err := svc.Get(context.Background(), p.Slug)
	require.NoError(t, err)
	assert.Equal(t, p.ID, bySlug.ID)
}

func TestService_ValidationFailureSkipsUploads(t *testing.T) {
	svc, fs, _ := setupService(t)

	body := map[string]interface{}{"type": "sale", "title": "X", "area": 50.0}
	_, _, err := svc.Create(context.Background(), body, []storage.File{file("a.jpg")})
	_, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Zero(t, fs.storeCalls, "no upload may happen for a rejected request")
}

func TestService_SlugSurvivesTitleEdit(t *testing.T) {
	svc, _, _ := setupService(t)

	p, _, err := svc.Create(context.Background(), saleBody(), nil)
	require.NoError(t, err)

	body := saleBody()
	body["title"] = "Completely different title"
	updated, _, err := svc.Update(context.Background(), p.ID, body, nil)
	require.NoError(t, err)
	assert.Equal(t, "Completely different title", updated.Title)
	assert.Equal(t, p.Slug, updated.Slug)
	assert.Equal(t, p.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestService_UpdatePreservesImageOrder(t *testing.T) {
	svc, _, _ := setupService(t)

	body := saleBody()
	body["images"] = []interface{}{"http://assets.test/uploads/u0.jpg"}
	p, _, err := svc.Create(context.Background(), body, nil)
	require.NoError(t, err)

	updated, failures, err := svc.Update(context.Background(), p.ID, body,
		[]storage.File{file("a.jpg"), file("b.jpg")})
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, updated.Images, 3)
	assert.Equal(t, "http://assets.test/uploads/u0.jpg", updated.Images[0])
	assert.True(t, strings.HasSuffix(updated.Images[1], "a.jpg"))
	assert.True(t, strings.HasSuffix(updated.Images[2], "b.jpg"))
}

func TestService_UpdateDeletesDroppedAssets(t *testing.T) {
	svc, fs, _ := setupService(t)

	p, _, err := svc.Create(context.Background(), saleBody(),
		[]storage.File{file("keep.jpg"), file("drop.jpg")})
	require.NoError(t, err)
	require.Len(t, p.Images, 2)
	keepURL, dropURL := p.Images[0], p.Images[1]

	body := saleBody()
	body["images"] = []interface{}{keepURL}
	updated, _, err := svc.Update(context.Background(), p.ID, body, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ImageList{keepURL}, updated.Images)
	assert.True(t, fs.has(keepURL))
	assert.False(t, fs.has(dropURL), "asset dropped from the form must be purged")
}

func TestService_UpdateUnknownIDBeforeUploads(t *testing.T) {
	svc, fs, _ := setupService(t)

	_, _, err := svc.Update(context.Background(), [16]byte{9}, saleBody(),
		[]storage.File{file("a.jpg")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, fs.storeCalls)
}

func TestService_PartialUploadBatch(t *testing.T) {
	svc, fs, _ := setupService(t)
	fs.failNames["bad.jpg"] = true

	p, failures, err := svc.Create(context.Background(), saleBody(),
		[]storage.File{file("ok.jpg"), file("bad.jpg"), file("also-ok.jpg")})
	require.NoError(t, err, "a failed file must not fail the request")
	require.Len(t, failures, 1)
	assert.Equal(t, "bad.jpg", failures[0].Name)
	require.Len(t, p.Images, 2)
	assert.True(t, strings.HasSuffix(p.Images[0], "ok.jpg"))
	assert.True(t, strings.HasSuffix(p.Images[1], "also-ok.jpg"))
}

func TestService_DeletePurgesAssets(t *testing.T) {
	svc, fs, db := setupService(t)

	p, _, err := svc.Create(context.Background(), saleBody(),
		[]storage.File{file("u1.jpg"), file("u2.jpg")})
	require.NoError(t, err)
	u1, u2 := p.Images[0], p.Images[1]

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	assert.False(t, fs.has(u1))
	assert.False(t, fs.has(u2))

	_, err = svc.Get(context.Background(), p.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// second delete: NotFound, no error out of asset cleanup
	assert.ErrorIs(t, svc.Delete(context.Background(), p.ID), domain.ErrNotFound)

	// change log kept: created + deleted
	var count int64
	require.NoError(t, db.Model(&domain.PropertyEvent{}).
		Where("property_id = ?", p.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestService_SearchEmptyIsNotAnError(t *testing.T) {
	svc, _, _ := setupService(t)
	out, err := svc.Search(context.Background(), Filter{Query: "nonexistent-string-xyz"})
	require.NoError(t, err)
	assert.Empty(t, out)
}
