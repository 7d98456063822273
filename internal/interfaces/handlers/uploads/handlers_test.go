package uploads

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	uploadsvc "amlak-backend/internal/application/uploads"
	"amlak-backend/internal/infrastructure/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUploadTest(t *testing.T) *fiber.App {
	h := &Handlers{
		Service: &uploadsvc.Service{Assets: &storage.DiskStore{Dir: t.TempDir()}},
	}
	app := fiber.New()
	app.Post("/uploads", h.Upload)
	return app
}

func TestUpload_MultipleFiles(t *testing.T) {
	app := setupUploadTest(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range []string{"front.jpg", "back.png"} {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("image bytes for " + name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/uploads", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	data := result["data"].(map[string]interface{})
	urls := data["urls"].([]interface{})
	require.Len(t, urls, 2)
	for _, u := range urls {
		assert.Contains(t, u.(string), "/uploads/")
	}
}

func TestUpload_NoFiles(t *testing.T) {
	app := setupUploadTest(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("note", "not a file"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/uploads", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	errBody := result["error"].(map[string]interface{})
	assert.Equal(t, "No files uploaded", errBody["message"])
}
