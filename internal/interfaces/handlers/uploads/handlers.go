package uploads

import (
	"io"

	uploadsvc "amlak-backend/internal/application/uploads"
	"amlak-backend/internal/infrastructure/storage"
	"amlak-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles upload handlers with the service.
type Handlers struct {
	Service *uploadsvc.Service
}

// POST /api/v1/uploads, multipart field "files" (one or many).
// Per-file failures are reported in the body without failing the request.
func (h *Handlers) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, "No files uploaded", 400, nil)
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		headers = form.File["file"]
	}
	if len(headers) == 0 {
		return response.Error(c, "No files uploaded", 400, nil)
	}

	var batch []storage.File
	var failures []uploadsvc.Failure
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			failures = append(failures, uploadsvc.Failure{Name: fh.Filename, Error: err.Error()})
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			failures = append(failures, uploadsvc.Failure{Name: fh.Filename, Error: err.Error()})
			continue
		}
		batch = append(batch, storage.File{Name: fh.Filename, Data: data})
	}

	urls, uploadFailures := h.Service.UploadAll(c.Context(), batch)
	failures = append(failures, uploadFailures...)

	meta := map[string]interface{}{}
	if len(failures) > 0 {
		meta["failed_uploads"] = failures
	}
	return response.Success(c, "Files uploaded", fiber.Map{"urls": urls}, meta)
}
