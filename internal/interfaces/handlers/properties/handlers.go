package properties

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"amlak-backend/internal/application/events"
	propsvc "amlak-backend/internal/application/properties"
	"amlak-backend/internal/application/uploads"
	"amlak-backend/internal/domain"
	"amlak-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *propsvc.Service
	Events  *events.Recorder
}

// GET /api/v1/properties?type=&q=&minArea=
func (h *Handlers) Search(c *fiber.Ctx) error {
	f := propsvc.Filter{
		Type:  c.Query("type"),
		Query: c.Query("q"),
	}
	// A minArea that does not parse is treated as omitted rather than turned
	// into a hard failure; listing pages degrade, they do not crash.
	if raw := strings.TrimSpace(c.Query("minArea")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MinArea = &v
		}
	}
	listings, err := h.Service.Search(c.Context(), f)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Properties fetched successfully", listings, nil)
}

// GET /api/v1/properties/:idOrSlug
func (h *Handlers) Get(c *fiber.Ctx) error {
	idOrSlug := c.Params("idOrSlug")
	if idOrSlug == "" {
		return response.Error(c, "id or slug is required", 400, nil)
	}
	p, err := h.Service.Get(c.Context(), idOrSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.Error(c, "Property not found", 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Property fetched successfully", p, nil)
}

// POST /api/v1/properties
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	p, failures, err := h.Service.Create(c.Context(), body, nil)
	if err != nil {
		return writeError(c, err)
	}
	return response.SuccessCreated(c, "Property created successfully", p, uploadMeta(failures))
}

// PUT /api/v1/properties/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", 400, nil)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	p, failures, err := h.Service.Update(c.Context(), id, body, nil)
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, "Property updated successfully", p, uploadMeta(failures))
}

// DELETE /api/v1/properties/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return response.Success(c, "Property deleted successfully", fiber.Map{"id": id}, nil)
}

// GET /api/v1/properties/:id/events
func (h *Handlers) ChangeLog(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", 400, nil)
	}
	evs, err := h.Events.ForProperty(c.Context(), id)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Property events fetched successfully", evs, nil)
}

func writeError(c *fiber.Ctx, err error) error {
	if ve, ok := domain.AsValidation(err); ok {
		return response.Error(c, ve.Error(), 400, fiber.Map{"field": ve.Field})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return response.Error(c, "Property not found", 404, nil)
	}
	return response.Error(c, "Internal Server Error", 500, nil)
}

// uploadMeta surfaces per-file upload failures in the response metadata
// without failing the overall request.
func uploadMeta(failures []uploads.Failure) interface{} {
	if len(failures) == 0 {
		return nil
	}
	return fiber.Map{"failed_uploads": failures}
}
