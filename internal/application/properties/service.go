package properties

import (
	"context"
	"time"

	"amlak-backend/internal/application/events"
	"amlak-backend/internal/application/uploads"
	"amlak-backend/internal/domain"
	"amlak-backend/internal/infrastructure/storage"
	"amlak-backend/internal/pkg/slug"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service orchestrates listing writes: validation, image upload, slug
// derivation, persistence and asset cleanup. Reads go straight to the
// repository.
type Service struct {
	Repo    *Repository
	Uploads *uploads.Service
	Events  *events.Recorder
}

// Create validates the body, uploads any new files and persists the listing.
// Validation runs before any upload so a rejected request leaves nothing
// behind in the asset store. Freshly uploaded URLs are appended after the
// URLs already present in the body, preserving submission order.
func (s *Service) Create(ctx context.Context, body map[string]interface{}, files []storage.File) (*domain.Property, []uploads.Failure, error) {
	v, err := Validate(body)
	if err != nil {
		return nil, nil, err
	}

	urls, failures := s.Uploads.UploadAll(ctx, files)
	images := append(append([]string{}, v.Images...), urls...)

	now := time.Now().UTC()
	p := &domain.Property{
		Slug:        slug.Make(v.Title, now),
		Type:        v.Type,
		Title:       v.Title,
		Area:        v.Area,
		Address:     v.Address,
		Description: v.Description,
		Phone:       v.Phone,
		Price:       v.Price,
		Rent:        v.Rent,
		Deposit:     v.Deposit,
		Images:      domain.ImageList(images),
		CreatedAt:   now,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, failures, err
	}

	s.Events.Record(ctx, p.ID, domain.EventPropertyCreated, map[string]interface{}{
		"slug": p.Slug, "type": p.Type, "title": p.Title,
	})
	return p, failures, nil
}

// Update replaces the full field set of an existing listing. The record is
// fetched before any upload so an unknown id costs nothing, and previously
// owned assets that the new image set no longer references are deleted only
// after the repository update succeeds, so the record never points at a
// missing asset.
func (s *Service) Update(ctx context.Context, id uuid.UUID, body map[string]interface{}, files []storage.File) (*domain.Property, []uploads.Failure, error) {
	v, err := Validate(body)
	if err != nil {
		return nil, nil, err
	}

	prev, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	urls, failures := s.Uploads.UploadAll(ctx, files)
	images := append(append([]string{}, v.Images...), urls...)

	p, err := s.Repo.Update(ctx, id, v, images)
	if err != nil {
		return nil, failures, err
	}

	kept := make(map[string]bool, len(images))
	for _, u := range images {
		kept[u] = true
	}
	for _, u := range prev.Images {
		if !kept[u] {
			s.Uploads.Remove(ctx, u)
		}
	}

	s.Events.Record(ctx, p.ID, domain.EventPropertyUpdated, map[string]interface{}{
		"type": p.Type, "title": p.Title,
	})
	return p, failures, nil
}

// Delete removes the listing and then purges its image set. The delete is
// complete once the record is gone; a failed asset cleanup is logged and
// never resurrects the record or fails the operation. A second delete of the
// same id gets ErrNotFound before touching any asset.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	for _, u := range p.Images {
		s.Uploads.Remove(ctx, u)
	}
	log.Info().Str("id", id.String()).Int("images", len(p.Images)).Msg("Property deleted")

	s.Events.Record(ctx, id, domain.EventPropertyDeleted, map[string]interface{}{
		"slug": p.Slug, "title": p.Title, "images": len(p.Images),
	})
	return nil
}

// Get resolves a listing by id or, failing that, by slug.
func (s *Service) Get(ctx context.Context, idOrSlug string) (*domain.Property, error) {
	if id, err := uuid.Parse(idOrSlug); err == nil {
		return s.Repo.Get(ctx, id)
	}
	return s.Repo.GetBySlug(ctx, idOrSlug)
}

// Search runs a filtered listing query (see Repository.Search).
func (s *Service) Search(ctx context.Context, f Filter) ([]domain.Property, error) {
	return s.Repo.Search(ctx, f)
}
