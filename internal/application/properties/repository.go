package properties

import (
	"context"
	"errors"
	"strings"

	"amlak-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository owns the persisted property records. Concurrent updates to the
// same id are last-write-wins; there is no version column. Single-admin
// deployments make that an accepted limitation, not a bug to fix here.
type Repository struct {
	DB *gorm.DB
}

// Filter is the search contract: omitted fields mean "no filter", present
// fields compose with AND.
type Filter struct {
	Type    string
	Query   string
	MinArea *float64
}

func (r *Repository) Create(ctx context.Context, p *domain.Property) error {
	if err := r.DB.WithContext(ctx).Create(p).Error; err != nil {
		return err
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	var p domain.Property
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Property, error) {
	var p domain.Property
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Update replaces every mutable field from v; id, slug and created_at are
// never touched. The domain BeforeSave hook re-checks pricing exclusivity on
// the way out.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, v *Validated, images []string) (*domain.Property, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Type = v.Type
	p.Title = v.Title
	p.Area = v.Area
	p.Address = v.Address
	p.Description = v.Description
	p.Phone = v.Phone
	p.Price = v.Price
	p.Rent = v.Rent
	p.Deposit = v.Deposit
	p.Images = domain.ImageList(images)
	if err := r.DB.WithContext(ctx).Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Property{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search runs the filter with deterministic ordering: newest first, id as
// tie-break for equal timestamps. An empty result is a valid result.
func (r *Repository) Search(ctx context.Context, f Filter) ([]domain.Property, error) {
	tx := r.DB.WithContext(ctx).Model(&domain.Property{})
	if f.Type != "" {
		tx = tx.Where("type = ?", f.Type)
	}
	if f.Query != "" {
		q := "%" + strings.ToLower(f.Query) + "%"
		tx = tx.Where(
			"LOWER(title) LIKE ? OR LOWER(COALESCE(address, '')) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?",
			q, q, q,
		)
	}
	if f.MinArea != nil {
		tx = tx.Where("area >= ?", *f.MinArea)
	}
	var out []domain.Property
	if err := tx.Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
