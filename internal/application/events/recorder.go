package events

import (
	"context"
	"encoding/json"

	"amlak-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recorder appends entries to the property change log. Logging a change must
// never fail the change itself, so Record only warns on error.
type Recorder struct {
	DB *gorm.DB
}

func (r *Recorder) Record(ctx context.Context, propertyID uuid.UUID, eventType string, payload interface{}) {
	if r == nil || r.DB == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Warn().Str("event_type", eventType).Err(err).Msg("Event payload marshal failed")
		data = []byte("{}")
	}
	ev := &domain.PropertyEvent{
		PropertyID: propertyID,
		EventType:  eventType,
		EventData:  datatypes.JSON(data),
	}
	if err := r.DB.WithContext(ctx).Create(ev).Error; err != nil {
		log.Warn().Str("event_type", eventType).Err(err).Msg("Event write failed")
	}
}

// ForProperty returns the change log for one listing, newest first.
func (r *Recorder) ForProperty(ctx context.Context, propertyID uuid.UUID) ([]domain.PropertyEvent, error) {
	var out []domain.PropertyEvent
	err := r.DB.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
