package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Event types written by the properties service.
const (
	EventPropertyCreated = "property_created"
	EventPropertyUpdated = "property_updated"
	EventPropertyDeleted = "property_deleted"
)

// PropertyEvent is one entry in a listing's change log. Events are append-only
// and survive the listing itself, so deletes stay auditable.
type PropertyEvent struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	PropertyID uuid.UUID      `gorm:"column:property_id;type:uuid;index;not null" json:"property_id"`
	EventType  string         `gorm:"column:event_type;type:varchar(40);not null" json:"event_type"`
	EventData  datatypes.JSON `gorm:"column:event_data;type:json" json:"event_data"`
	CreatedAt  time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (PropertyEvent) TableName() string {
	return "property_events"
}

func (e *PropertyEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
