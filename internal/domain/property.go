package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertyType is the transaction type of a listing.
type PropertyType string

const (
	TypeSale PropertyType = "sale"
	TypeRent PropertyType = "rent"
)

// IsValid reports whether t is one of the allowed transaction types.
func (t PropertyType) IsValid() bool {
	return t == TypeSale || t == TypeRent
}

// ImageList is an ordered list of asset URLs (first entry is the cover image).
// The DB stores it as a JSON string; a value that fails to decode is treated
// as an empty list instead of failing the whole row read.
type ImageList []string

// Scan implements sql.Scanner for reading from DB (json column).
func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = ImageList{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for ImageList")
	}
	var urls []string
	if err := json.Unmarshal(raw, &urls); err != nil {
		*l = ImageList{}
		return nil
	}
	*l = ImageList(urls)
	return nil
}

// Value implements driver.Valuer for writing to DB.
func (l ImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	bs, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(bs), nil
}

// MarshalJSON sends images as [] instead of null when empty.
func (l ImageList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Property is a single classified ad for a place that is for sale or for rent.
// Exactly one pricing mode is populated: sale listings carry Price, rental
// listings carry Rent and Deposit; the other mode's fields stay null.
type Property struct {
	ID          uuid.UUID    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Slug        string       `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Type        PropertyType `gorm:"column:type;type:varchar(10);not null" json:"type"`
	Title       string       `gorm:"column:title;not null" json:"title"`
	Area        float64      `gorm:"column:area;not null" json:"area"`
	Address     *string      `gorm:"column:address" json:"address"`
	Description *string      `gorm:"column:description" json:"description"`
	Phone       *string      `gorm:"column:phone" json:"phone"`
	Price       *float64     `gorm:"column:price;type:decimal(18,2)" json:"price"`
	Rent        *float64     `gorm:"column:rent;type:decimal(18,2)" json:"rent"`
	Deposit     *float64     `gorm:"column:deposit;type:decimal(18,2)" json:"deposit"`
	Images      ImageList    `gorm:"column:images;type:json" json:"images"`
	CreatedAt   time.Time    `gorm:"column:created_at" json:"created_at"`
}

func (Property) TableName() string {
	return "properties"
}

// BeforeCreate sets id if not already set (DBs without default uuid).
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeSave rejects a row that carries both pricing modes. The validator
// already enforces this at the boundary; the hook keeps a row from reaching
// the DB through any other code path.
func (p *Property) BeforeSave(tx *gorm.DB) error {
	if p.Price != nil && (p.Rent != nil || p.Deposit != nil) {
		return ErrPricingConflict
	}
	return nil
}
