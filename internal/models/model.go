package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultModel is the base model for all models.
//
// IDs are strings so that derived records like bill payments and split
// parts can carry readable IDs. New records without an ID get a UUID.
type DefaultModel struct {
	ID string `json:"id" gorm:"primaryKey"`
	Timestamps
}

// Timestamps are set by gorm.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AfterFind sets the timestamps to UTC.
//
// They are stored in UTC, but sqlite returns them as +0000.
func (m *DefaultModel) AfterFind(_ *gorm.DB) (err error) {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)
	return nil
}

// BeforeCreate generates an ID unless one is set.
func (m *DefaultModel) BeforeCreate(_ *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
