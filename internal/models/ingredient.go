package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is a global catalog entry, deduplicated by label. Rows are
// created lazily when a recipe first mentions a label and are shared by every
// recipe that uses it; no recipe owns them and they are never deleted.
type Ingredient struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"ingredientUuid"`
	Label string    `gorm:"uniqueIndex;not null" json:"label"`
}

// TableName specifies the table name for GORM
func (Ingredient) TableName() string {
	return "ingredients"
}

// BeforeCreate assigns the UUID primary key when the caller did not.
func (i *Ingredient) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
