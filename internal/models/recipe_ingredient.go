package models

import (
	"github.com/google/uuid"
)

// RecipeIngredient links a recipe to a catalog ingredient and carries the
// relationship-specific quantity, measurement unit and notes. Uniqueness is
// per (recipe, ingredient) pair: updating an existing pair replaces these
// attributes in place rather than adding a second row.
type RecipeIngredient struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	RecipeID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient_pair" json:"recipeUuid"`
	IngredientID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient_pair" json:"ingredientUuid"`
	Quantity         float64   `json:"quantity"`
	Measurement      string    `json:"measurement"`
	PrepInstructions string    `json:"prepInstructions,omitempty"`
	AdditionalInfo   string    `json:"additionalInfo,omitempty"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

// TableName specifies the table name for GORM
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
