package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe represents a user-owned recipe. The Flat* columns are denormalized
// text copies kept in sync with the structured fields at every write so that
// substring search works without a full-text index:
//
//   - FlatInstructions is the exact JSON serialization of Instructions.
//   - FlatIngredients is the recipe's ingredient labels joined by single
//     spaces, in submission order.
//   - FlatCategories is the meal category concatenated with the diet category.
//
// They must never be written independently of the fields they derive from.
type Recipe struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipeUuid"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"userUuId"`
	RecipeName       string    `gorm:"not null;index" json:"recipeName"`
	MealCategory     string    `json:"mealCategory"`
	DietCategory     string    `json:"dietCategory"`
	FlatCategories   string    `json:"flatCategories"`
	ServingCount     int       `json:"servingCount"`
	WebsiteReference string    `json:"websiteReference"`
	FarenheitTemp    int       `json:"farenheitTemp"`
	MinuteTimeBake   int       `json:"minuteTimeBake"`
	MinuteTotalTime  int       `json:"minuteTotalTime"`
	MinutePrepTime   int       `json:"minutePrepTime"`
	Instructions     []string  `gorm:"serializer:json;type:text" json:"instructions"`
	FlatInstructions string    `gorm:"type:text" json:"flatInstructions"`
	FlatIngredients  string    `gorm:"type:text" json:"flatIngredients"`
	ToolsNeeded      string    `json:"toolsNeeded"`
	Calories         *float64  `json:"calories,omitempty"`
	ProteinGrams     *float64  `json:"proteinGrams,omitempty"`
	FatGrams         *float64  `json:"fatGrams,omitempty"`
	CarbGrams        *float64  `json:"carbGrams,omitempty"`
	Disabled         bool      `gorm:"not null;default:false" json:"disabled"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (Recipe) TableName() string {
	return "recipes"
}

// BeforeCreate assigns the UUID primary key when the caller did not.
func (r *Recipe) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredientDetail is one ingredient of a hydrated recipe: the catalog
// entry merged with the per-recipe quantity/measurement/prep metadata from
// its join row. The join row itself is not exposed.
type RecipeIngredientDetail struct {
	IngredientID     uuid.UUID `json:"ingredientUuid"`
	Label            string    `json:"label"`
	Quantity         float64   `json:"quantity"`
	Measurement      string    `json:"measurement"`
	PrepInstructions string    `json:"prepInstructions,omitempty"`
	AdditionalInfo   string    `json:"additionalInfo,omitempty"`
}

// FullRecipe is a fully hydrated recipe: base attributes plus owner info plus
// the complete ingredient list.
type FullRecipe struct {
	Recipe
	Owner       *PublicUser              `json:"owner,omitempty"`
	Ingredients []RecipeIngredientDetail `json:"ingredients"`
}
