package repository

import (
	"context"

	"github.com/NSriram5/neighborhoodrecipe-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeIngredientRepository defines persistence operations for the
// recipe-to-ingredient join rows.
type RecipeIngredientRepository interface {
	GetByRecipe(ctx context.Context, recipeID uuid.UUID) ([]models.RecipeIngredient, error)
	BulkCreate(ctx context.Context, items []models.RecipeIngredient) error
	Upsert(ctx context.Context, item *models.RecipeIngredient) error
}

type recipeIngredientRepository struct {
	db *gorm.DB
}

// NewRecipeIngredientRepository returns a new RecipeIngredientRepository implementation.
func NewRecipeIngredientRepository(db *gorm.DB) RecipeIngredientRepository {
	return &recipeIngredientRepository{db: db}
}

func (r *recipeIngredientRepository) GetByRecipe(ctx context.Context, recipeID uuid.UUID) ([]models.RecipeIngredient, error) {
	var items []models.RecipeIngredient
	if err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_id = ?", recipeID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

// BulkCreate inserts all staged join rows in one statement. Used at recipe
// creation time; deduplication of (recipe, ingredient) pairs is the caller's
// responsibility.
func (r *recipeIngredientRepository) BulkCreate(ctx context.Context, items []models.RecipeIngredient) error {
	if len(items) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Upsert updates the row in place when the caller resolved an existing
// (recipe, ingredient) pair to its row ID, and inserts otherwise.
func (r *recipeIngredientRepository) Upsert(ctx context.Context, item *models.RecipeIngredient) error {
	if item.ID != 0 {
		if err := r.db.WithContext(ctx).
			Model(&models.RecipeIngredient{}).
			Where("id = ?", item.ID).
			Updates(map[string]interface{}{
				"quantity":          item.Quantity,
				"measurement":       item.Measurement,
				"prep_instructions": item.PrepInstructions,
				"additional_info":   item.AdditionalInfo,
			}).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
