// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/NSriram5/neighborhoodrecipe-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IngredientRepository defines persistence operations for the global
// ingredient catalog.
type IngredientRepository interface {
	FindOrCreate(ctx context.Context, label string) (*models.Ingredient, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)
	List(ctx context.Context, limit, offset int) ([]models.Ingredient, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository returns a new IngredientRepository implementation.
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

// FindOrCreate resolves a label to its catalog row, inserting it if absent.
// The insert is a single ON CONFLICT DO NOTHING against the unique label
// index, so two requests racing on a brand-new label cannot create duplicate
// rows; whichever insert loses the race reads the winner's row back.
func (r *ingredientRepository) FindOrCreate(ctx context.Context, label string) (*models.Ingredient, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, models.NewValidationError("Ingredient label is required")
	}

	staged := models.Ingredient{Label: label}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "label"}},
			DoNothing: true,
		}).
		Create(&staged).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	// The staged struct keeps its locally generated ID even when the insert
	// lost the conflict, so always read the canonical row back.
	var ingredient models.Ingredient
	if err := r.db.WithContext(ctx).Where("label = ?", label).First(&ingredient).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Ingredient", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &ingredient, nil
}

func (r *ingredientRepository) List(ctx context.Context, limit, offset int) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.WithContext(ctx).
		Order("label ASC").
		Limit(limit).
		Offset(offset).
		Find(&ingredients).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ingredients, nil
}
