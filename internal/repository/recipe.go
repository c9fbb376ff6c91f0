package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/NSriram5/neighborhoodrecipe-backend/internal/cache"
	"github.com/NSriram5/neighborhoodrecipe-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// DefaultListLimit is the page size for recipe listings when the caller
	// does not specify one.
	DefaultListLimit = 21
	// DefaultFullLimit bounds the candidate rows considered when hydrating a
	// single recipe from a fuzzy filter.
	DefaultFullLimit = 5
	// MaxListLimit caps every recipe listing page.
	MaxListLimit = 100
)

// RecipeFilter selects recipes for listing and hydration. Zero values mean
// "not filtered". ID and UserID match exactly; the text fields match as
// case-insensitive substrings.
type RecipeFilter struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	RecipeName   string
	Categories   string
	Instructions string
	ToolsNeeded  string
	Disabled     *bool
	Limit        int
	Offset       int
}

// RecipePage is one page of a recipe listing plus the total match count.
type RecipePage struct {
	Count int64           `json:"count"`
	Rows  []models.Recipe `json:"rows"`
}

// RecipeRepository defines the interface for recipe data operations.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	List(ctx context.Context, filter RecipeFilter) (*RecipePage, error)
	GetFull(ctx context.Context, filter RecipeFilter) (*models.FullRecipe, error)
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwners(ctx context.Context, ownerIDs []uuid.UUID, search string, limit, offset int) ([]models.Recipe, error)
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recipe", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &recipe, nil
}

// likePattern builds the argument for a case-insensitive substring match.
// LOWER(col) LIKE works on both postgres and sqlite, unlike ILIKE.
func likePattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}

// applyFilter translates a RecipeFilter into WHERE clauses.
func (r *recipeRepository) applyFilter(db *gorm.DB, filter RecipeFilter) *gorm.DB {
	if filter.ID != uuid.Nil {
		db = db.Where("id = ?", filter.ID)
	}
	if filter.UserID != uuid.Nil {
		db = db.Where("user_id = ?", filter.UserID)
	}
	if filter.RecipeName != "" {
		db = db.Where("LOWER(recipe_name) LIKE ?", likePattern(filter.RecipeName))
	}
	if filter.Categories != "" {
		db = db.Where("LOWER(flat_categories) LIKE ?", likePattern(filter.Categories))
	}
	if filter.Instructions != "" {
		db = db.Where("LOWER(flat_instructions) LIKE ?", likePattern(filter.Instructions))
	}
	if filter.ToolsNeeded != "" {
		db = db.Where("LOWER(tools_needed) LIKE ?", likePattern(filter.ToolsNeeded))
	}
	if filter.Disabled != nil {
		db = db.Where("disabled = ?", *filter.Disabled)
	}
	return db
}

func normalizePage(limit, offset, def int) (int, int) {
	if limit <= 0 {
		limit = def
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// List returns the total match count plus one page of rows with minimal
// owner info preloaded.
func (r *recipeRepository) List(ctx context.Context, filter RecipeFilter) (*RecipePage, error) {
	limit, offset := normalizePage(filter.Limit, filter.Offset, DefaultListLimit)

	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Recipe{}), filter).
		Count(&count).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var rows []models.Recipe
	if err := r.applyFilter(r.db.WithContext(ctx), filter).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return &RecipePage{Count: count, Rows: rows}, nil
}

// GetFull returns the first recipe matching the filter, hydrated with owner
// info and the complete ingredient list. Each ingredient carries the
// per-recipe quantity/measurement/notes merged in from its join row.
func (r *recipeRepository) GetFull(ctx context.Context, filter RecipeFilter) (*models.FullRecipe, error) {
	limit, offset := normalizePage(filter.Limit, filter.Offset, DefaultFullLimit)

	var candidates []models.Recipe
	if err := r.applyFilter(r.db.WithContext(ctx), filter).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&candidates).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(candidates) == 0 {
		return nil, models.NewNotFoundError("Recipe", filter.ID)
	}

	recipe := candidates[0]
	full := &models.FullRecipe{Recipe: recipe}
	if recipe.User != nil {
		owner := recipe.User.Public()
		full.Owner = &owner
		full.User = nil
	}

	var joins []models.RecipeIngredient
	if err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_id = ?", recipe.ID).
		Order("id ASC").
		Find(&joins).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	full.Ingredients = make([]models.RecipeIngredientDetail, 0, len(joins))
	for _, join := range joins {
		detail := models.RecipeIngredientDetail{
			IngredientID:     join.IngredientID,
			Quantity:         join.Quantity,
			Measurement:      join.Measurement,
			PrepInstructions: join.PrepInstructions,
			AdditionalInfo:   join.AdditionalInfo,
		}
		if join.Ingredient != nil {
			detail.Label = join.Ingredient.Label
		}
		full.Ingredients = append(full.Ingredients, detail)
	}

	return full, nil
}

func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	if err := r.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, recipe.ID)
	return nil
}

// Delete removes the recipe and its join rows in one transaction. Catalog
// ingredient rows are shared and never deleted.
func (r *recipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("id = ?", id).First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Recipe", id)
			}
			return models.NewInternalError(err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&recipe).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidateRecipe(ctx, id)
	return nil
}

// ListByOwners returns recipes owned by any of ownerIDs, optionally filtered
// by a search term OR-combined across the name, flattened categories,
// external reference, flattened instructions and flattened ingredients.
func (r *recipeRepository) ListByOwners(ctx context.Context, ownerIDs []uuid.UUID, search string, limit, offset int) ([]models.Recipe, error) {
	if len(ownerIDs) == 0 {
		return []models.Recipe{}, nil
	}
	limit, offset = normalizePage(limit, offset, DefaultListLimit)

	query := r.db.WithContext(ctx).Where("user_id IN ?", ownerIDs)
	if search != "" {
		like := likePattern(search)
		query = query.Where(
			r.db.Where("LOWER(recipe_name) LIKE ?", like).
				Or("LOWER(flat_categories) LIKE ?", like).
				Or("LOWER(website_reference) LIKE ?", like).
				Or("LOWER(flat_instructions) LIKE ?", like).
				Or("LOWER(flat_ingredients) LIKE ?", like),
		)
	}

	var recipes []models.Recipe
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}
