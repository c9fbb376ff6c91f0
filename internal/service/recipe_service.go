package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/NSriram5/neighborhoodrecipe-backend/internal/cache"
	"github.com/NSriram5/neighborhoodrecipe-backend/internal/middleware"
	"github.com/NSriram5/neighborhoodrecipe-backend/internal/models"
	"github.com/NSriram5/neighborhoodrecipe-backend/internal/repository"

	"github.com/google/uuid"
)

// IngredientSpec is one ingredient line as submitted with a recipe: a catalog
// label plus the per-recipe quantity and notes.
type IngredientSpec struct {
	Label            string  `json:"label" validate:"required"`
	Quantity         float64 `json:"quantity" validate:"gte=0"`
	Measurement      string  `json:"measurement"`
	PrepInstructions string  `json:"prepInstructions"`
	AdditionalInfo   string  `json:"additionalInfo"`
}

// CreateRecipeInput carries everything needed to create a recipe. The flat
// search columns are derived here, never accepted from the caller.
type CreateRecipeInput struct {
	RecipeName       string   `json:"recipeName" validate:"required,min=1,max=200"`
	MealCategory     string   `json:"mealCategory"`
	DietCategory     string   `json:"dietCategory"`
	ServingCount     int      `json:"servingCount"`
	WebsiteReference string   `json:"websiteReference"`
	FarenheitTemp    int      `json:"farenheitTemp"`
	MinuteTimeBake   int      `json:"minuteTimeBake"`
	MinuteTotalTime  int      `json:"minuteTotalTime"`
	MinutePrepTime   int      `json:"minutePrepTime"`
	Instructions     []string `json:"instructions"`
	ToolsNeeded      string   `json:"toolsNeeded"`
	Calories         *float64 `json:"calories"`
	ProteinGrams     *float64 `json:"proteinGrams"`
	FatGrams         *float64 `json:"fatGrams"`
	CarbGrams        *float64 `json:"carbGrams"`

	Ingredients []IngredientSpec `json:"ingredients" validate:"dive"`
}

// UpdateRecipeInput is a partial update. Nil pointers and nil slices leave
// the stored value untouched; Ingredients listed here are merged into the
// recipe, never removed from it.
type UpdateRecipeInput struct {
	RecipeName       *string  `json:"recipeName" validate:"omitempty,min=1,max=200"`
	MealCategory     *string  `json:"mealCategory"`
	DietCategory     *string  `json:"dietCategory"`
	ServingCount     *int     `json:"servingCount"`
	WebsiteReference *string  `json:"websiteReference"`
	FarenheitTemp    *int     `json:"farenheitTemp"`
	MinuteTimeBake   *int     `json:"minuteTimeBake"`
	MinuteTotalTime  *int     `json:"minuteTotalTime"`
	MinutePrepTime   *int     `json:"minutePrepTime"`
	Instructions     []string `json:"instructions"`
	ToolsNeeded      *string  `json:"toolsNeeded"`
	Calories         *float64 `json:"calories"`
	ProteinGrams     *float64 `json:"proteinGrams"`
	FatGrams         *float64 `json:"fatGrams"`
	CarbGrams        *float64 `json:"carbGrams"`
	Disabled         *bool    `json:"disabled"`

	Ingredients []IngredientSpec `json:"ingredients" validate:"omitempty,dive"`
}

// RecipeResult is the outcome of a create or update. FailedLabels lists
// ingredient labels that could not be resolved against the catalog; the
// recipe itself is persisted regardless.
type RecipeResult struct {
	Recipe       *models.Recipe
	FailedLabels []string
}

// RecipeService contains business logic for recipes and their ingredient
// lines. Visibility scoping is delegated to the connection repository.
type RecipeService struct {
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
	joinRepo       repository.RecipeIngredientRepository
	connectionRepo repository.ConnectionRepository
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	joinRepo repository.RecipeIngredientRepository,
	connectionRepo repository.ConnectionRepository,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		joinRepo:       joinRepo,
		connectionRepo: connectionRepo,
	}
}

// flatInstructions serializes the step list exactly as it will be compared
// in searches. A nil or empty list flattens to "[]".
func flatInstructions(steps []string) string {
	if steps == nil {
		steps = []string{}
	}
	raw, err := json.Marshal(steps)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

// CreateRecipe persists a recipe and its ingredient lines for userID.
// Ingredient resolution is best effort: a label that cannot be resolved is
// reported in RecipeResult.FailedLabels and skipped, the rest of the recipe
// is stored normally.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, input CreateRecipeInput) (*RecipeResult, error) {
	if strings.TrimSpace(input.RecipeName) == "" {
		return nil, models.NewValidationError("recipeName is required")
	}

	recipe := &models.Recipe{
		UserID:           userID,
		RecipeName:       input.RecipeName,
		MealCategory:     input.MealCategory,
		DietCategory:     input.DietCategory,
		FlatCategories:   input.MealCategory + input.DietCategory,
		ServingCount:     input.ServingCount,
		WebsiteReference: input.WebsiteReference,
		FarenheitTemp:    input.FarenheitTemp,
		MinuteTimeBake:   input.MinuteTimeBake,
		MinuteTotalTime:  input.MinuteTotalTime,
		MinutePrepTime:   input.MinutePrepTime,
		Instructions:     input.Instructions,
		FlatInstructions: flatInstructions(input.Instructions),
		ToolsNeeded:      input.ToolsNeeded,
		Calories:         input.Calories,
		ProteinGrams:     input.ProteinGrams,
		FatGrams:         input.FatGrams,
		CarbGrams:        input.CarbGrams,
	}

	resolved := make([]models.RecipeIngredient, 0, len(input.Ingredients))
	labels := make([]string, 0, len(input.Ingredients))
	seen := make(map[uuid.UUID]int, len(input.Ingredients))
	var failed []string
	for _, spec := range input.Ingredients {
		ingredient, err := s.ingredientRepo.FindOrCreate(ctx, spec.Label)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "ingredient resolution failed",
				"label", spec.Label, "error", err)
			failed = append(failed, spec.Label)
			continue
		}
		line := models.RecipeIngredient{
			IngredientID:     ingredient.ID,
			Quantity:         spec.Quantity,
			Measurement:      spec.Measurement,
			PrepInstructions: spec.PrepInstructions,
			AdditionalInfo:   spec.AdditionalInfo,
		}
		// A recipe holds one line per catalog ingredient, so a repeated
		// label replaces the earlier line.
		if at, ok := seen[ingredient.ID]; ok {
			resolved[at] = line
			continue
		}
		seen[ingredient.ID] = len(resolved)
		labels = append(labels, ingredient.Label)
		resolved = append(resolved, line)
	}
	recipe.FlatIngredients = strings.Join(labels, " ")

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}

	if len(resolved) > 0 {
		for i := range resolved {
			resolved[i].RecipeID = recipe.ID
		}
		if err := s.joinRepo.BulkCreate(ctx, resolved); err != nil {
			return nil, err
		}
	}

	return &RecipeResult{Recipe: recipe, FailedLabels: failed}, nil
}

// GetRecipe returns the base recipe row.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	return s.recipeRepo.GetByID(ctx, id)
}

// GetFullRecipe returns a hydrated recipe. Exact-ID lookups go through the
// cache; fuzzy lookups always hit the database.
func (s *RecipeService) GetFullRecipe(ctx context.Context, filter repository.RecipeFilter) (*models.FullRecipe, error) {
	if filter.ID != uuid.Nil {
		var full models.FullRecipe
		err := cache.Aside(ctx, cache.FullRecipeKey(filter.ID), &full, cache.FullRecipeTTL, func() error {
			got, err := s.recipeRepo.GetFull(ctx, filter)
			if err != nil {
				return err
			}
			full = *got
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &full, nil
	}
	return s.recipeRepo.GetFull(ctx, filter)
}

// ListRecipes returns one administrative page of recipes with the total
// match count.
func (s *RecipeService) ListRecipes(ctx context.Context, filter repository.RecipeFilter) (*repository.RecipePage, error) {
	return s.recipeRepo.List(ctx, filter)
}

// UpdateRecipe applies a partial update to an existing recipe. Ingredient
// lines are reconciled by catalog identity: new labels are attached, changed
// lines are updated in place, lines not mentioned are left alone. The flat
// search columns are recomputed from the stored state after the merge.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, input UpdateRecipeInput) (*RecipeResult, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.RecipeName != nil {
		recipe.RecipeName = *input.RecipeName
	}
	if input.MealCategory != nil {
		recipe.MealCategory = *input.MealCategory
	}
	if input.DietCategory != nil {
		recipe.DietCategory = *input.DietCategory
	}
	if input.ServingCount != nil {
		recipe.ServingCount = *input.ServingCount
	}
	if input.WebsiteReference != nil {
		recipe.WebsiteReference = *input.WebsiteReference
	}
	if input.FarenheitTemp != nil {
		recipe.FarenheitTemp = *input.FarenheitTemp
	}
	if input.MinuteTimeBake != nil {
		recipe.MinuteTimeBake = *input.MinuteTimeBake
	}
	if input.MinuteTotalTime != nil {
		recipe.MinuteTotalTime = *input.MinuteTotalTime
	}
	if input.MinutePrepTime != nil {
		recipe.MinutePrepTime = *input.MinutePrepTime
	}
	if input.Instructions != nil {
		recipe.Instructions = input.Instructions
	}
	if input.ToolsNeeded != nil {
		recipe.ToolsNeeded = *input.ToolsNeeded
	}
	if input.Calories != nil {
		recipe.Calories = input.Calories
	}
	if input.ProteinGrams != nil {
		recipe.ProteinGrams = input.ProteinGrams
	}
	if input.FatGrams != nil {
		recipe.FatGrams = input.FatGrams
	}
	if input.CarbGrams != nil {
		recipe.CarbGrams = input.CarbGrams
	}
	if input.Disabled != nil {
		recipe.Disabled = *input.Disabled
	}
	recipe.FlatCategories = recipe.MealCategory + recipe.DietCategory
	recipe.FlatInstructions = flatInstructions(recipe.Instructions)

	var failed []string
	if len(input.Ingredients) > 0 {
		failed, err = s.mergeIngredients(ctx, recipe.ID, input.Ingredients)
		if err != nil {
			return nil, err
		}
	}

	flat, err := s.flatIngredientLabels(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}
	recipe.FlatIngredients = flat

	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return &RecipeResult{Recipe: recipe, FailedLabels: failed}, nil
}

// mergeIngredients reconciles submitted ingredient lines against the stored
// join rows. Unresolvable labels are collected, not fatal.
func (s *RecipeService) mergeIngredients(ctx context.Context, recipeID uuid.UUID, specs []IngredientSpec) ([]string, error) {
	existing, err := s.joinRepo.GetByRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	byIngredient := make(map[uuid.UUID]models.RecipeIngredient, len(existing))
	for _, join := range existing {
		byIngredient[join.IngredientID] = join
	}

	var failed []string
	for _, spec := range specs {
		ingredient, err := s.ingredientRepo.FindOrCreate(ctx, spec.Label)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "ingredient resolution failed",
				"label", spec.Label, "error", err)
			failed = append(failed, spec.Label)
			continue
		}

		join, ok := byIngredient[ingredient.ID]
		if ok &&
			join.Quantity == spec.Quantity &&
			join.Measurement == spec.Measurement &&
			join.PrepInstructions == spec.PrepInstructions &&
			join.AdditionalInfo == spec.AdditionalInfo {
			continue
		}

		next := models.RecipeIngredient{
			ID:               join.ID,
			RecipeID:         recipeID,
			IngredientID:     ingredient.ID,
			Quantity:         spec.Quantity,
			Measurement:      spec.Measurement,
			PrepInstructions: spec.PrepInstructions,
			AdditionalInfo:   spec.AdditionalInfo,
		}
		if err := s.joinRepo.Upsert(ctx, &next); err != nil {
			return nil, err
		}
		// A later duplicate of the same label reconciles against this
		// line instead of inserting a second row for the pair.
		byIngredient[ingredient.ID] = next
	}
	return failed, nil
}

// flatIngredientLabels rebuilds the denormalized label column from the join
// rows in attachment order.
func (s *RecipeService) flatIngredientLabels(ctx context.Context, recipeID uuid.UUID) (string, error) {
	joins, err := s.joinRepo.GetByRecipe(ctx, recipeID)
	if err != nil {
		return "", err
	}
	labels := make([]string, 0, len(joins))
	for _, join := range joins {
		if join.Ingredient != nil {
			labels = append(labels, join.Ingredient.Label)
		}
	}
	return strings.Join(labels, " "), nil
}

// DeleteRecipe removes the recipe and its ingredient lines.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return s.recipeRepo.Delete(ctx, id)
}

// VisibleRecipes lists recipes the user may see: their own, plus those of
// accepted connections when includeConnections is set. The search term is
// matched as a substring across all the searchable columns at once.
func (s *RecipeService) VisibleRecipes(ctx context.Context, userID uuid.UUID, includeConnections bool, search string, limit, offset int) ([]models.Recipe, error) {
	ownerIDs := []uuid.UUID{userID}
	if includeConnections {
		connected, err := s.connectionRepo.GetConnectedIDs(ctx, userID)
		if err != nil {
			return nil, err
		}
		ownerIDs = append(ownerIDs, connected...)
	}
	return s.recipeRepo.ListByOwners(ctx, ownerIDs, search, limit, offset)
}
