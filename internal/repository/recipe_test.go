package repository

import (
	"context"
	"testing"

	"github.com/NSriram5/neighborhoodrecipe-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedRecipe inserts a recipe with join rows for the given ingredient labels,
// all with the supplied quantity and measurement per label.
type ingredientLine struct {
	label       string
	quantity    float64
	measurement string
}

func seedRecipe(t *testing.T, owner *models.User, name string, lines []ingredientLine) *models.Recipe {
	t.Helper()
	ctx := context.Background()
	ingredients := NewIngredientRepository(testDB)
	joins := NewRecipeIngredientRepository(testDB)

	recipe := &models.Recipe{
		UserID:           owner.ID,
		RecipeName:       name,
		MealCategory:     "dinner",
		DietCategory:     "pescatarian",
		FlatCategories:   "dinnerpescatarian",
		Instructions:     []string{"Hello there"},
		FlatInstructions: `["Hello there"]`,
	}

	labels := ""
	staged := make([]models.RecipeIngredient, 0, len(lines))
	for i, line := range lines {
		ingredient, err := ingredients.FindOrCreate(ctx, line.label)
		require.NoError(t, err)
		if i > 0 {
			labels += " "
		}
		labels += ingredient.Label
		staged = append(staged, models.RecipeIngredient{
			IngredientID: ingredient.ID,
			Quantity:     line.quantity,
			Measurement:  line.measurement,
		})
	}
	recipe.FlatIngredients = labels

	require.NoError(t, NewRecipeRepository(testDB).Create(ctx, recipe))
	for i := range staged {
		staged[i].RecipeID = recipe.ID
	}
	require.NoError(t, joins.BulkCreate(ctx, staged))
	return recipe
}

func TestRecipeGetFullByName(t *testing.T) {
	repo := NewRecipeRepository(testDB)
	ctx := context.Background()

	owner := seedUser(t)
	name := "Grilled Fish Bowl " + uniqueLabel("r")
	seedRecipe(t, owner, name, []ingredientLine{
		{label: uniqueLabel("fish"), quantity: 20, measurement: "cup"},
		{label: uniqueLabel("broccoli"), quantity: 5, measurement: "tablespoon"},
	})

	full, err := repo.GetFull(ctx, RecipeFilter{RecipeName: "grilled fish bowl"})
	require.NoError(t, err)

	assert.Equal(t, name, full.RecipeName)
	require.NotNil(t, full.Owner)
	assert.Equal(t, owner.UserName, full.Owner.UserName)
	assert.Nil(t, full.User, "raw account record must not leak through hydration")

	require.Len(t, full.Ingredients, 2)
	assert.Equal(t, float64(20), full.Ingredients[0].Quantity)
	assert.Equal(t, "cup", full.Ingredients[0].Measurement)
	assert.Equal(t, float64(5), full.Ingredients[1].Quantity)
	assert.Equal(t, "tablespoon", full.Ingredients[1].Measurement)
	for _, detail := range full.Ingredients {
		assert.NotEmpty(t, detail.Label)
		assert.NotEqual(t, uuid.Nil, detail.IngredientID)
	}
}

func TestRecipeGetFullNotFound(t *testing.T) {
	repo := NewRecipeRepository(testDB)
	_, err := repo.GetFull(context.Background(), RecipeFilter{ID: uuid.New()})
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestRecipeListFilters(t *testing.T) {
	repo := NewRecipeRepository(testDB)
	ctx := context.Background()

	owner := seedUser(t)
	marker := uniqueLabel("tool")
	first := seedRecipe(t, owner, "Weeknight Stew "+marker, nil)
	first.ToolsNeeded = "dutch oven " + marker
	require.NoError(t, repo.Update(ctx, first))
	seedRecipe(t, owner, "Weekend Roast "+marker, nil)

	page, err := repo.List(ctx, RecipeFilter{UserID: owner.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Count)
	require.Len(t, page.Rows, 2)
	require.NotNil(t, page.Rows[0].User)
	assert.Equal(t, owner.UserName, page.Rows[0].User.UserName)

	// Case-insensitive substring on the name narrows to one.
	page, err = repo.List(ctx, RecipeFilter{UserID: owner.ID, RecipeName: "weeknight"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Count)

	page, err = repo.List(ctx, RecipeFilter{UserID: owner.ID, ToolsNeeded: "DUTCH OVEN"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Count)

	// Count reflects all matches even when the page is smaller.
	page, err = repo.List(ctx, RecipeFilter{UserID: owner.ID, Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Count)
	assert.Len(t, page.Rows, 1)
}

func TestRecipeListByOwners(t *testing.T) {
	repo := NewRecipeRepository(testDB)
	ctx := context.Background()

	alice := seedUser(t)
	bob := seedUser(t)
	stranger := seedUser(t)

	fish := uniqueLabel("halibut")
	seedRecipe(t, alice, "Pan Seared "+uniqueLabel("r"), []ingredientLine{{label: fish, quantity: 1, measurement: "fillet"}})
	seedRecipe(t, bob, "Simple Salad "+uniqueLabel("r"), nil)
	seedRecipe(t, stranger, "Hidden Dish "+fish, nil)

	rows, err := repo.ListByOwners(ctx, []uuid.UUID{alice.ID, bob.ID}, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// Search matches the flattened ingredient labels, but only within the
	// owner set.
	rows, err = repo.ListByOwners(ctx, []uuid.UUID{alice.ID, bob.ID}, fish, 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, alice.ID, rows[0].UserID)

	rows, err = repo.ListByOwners(ctx, nil, "", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRecipeDeleteCascades(t *testing.T) {
	repo := NewRecipeRepository(testDB)
	joins := NewRecipeIngredientRepository(testDB)
	ctx := context.Background()

	owner := seedUser(t)
	shared := uniqueLabel("salt")
	recipe := seedRecipe(t, owner, "Brine "+uniqueLabel("r"), []ingredientLine{{label: shared, quantity: 2, measurement: "cup"}})

	require.NoError(t, repo.Delete(ctx, recipe.ID))

	_, err := repo.GetByID(ctx, recipe.ID)
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))

	orphans, err := joins.GetByRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans, "join rows must go with the recipe")

	// The catalog entry is shared and survives.
	var count int64
	require.NoError(t, testDB.Model(&models.Ingredient{}).Where("label = ?", shared).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	err = repo.Delete(ctx, recipe.ID)
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestRecipeIngredientUpsert(t *testing.T) {
	repo := NewRecipeIngredientRepository(testDB)
	ctx := context.Background()

	owner := seedUser(t)
	recipe := seedRecipe(t, owner, "Flatbread "+uniqueLabel("r"), []ingredientLine{
		{label: uniqueLabel("flour"), quantity: 2, measurement: "cup"},
	})

	existing, err := repo.GetByRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, existing, 1)

	// In-place update keeps the same row.
	changed := existing[0]
	changed.Quantity = 3
	changed.Measurement = "cups"
	changed.Ingredient = nil
	require.NoError(t, repo.Upsert(ctx, &changed))

	after, err := repo.GetByRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, existing[0].ID, after[0].ID)
	assert.Equal(t, float64(3), after[0].Quantity)
	assert.Equal(t, "cups", after[0].Measurement)

	// Zero ID inserts a new row.
	water, err := NewIngredientRepository(testDB).FindOrCreate(ctx, uniqueLabel("water"))
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, &models.RecipeIngredient{
		RecipeID:     recipe.ID,
		IngredientID: water.ID,
		Quantity:     1,
		Measurement:  "cup",
	}))

	after, err = repo.GetByRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Len(t, after, 2)
}
