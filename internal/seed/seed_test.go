package seed

import (
	"testing"

	"github.com/NSriram5/neighborhoodrecipe-backend/internal/database"
	"github.com/NSriram5/neighborhoodrecipe-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func TestSeed(t *testing.T) {
	db := setupSeedDB(t)
	seeder := NewSeeder(db)

	require.NoError(t, seeder.Seed(Options{NumUsers: 4, RecipesPerUser: 2, ShouldClean: true}))

	var users, recipes, joins, conns, catalog int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipes).Error)
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Count(&joins).Error)
	require.NoError(t, db.Model(&models.Connection{}).Count(&conns).Error)
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&catalog).Error)

	assert.EqualValues(t, 4, users)
	assert.EqualValues(t, 8, recipes)
	assert.EqualValues(t, 4, conns)
	assert.Greater(t, joins, int64(0))
	assert.EqualValues(t, len(catalogLabels), catalog)

	// Every recipe keeps its flattened columns in sync with the join rows.
	var sample models.Recipe
	require.NoError(t, db.First(&sample).Error)
	assert.NotEmpty(t, sample.FlatInstructions)
	assert.NotEmpty(t, sample.FlatIngredients)
	assert.Equal(t, sample.MealCategory+sample.DietCategory, sample.FlatCategories)

	// The ring mesh leaves both pending and accepted edges.
	var accepted int64
	require.NoError(t, db.Model(&models.Connection{}).Where("accepted = ?", true).Count(&accepted).Error)
	assert.Greater(t, accepted, int64(0))
	assert.Less(t, accepted, conns)
}

func TestSeedCleanIsIdempotent(t *testing.T) {
	db := setupSeedDB(t)
	seeder := NewSeeder(db)

	require.NoError(t, seeder.Seed(Options{NumUsers: 3, RecipesPerUser: 1, ShouldClean: true}))
	require.NoError(t, seeder.Seed(Options{NumUsers: 3, RecipesPerUser: 1, ShouldClean: true}))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 3, users, "clean reseeding must not accumulate rows")
}
