// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/NSriram5/neighborhoodrecipe-backend/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded account logs in with.
const DefaultPassword = "Password123!abc"

var (
	mealCategories = []string{"breakfast", "lunch", "dinner", "dessert", "snack"}
	dietCategories = []string{"vegetarian", "vegan", "pescatarian", "omnivore", "gluten-free"}
	measurements   = []string{"cup", "tablespoon", "teaspoon", "ounce", "gram", "pound", "pinch"}

	catalogLabels = []string{
		"flour", "sugar", "butter", "salt", "pepper", "olive oil", "garlic",
		"onion", "egg", "milk", "chicken", "fish", "broccoli", "carrot",
		"rice", "pasta", "tomato", "basil", "cheddar", "lemon",
	}
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample account.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		UserName:     gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:        strings.ToLower(gofakeit.Email()),
		PasswordHash: string(hash),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCatalog ensures the shared ingredient catalog exists and returns it.
// Labels are stable so repeated seeding reuses the same rows.
func (f *Factory) CreateCatalog() ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0, len(catalogLabels))
	for _, label := range catalogLabels {
		var ingredient models.Ingredient
		err := f.db.Where("label = ?", label).
			FirstOrCreate(&ingredient, models.Ingredient{Label: label}).Error
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ingredient)
	}
	return ingredients, nil
}

// CreateRecipe persists a recipe for the user, attaching a random subset of
// the catalog ingredients with realistic quantities. The flat search columns
// are derived the same way the service layer derives them.
func (f *Factory) CreateRecipe(user *models.User, catalog []models.Ingredient, overrides ...func(*models.Recipe)) (*models.Recipe, error) {
	steps := make([]string, 0, 5)
	for i := 0; i < 2+f.rand.Intn(4); i++ {
		steps = append(steps, gofakeit.Sentence(8))
	}
	rawSteps, err := json.Marshal(steps)
	if err != nil {
		return nil, err
	}

	meal := mealCategories[f.rand.Intn(len(mealCategories))]
	diet := dietCategories[f.rand.Intn(len(dietCategories))]

	recipe := &models.Recipe{
		UserID:           user.ID,
		RecipeName:       gofakeit.Dinner(),
		MealCategory:     meal,
		DietCategory:     diet,
		FlatCategories:   meal + diet,
		ServingCount:     1 + f.rand.Intn(8),
		FarenheitTemp:    300 + f.rand.Intn(150),
		MinutePrepTime:   5 + f.rand.Intn(30),
		MinuteTimeBake:   10 + f.rand.Intn(60),
		Instructions:     steps,
		FlatInstructions: string(rawSteps),
		ToolsNeeded:      "mixing bowl whisk " + gofakeit.Word(),
	}
	recipe.MinuteTotalTime = recipe.MinutePrepTime + recipe.MinuteTimeBake

	picked := f.pickIngredients(catalog, 2+f.rand.Intn(5))
	labels := make([]string, 0, len(picked))
	for _, ingredient := range picked {
		labels = append(labels, ingredient.Label)
	}
	recipe.FlatIngredients = strings.Join(labels, " ")

	for _, override := range overrides {
		override(recipe)
	}
	if err := f.db.Create(recipe).Error; err != nil {
		return nil, err
	}

	joins := make([]models.RecipeIngredient, 0, len(picked))
	for _, ingredient := range picked {
		joins = append(joins, models.RecipeIngredient{
			RecipeID:     recipe.ID,
			IngredientID: ingredient.ID,
			Quantity:     float64(1 + f.rand.Intn(20)),
			Measurement:  measurements[f.rand.Intn(len(measurements))],
		})
	}
	if len(joins) > 0 {
		if err := f.db.Create(&joins).Error; err != nil {
			return nil, err
		}
	}

	return recipe, nil
}

// CreateConnection persists an edge between two users.
func (f *Factory) CreateConnection(requestor, target *models.User, accepted bool) (*models.Connection, error) {
	conn := &models.Connection{
		RequestorID: requestor.ID,
		TargetID:    target.ID,
		Accepted:    accepted,
	}
	if err := f.db.Create(conn).Error; err != nil {
		return nil, err
	}
	return conn, nil
}

func (f *Factory) pickIngredients(catalog []models.Ingredient, n int) []models.Ingredient {
	if n > len(catalog) {
		n = len(catalog)
	}
	indexes := f.rand.Perm(len(catalog))[:n]
	picked := make([]models.Ingredient, 0, n)
	for _, i := range indexes {
		picked = append(picked, catalog[i])
	}
	return picked
}
