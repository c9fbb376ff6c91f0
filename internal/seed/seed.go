package seed

import (
	"fmt"
	"log"

	"github.com/NSriram5/neighborhoodrecipe-backend/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers       int
	RecipesPerUser int
	ShouldClean    bool
}

// Seeder populates the database with demo data: a neighborhood of users,
// a shared ingredient catalog, recipes built from it, and a partially
// accepted connection mesh.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded rows. Join rows go first so foreign keys stay
// satisfied on databases that enforce them.
func (s *Seeder) ClearAll() error {
	tables := []string{
		models.RecipeIngredient{}.TableName(),
		models.Connection{}.TableName(),
		models.Recipe{}.TableName(),
		models.Ingredient{}.TableName(),
		models.User{}.TableName(),
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Seed populates the database with test data
func (s *Seeder) Seed(opts Options) error {
	log.Printf("Starting database seeding with %d users, %d recipes each...",
		opts.NumUsers, opts.RecipesPerUser)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	catalog, err := s.factory.CreateCatalog()
	if err != nil {
		return fmt.Errorf("failed to create ingredient catalog: %w", err)
	}
	log.Printf("%d catalog ingredients available", len(catalog))

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("%d test users created", len(users))

	recipeCount := 0
	for _, user := range users {
		for i := 0; i < opts.RecipesPerUser; i++ {
			if _, err := s.factory.CreateRecipe(user, catalog); err != nil {
				return fmt.Errorf("failed to create recipe: %w", err)
			}
			recipeCount++
		}
	}
	log.Printf("%d recipes created", recipeCount)

	// Ring mesh: everyone invites their neighbor, every other invite is
	// accepted, so both pending and accepted states show up in the UI.
	connCount := 0
	for i := 0; i < len(users); i++ {
		next := (i + 1) % len(users)
		if next == i {
			continue
		}
		if _, err := s.factory.CreateConnection(users[i], users[next], i%2 == 0); err != nil {
			return fmt.Errorf("failed to create connection: %w", err)
		}
		connCount++
	}
	log.Printf("%d connections created", connCount)

	log.Println("Seeding complete")
	return nil
}
