// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"github.com/NSriram5/neighborhoodrecipe-backend/internal/config"
	"github.com/NSriram5/neighborhoodrecipe-backend/internal/database"
	"github.com/NSriram5/neighborhoodrecipe-backend/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	recipesPerUser := flag.Int("recipes", 5, "Number of recipes per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	s := seed.NewSeeder(db)
	if err := s.Seed(seed.Options{
		NumUsers:       *numUsers,
		RecipesPerUser: *recipesPerUser,
		ShouldClean:    *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("All seeded accounts use the password %q", seed.DefaultPassword)
}
