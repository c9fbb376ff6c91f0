package repository

import (
	"log"
	"os"
	"testing"

	"github.com/NSriram5/neighborhoodrecipe-backend/internal/config"
	"github.com/NSriram5/neighborhoodrecipe-backend/internal/database"

	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	// Set environment to test
	os.Setenv("APP_ENV", "test")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Repository tests skipped: failed to load test config: %v", err)
		os.Exit(0)
	}

	testDB, err = database.Connect(cfg)
	if err != nil {
		log.Printf("Repository tests skipped: test database unavailable: %v", err)
		os.Exit(0)
	}

	if err := database.Migrate(testDB); err != nil {
		log.Printf("Repository tests skipped: migration failed: %v", err)
		os.Exit(0)
	}

	code := m.Run()

	truncateTables(testDB)

	os.Exit(code)
}

func truncateTables(db *gorm.DB) {
	db.Exec("TRUNCATE TABLE recipe_ingredients, user_user_joins, recipes, ingredients, users CASCADE")
}
