package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueLabel(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, gofakeit.UUID()[:8])
}

func TestIngredientFindOrCreate(t *testing.T) {
	repo := NewIngredientRepository(testDB)
	ctx := context.Background()

	label := uniqueLabel("saffron")

	first, err := repo.FindOrCreate(ctx, label)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, label, first.Label)

	second, err := repo.FindOrCreate(ctx, label)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same label must resolve to the same catalog row")
}

func TestIngredientFindOrCreateTrims(t *testing.T) {
	repo := NewIngredientRepository(testDB)
	ctx := context.Background()

	label := uniqueLabel("thyme")

	first, err := repo.FindOrCreate(ctx, "  "+label+"  ")
	require.NoError(t, err)
	assert.Equal(t, label, first.Label)

	second, err := repo.FindOrCreate(ctx, label)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestIngredientFindOrCreateEmptyLabel(t *testing.T) {
	repo := NewIngredientRepository(testDB)
	_, err := repo.FindOrCreate(context.Background(), "   ")
	assert.Error(t, err)
}

func TestIngredientFindOrCreateConcurrent(t *testing.T) {
	repo := NewIngredientRepository(testDB)
	ctx := context.Background()

	label := uniqueLabel("cumin")
	const workers = 8

	ids := make(chan string, workers)
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			ingredient, err := repo.FindOrCreate(ctx, label)
			if err != nil {
				errs <- err
				return
			}
			ids <- ingredient.ID.String()
		}()
	}

	seen := map[string]bool{}
	for i := 0; i < workers; i++ {
		select {
		case err := <-errs:
			t.Fatalf("concurrent FindOrCreate: %v", err)
		case id := <-ids:
			seen[id] = true
		}
	}
	assert.Len(t, seen, 1, "racing creators must converge on one row")
}
