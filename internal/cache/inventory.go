package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	UserKeyPrefix       = "user:%s"
	RecipeKeyPrefix     = "recipe:%s"
	FullRecipeKeyPrefix = "recipe:%s:full"
)

const (
	UserTTL       = 5 * time.Minute
	RecipeTTL     = 30 * time.Minute
	FullRecipeTTL = 10 * time.Minute
)

func UserKey(userID uuid.UUID) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func RecipeKey(recipeID uuid.UUID) string {
	return fmt.Sprintf(RecipeKeyPrefix, recipeID)
}

func FullRecipeKey(recipeID uuid.UUID) string {
	return fmt.Sprintf(FullRecipeKeyPrefix, recipeID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uuid.UUID) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateRecipe drops both the base and hydrated projections; any write to
// a recipe or its ingredient set invalidates both.
func InvalidateRecipe(ctx context.Context, recipeID uuid.UUID) {
	Invalidate(ctx, RecipeKey(recipeID))
	Invalidate(ctx, FullRecipeKey(recipeID))
}
