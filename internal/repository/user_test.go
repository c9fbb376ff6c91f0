package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/NSriram5/neighborhoodrecipe-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateLowercasesEmail(t *testing.T) {
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	suffix := uniqueLabel("u")
	user := &models.User{
		Email:        "Baker-" + suffix + "@Example.COM",
		UserName:     "baker_" + suffix,
		PasswordHash: "irrelevant",
	}
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByEmail(ctx, "baker-"+suffix+"@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, strings.ToLower(user.Email), got.Email)
}

func TestUserCreateDuplicate(t *testing.T) {
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	first := seedUser(t)
	err := repo.Create(ctx, &models.User{
		Email:        first.Email,
		UserName:     "other_" + uniqueLabel("u"),
		PasswordHash: "irrelevant",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestUserGetByEmailMissing(t *testing.T) {
	repo := NewUserRepository(testDB)
	got, err := repo.GetByEmail(context.Background(), uniqueLabel("ghost")+"@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserGetByIDMissing(t *testing.T) {
	repo := NewUserRepository(testDB)
	_, err := repo.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestUserUpdate(t *testing.T) {
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	user := seedUser(t)
	user.PrivacySetting = true
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.PrivacySetting)
}
