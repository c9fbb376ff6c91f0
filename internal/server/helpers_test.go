package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NSriram5/neighborhoodrecipe-backend/internal/config"
	"github.com/NSriram5/neighborhoodrecipe-backend/internal/database"
	"github.com/NSriram5/neighborhoodrecipe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testPassword satisfies the password policy and is shared by all test users.
const testPassword = "Password123!abc"

func setupTestApp(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...), "migrate sqlite")

	cfg := &config.Config{
		JWTSecret: "test_secret_test_secret_test_secret",
		Port:      "0",
		Env:       "test",
	}
	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err, "build server")

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app, db
}

func createTestUser(t *testing.T, db *gorm.DB, userName, email string, admin bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		UserName:     userName,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      admin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func bearerToken(t *testing.T, s *Server, user *models.User) string {
	t.Helper()
	token, err := s.generateToken(user.ID, user.UserName)
	require.NoError(t, err)
	return "Bearer " + token
}

// doJSON runs one request against the app and decodes the JSON response body
// into a generic map.
func doJSON(t *testing.T, app *fiber.App, method, path, auth string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err, "app.Test")
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	decoded := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "response body: %s", raw)
	}
	return resp.StatusCode, decoded
}

func TestParsePagination(t *testing.T) {
	t.Parallel()
	app := fiber.New()
	var got Pagination
	app.Get("/", func(c *fiber.Ctx) error {
		got = parsePagination(c, 21)
		return c.SendStatus(http.StatusOK)
	})

	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"Defaults", "", 21, 0},
		{"Explicit", "?limit=5&offset=10", 5, 10},
		{"Negative", "?limit=-3&offset=-1", 21, 0},
		{"Capped", "?limit=5000", 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			_ = resp.Body.Close()
			require.Equal(t, tt.wantLimit, got.Limit)
			require.Equal(t, tt.wantOffset, got.Offset)
		})
	}
}
