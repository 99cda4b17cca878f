package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"placeholder/internal/handlers"
	"placeholder/internal/middleware"
	"placeholder/internal/models"
	"placeholder/internal/repositories"
	"placeholder/internal/seeder"
	"placeholder/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret"

// newTestApp wires the full HTTP surface over in-memory repositories,
// pre-seeded with the fallback dataset.
func newTestApp(t *testing.T) (*fiber.App, *repositories.MockUserRepository) {
	t.Helper()

	userRepo := repositories.NewMockUserRepository()
	require.NoError(t, userRepo.CreateBatch(seeder.FallbackUsers()))

	accountRepo := repositories.NewMockAccountRepository()
	authService := services.NewAuthService(accountRepo, testSecret, time.Hour)
	userService := services.NewUserService(userRepo, nil)

	app := fiber.New()
	handlers.NewAuthHandler(authService).RegisterRoutes(app)
	handlers.NewUserHandler(userService).RegisterRoutes(app, middleware.AuthRequired(authService))

	return app, userRepo
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func registerAndLogin(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/auth/register", "", fiber.Map{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tokenResp handlers.TokenResponse
	decodeBody(t, resp, &tokenResp)
	require.NotEmpty(t, tokenResp.AccessToken)
	require.Equal(t, "bearer", tokenResp.TokenType)
	return tokenResp.AccessToken
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app, _ := newTestApp(t)

	registerAndLogin(t, app)

	resp := doJSON(t, app, http.MethodPost, "/auth/register", "", fiber.Map{
		"name":     "Other User",
		"email":    "test@example.com",
		"password": "password456",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	app, _ := newTestApp(t)
	registerAndLogin(t, app)

	// Wrong password
	resp := doJSON(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "test@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Unknown email
	resp = doJSON(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Correct pair
	resp = doJSON(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "test@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var tokenResp handlers.TokenResponse
	decodeBody(t, resp, &tokenResp)
	assert.NotEmpty(t, tokenResp.AccessToken)
}

func TestProtectedRoutes_RequireValidToken(t *testing.T) {
	app, _ := newTestApp(t)

	// No token
	resp := doJSON(t, app, http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Malformed token
	resp = doJSON(t, app, http.MethodGet, "/users/1", "not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Expired token, even for an existing record
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "test@example.com",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	expiredString, _ := expired.SignedString([]byte(testSecret))
	resp = doJSON(t, app, http.MethodGet, "/users/1", expiredString, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Every mutating verb is gated too
	resp = doJSON(t, app, http.MethodDelete, "/users/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPatch, "/users/1", "", fiber.Map{"phone": "1"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUserCRUD(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerAndLogin(t, app)

	// List is paginated and seeded with 3 users
	resp := doJSON(t, app, http.MethodGet, "/users", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []models.User
	decodeBody(t, resp, &users)
	require.Len(t, users, 3)
	assert.Equal(t, 1, users[0].ID)

	resp = doJSON(t, app, http.MethodGet, "/users?skip=1&limit=1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &users)
	require.Len(t, users, 1)
	assert.Equal(t, 2, users[0].ID)

	// Get
	resp = doJSON(t, app, http.MethodGet, "/users/1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user models.User
	decodeBody(t, resp, &user)
	assert.Equal(t, "Leanne Graham", user.Name)
	assert.Equal(t, "-37.3159", user.Address.Geo.Lat)

	resp = doJSON(t, app, http.MethodGet, "/users/999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Create
	newUser := models.User{
		ID:       10,
		Name:     "New User",
		Username: "newuser",
		Email:    "new@example.com",
		Phone:    "123-456-7890",
	}
	resp = doJSON(t, app, http.MethodPost, "/users", token, newUser)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeBody(t, resp, &user)
	assert.Equal(t, 10, user.ID)

	// Duplicate id conflicts and leaves the original unmodified
	dup := newUser
	dup.Name = "Impostor"
	resp = doJSON(t, app, http.MethodPost, "/users", token, dup)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/users/10", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &user)
	assert.Equal(t, "New User", user.Name)

	// Patch changes only the supplied field
	resp = doJSON(t, app, http.MethodPatch, "/users/10", token, fiber.Map{"phone": "987-654-3210"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &user)
	assert.Equal(t, "987-654-3210", user.Phone)
	assert.Equal(t, "New User", user.Name)
	assert.Equal(t, "newuser", user.Username)

	// Put behaves the same way for unspecified fields
	resp = doJSON(t, app, http.MethodPut, "/users/10", token, fiber.Map{"name": "Renamed User"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &user)
	assert.Equal(t, "Renamed User", user.Name)
	assert.Equal(t, "987-654-3210", user.Phone)

	resp = doJSON(t, app, http.MethodPut, "/users/999", token, fiber.Map{"name": "X"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Delete carries no body and makes the record unreachable
	resp = doJSON(t, app, http.MethodDelete, "/users/10", token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Empty(t, body)

	resp = doJSON(t, app, http.MethodGet, "/users/10", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/users/10", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCompatibilitySubResources(t *testing.T) {
	app, _ := newTestApp(t)

	for _, kind := range []string{"posts", "todos", "albums"} {
		// Existing user: empty list, no auth header required
		resp := doJSON(t, app, http.MethodGet, "/users/1/"+kind, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, kind)

		var items []interface{}
		decodeBody(t, resp, &items)
		assert.Empty(t, items, kind)

		// Missing user: 404
		resp = doJSON(t, app, http.MethodGet, "/users/999/"+kind, "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, kind)
	}
}

func TestCreateUser_ValidationFailure(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerAndLogin(t, app)

	// Missing required fields
	resp := doJSON(t, app, http.MethodPost, "/users", token, fiber.Map{"id": 11})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Non-integer path id
	resp = doJSON(t, app, http.MethodGet, "/users/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
