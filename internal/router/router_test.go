package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/provider"
	"github.com/foodgram-next/internal/queue"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type routerEnv struct {
	engine    *gin.Engine
	container *provider.Container
}

func newRouterEnv(t *testing.T) *routerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.L = zap.NewNop()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))

	cfg := &config.Config{}
	cfg.Server.PublicURL = "http://localhost:8080"
	cfg.Media.Root = t.TempDir()
	cfg.Media.URLPrefix = "/media"
	cfg.UserJWT = config.JWTConfig{SecretKey: "router-user-secret", ExpireHours: 1}
	cfg.JWT = config.JWTConfig{SecretKey: "router-admin-secret", ExpireHours: 1}
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8}
	cfg.Pagination = config.PaginationConfig{DefaultLimit: 6, MaxLimit: 100}
	cfg.ShoppingList.Format = "text"
	cfg.ShoppingList.GroupBy = "name_unit"

	queueClient, err := queue.NewClient(&cfg.Queue)
	require.NoError(t, err)
	container, err := provider.NewContainerWithDB(cfg, db, queueClient)
	require.NoError(t, err)

	return &routerEnv{engine: SetupRouter(cfg, container), container: container}
}

func (e *routerEnv) do(method, path, token string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Accept-Language", "en-US")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *routerEnv) userToken(t *testing.T, username string) (uint, string) {
	t.Helper()
	user, err := e.container.UserAuthService.Register(service.RegisterInput{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "First",
		LastName:  "Last",
		Password:  "Str0ngPass!",
	})
	require.NoError(t, err)
	_, token, _, err := e.container.UserAuthService.Login(user.Email, "Str0ngPass!")
	require.NoError(t, err)
	return user.ID, token
}

func (e *routerEnv) seedRecipe(t *testing.T, authorID uint) *models.Recipe {
	t.Helper()
	tag := &models.Tag{Name: "Lunch", Slug: "lunch", Color: "#49B64E"}
	require.NoError(t, e.container.TagRepo.Create(tag))
	salt := &models.Ingredient{Name: "Salt", MeasurementUnit: "g"}
	require.NoError(t, e.container.IngredientRepo.Create(salt))
	recipe := &models.Recipe{AuthorID: authorID, Name: "Soup", Image: "recipes/soup.png", Text: "Boil", CookingTime: 10}
	require.NoError(t, e.container.RecipeRepo.Create(recipe, []uint{tag.ID}, []models.IngredientAmount{
		{IngredientID: salt.ID, Amount: 5},
	}))
	return recipe
}

func TestDownloadShoppingCartRequiresAuth(t *testing.T) {
	env := newRouterEnv(t)

	w := env.do(http.MethodGet, "/api/v1/recipes/download_shopping_cart", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"status_code":401`)
}

func TestDownloadShoppingCartAttachment(t *testing.T) {
	env := newRouterEnv(t)
	userID, token := env.userToken(t, "buyer")
	recipe := env.seedRecipe(t, userID)

	w := env.do(http.MethodPost, fmt.Sprintf("/api/v1/recipes/%d/shopping_cart", recipe.ID), token, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"name":"Soup"`)

	w = env.do(http.MethodPost, fmt.Sprintf("/api/v1/recipes/%d/shopping_cart", recipe.ID), token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/api/v1/recipes/download_shopping_cart", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "attachment; filename=shopping_list.txt", w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
	assert.Equal(t, "Shopping list:\n1. Salt - 5, g.\n", w.Body.String())
}

func TestLoginAndLogoutRevokesToken(t *testing.T) {
	env := newRouterEnv(t)
	_, _ = env.userToken(t, "chef")

	w := env.do(http.MethodPost, "/api/v1/auth/token/login", "", `{"email":"chef@example.com","password":"Str0ngPass!"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"auth_token"`)

	_, token, _, err := env.container.UserAuthService.Login("chef@example.com", "Str0ngPass!")
	require.NoError(t, err)

	w = env.do(http.MethodGet, "/api/v1/users/me", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"username":"chef"`)

	w = env.do(http.MethodPost, "/api/v1/auth/token/logout", token, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(http.MethodGet, "/api/v1/users/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRBAC(t *testing.T) {
	env := newRouterEnv(t)
	admin, _, err := env.container.AuthService.EnsureAdmin("moderator", "Adm1nPass!", false)
	require.NoError(t, err)
	require.NoError(t, env.container.AuthzService.SetAdminRoles(admin.ID, []string{"content_admin"}))
	_, token, _, err := env.container.AuthService.Login("moderator", "Adm1nPass!")
	require.NoError(t, err)

	w := env.do(http.MethodGet, "/api/v1/admin/tags", token, "")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(http.MethodPost, "/api/v1/admin/tags", token, `{"name":"Dinner","color":"#8775D2","slug":"dinner"}`)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(http.MethodPost, "/api/v1/admin/tags", token, `{"name":"Bad","color":"#8775D3","slug":"bad slug"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPut, "/api/v1/admin/users/1/status", token, `{"status":"disabled"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodGet, "/api/v1/admin/tags", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealth(t *testing.T) {
	env := newRouterEnv(t)
	w := env.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestBuildAdminPermissionCatalog(t *testing.T) {
	env := newRouterEnv(t)
	items := buildAdminPermissionCatalog(env.engine)
	require.NotEmpty(t, items)

	found := false
	for _, item := range items {
		assert.NotEqual(t, "/admin/login", item.Object)
		if item.Permission == "PUT:/admin/users/:id/status" {
			found = true
			assert.Equal(t, "users", item.Module)
		}
	}
	assert.True(t, found, "catalog should include user status permission")
}

func TestLoginAttemptsAreAudited(t *testing.T) {
	env := newRouterEnv(t)
	_, token := env.userToken(t, "chef")

	w := env.do(http.MethodPost, "/api/v1/auth/token/login", "", `{"email":"chef@example.com","password":"wrong"}`)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	w = env.do(http.MethodPost, "/api/v1/auth/token/login", "", `{"email":"chef@example.com","password":"Str0ngPass!"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(http.MethodGet, "/api/v1/users/me/login_logs", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"success"`)
	assert.NotContains(t, w.Body.String(), `"status":"failed"`)

	_, _, err := env.container.AuthService.EnsureAdmin("root", "Adm1nPass!", true)
	require.NoError(t, err)
	_, adminToken, _, err := env.container.AuthService.Login("root", "Adm1nPass!")
	require.NoError(t, err)

	w = env.do(http.MethodGet, "/api/v1/admin/user_login_logs?status=failed", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"fail_reason":"invalid_credentials"`)

	w = env.do(http.MethodGet, "/api/v1/admin/dashboard/overview?range=today", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"active_users":1`)

	w = env.do(http.MethodGet, "/api/v1/admin/dashboard/overview?range=year", adminToken, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicConfig(t *testing.T) {
	env := newRouterEnv(t)
	w := env.do(http.MethodGet, "/api/v1/config", "", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"default_locale":"ru-RU"`)
	assert.Contains(t, w.Body.String(), `"group_by":"name_unit"`)
}
