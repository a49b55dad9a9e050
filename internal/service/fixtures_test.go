package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	db          *gorm.DB
	cfg         *config.Config
	users       *repository.GormUserRepository
	follows     *repository.GormFollowRepository
	tags        *repository.GormTagRepository
	ingredients *repository.GormIngredientRepository
	recipes     *repository.GormRecipeRepository
	favorites   *repository.GormFavoriteRepository
	carts       *repository.GormShoppingCartRepository
	upload      *UploadService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.Server.PublicURL = "http://localhost:8080"
	cfg.Media.Root = t.TempDir()
	cfg.Media.URLPrefix = "/media"
	cfg.Upload.MaxSize = 1 << 20
	cfg.Upload.AllowedTypes = []string{"image/png", "image/jpeg"}
	cfg.Upload.MaxWidth = 1024
	cfg.Upload.MaxHeight = 1024
	cfg.UserJWT = config.JWTConfig{SecretKey: "test-user-secret", ExpireHours: 1}
	cfg.JWT = config.JWTConfig{SecretKey: "test-admin-secret", ExpireHours: 1}
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8}

	return &testEnv{
		db:          db,
		cfg:         cfg,
		users:       repository.NewUserRepository(db),
		follows:     repository.NewFollowRepository(db),
		tags:        repository.NewTagRepository(db),
		ingredients: repository.NewIngredientRepository(db),
		recipes:     repository.NewRecipeRepository(db),
		favorites:   repository.NewFavoriteRepository(db),
		carts:       repository.NewShoppingCartRepository(db),
		upload:      NewUploadService(cfg),
	}
}

func (e *testEnv) recipeService() *RecipeService {
	return NewRecipeService(e.recipes, e.tags, e.ingredients, e.follows, e.favorites, e.carts, e.upload, nil)
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "First",
		LastName:     "Last",
		PasswordHash: string(hash),
		Status:       "active",
	}
	if err := e.users.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func (e *testEnv) createTag(t *testing.T, slug string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: slug, Slug: slug, Color: fmt.Sprintf("#%06X", crc32.ChecksumIEEE([]byte(slug))&0xFFFFFF)}
	if err := e.tags.Create(tag); err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	return tag
}

func (e *testEnv) createIngredient(t *testing.T, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	if err := e.ingredients.Create(ingredient); err != nil {
		t.Fatalf("create ingredient failed: %v", err)
	}
	return ingredient
}

func testPNGDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png failed: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
