//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/foodgram-next/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := models.AllModels()
	_ = db.Migrator().DropTable(cleanupModels...)
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresIngredientPrefixSearch(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewIngredientRepository(db)

	for _, name := range []string{"Salt", "salmon", "Sugar", "sa_lt"} {
		if err := repo.Create(&models.Ingredient{Name: name, MeasurementUnit: "g"}); err != nil {
			t.Fatalf("create ingredient failed: %v", err)
		}
	}

	found, total, err := repo.List(IngredientListFilter{NamePrefix: "SA"})
	if err != nil {
		t.Fatalf("prefix search failed: %v", err)
	}
	if total != 3 || len(found) != 3 {
		t.Fatalf("ILIKE prefix should be case-insensitive: total=%d rows=%+v", total, found)
	}

	escaped, _, err := repo.List(IngredientListFilter{NamePrefix: "sa_"})
	if err != nil {
		t.Fatalf("escaped search failed: %v", err)
	}
	if len(escaped) != 1 || escaped[0].Name != "sa_lt" {
		t.Fatalf("underscore must be matched literally: %+v", escaped)
	}
}

func TestPostgresShoppingRowsAndDashboard(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	recipes := NewRecipeRepository(db)
	carts := NewShoppingCartRepository(db)
	dashboard := NewDashboardRepository(db)
	now := time.Now()

	user := createTestUser(t, db, "buyer")
	salt := createTestIngredient(t, db, "Salt", "g")
	milk := createTestIngredient(t, db, "Milk", "ml")
	tag := createTestTag(t, db, "Breakfast", "#E26C2D", "breakfast")

	first := createTestRecipe(t, recipes, user.ID, "porridge", []uint{tag.ID},
		models.IngredientAmount{IngredientID: milk.ID, Amount: 200},
		models.IngredientAmount{IngredientID: salt.ID, Amount: 2},
	)
	second := createTestRecipe(t, recipes, user.ID, "omelette", []uint{tag.ID},
		models.IngredientAmount{IngredientID: salt.ID, Amount: 1},
	)
	for _, recipeID := range []uint{first.ID, second.ID} {
		if err := carts.Create(&models.ShoppingCart{UserID: user.ID, RecipeID: recipeID}); err != nil {
			t.Fatalf("add to cart failed: %v", err)
		}
	}

	rows, err := carts.ListShoppingRows(user.ID)
	if err != nil {
		t.Fatalf("list shopping rows failed: %v", err)
	}
	if len(rows) != 3 || rows[0].Name != "Milk" || rows[2].Amount != 1 {
		t.Fatalf("unexpected shopping rows: %+v", rows)
	}

	points, err := dashboard.GetDailyCounts(now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("daily counts failed: %v", err)
	}
	var recipesToday int64
	for _, point := range points {
		recipesToday += point.Recipes
	}
	if recipesToday != 2 {
		t.Fatalf("unexpected recipe trend: %+v", points)
	}
}
