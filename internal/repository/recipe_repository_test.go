package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/foodgram-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openRecipeTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        name + "@example.com",
		Username:     name,
		FirstName:    name,
		LastName:     name,
		PasswordHash: "hash",
		Status:       "active",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func createTestIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(ingredient).Error; err != nil {
		t.Fatalf("create ingredient failed: %v", err)
	}
	return ingredient
}

func createTestTag(t *testing.T, db *gorm.DB, name, color, slug string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, Color: color, Slug: slug}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	return tag
}

func createTestRecipe(t *testing.T, repo *GormRecipeRepository, authorID uint, name string, tagIDs []uint, amounts ...models.IngredientAmount) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        name,
		Image:       "recipes/test.png",
		Text:        "text",
		CookingTime: 10,
	}
	if err := repo.Create(recipe, tagIDs, amounts); err != nil {
		t.Fatalf("create recipe failed: %v", err)
	}
	return recipe
}

func TestRecipeRepositoryCreateAndGet(t *testing.T) {
	db := openRecipeTestDB(t)
	repo := NewRecipeRepository(db)
	author := createTestUser(t, db, "author")
	salt := createTestIngredient(t, db, "Salt", "g")
	sugar := createTestIngredient(t, db, "Sugar", "g")
	breakfast := createTestTag(t, db, "Завтрак", "#E26C2D", "breakfast")

	recipe := createTestRecipe(t, repo, author.ID, "Omelette", []uint{breakfast.ID},
		models.IngredientAmount{IngredientID: salt.ID, Amount: 5},
		models.IngredientAmount{IngredientID: sugar.ID, Amount: 10},
	)
	if recipe.PubDate.IsZero() {
		t.Fatalf("pub date should be set on create")
	}

	got, err := repo.GetByID(recipe.ID)
	if err != nil {
		t.Fatalf("get recipe failed: %v", err)
	}
	if got == nil {
		t.Fatalf("recipe should exist")
	}
	if got.Author.Username != "author" {
		t.Fatalf("unexpected author: got=%s expected=author", got.Author.Username)
	}
	if len(got.Tags) != 1 || got.Tags[0].Slug != "breakfast" {
		t.Fatalf("unexpected tags: %+v", got.Tags)
	}
	if len(got.Ingredients) != 2 {
		t.Fatalf("unexpected ingredient count: got=%d expected=2", len(got.Ingredients))
	}
	if got.Ingredients[0].Ingredient.Name != "Salt" || got.Ingredients[0].Amount != 5 {
		t.Fatalf("unexpected first ingredient: %+v", got.Ingredients[0])
	}

	missing, err := repo.GetByID(recipe.ID + 100)
	if err != nil {
		t.Fatalf("get missing recipe failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing recipe should be nil")
	}
}

func TestRecipeRepositoryDuplicateIngredientRejected(t *testing.T) {
	db := openRecipeTestDB(t)
	repo := NewRecipeRepository(db)
	author := createTestUser(t, db, "author")
	salt := createTestIngredient(t, db, "Salt", "g")

	err := repo.Create(&models.Recipe{AuthorID: author.ID, Name: "Dup", Image: "x", Text: "x", CookingTime: 1}, nil, []models.IngredientAmount{
		{IngredientID: salt.ID, Amount: 1},
		{IngredientID: salt.ID, Amount: 2},
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got=%v", err)
	}
	var count int64
	db.Model(&models.Recipe{}).Count(&count)
	if count != 0 {
		t.Fatalf("transaction should roll back recipe, got count=%d", count)
	}
}

func TestRecipeRepositoryUpdateReplacesRelations(t *testing.T) {
	db := openRecipeTestDB(t)
	repo := NewRecipeRepository(db)
	author := createTestUser(t, db, "author")
	salt := createTestIngredient(t, db, "Salt", "g")
	sugar := createTestIngredient(t, db, "Sugar", "g")
	breakfast := createTestTag(t, db, "Завтрак", "#E26C2D", "breakfast")
	dinner := createTestTag(t, db, "Ужин", "#8775D2", "dinner")

	recipe := createTestRecipe(t, repo, author.ID, "Porridge", []uint{breakfast.ID},
		models.IngredientAmount{IngredientID: salt.ID, Amount: 5},
	)
	recipe.Name = "Sweet porridge"
	recipe.CookingTime = 25
	if err := repo.Update(recipe, []uint{dinner.ID}, []models.IngredientAmount{{IngredientID: sugar.ID, Amount: 30}}); err != nil {
		t.Fatalf("update recipe failed: %v", err)
	}

	got, err := repo.GetByID(recipe.ID)
	if err != nil || got == nil {
		t.Fatalf("get recipe failed: %v", err)
	}
	if got.Name != "Sweet porridge" || got.CookingTime != 25 {
		t.Fatalf("unexpected fields: name=%s cooking_time=%d", got.Name, got.CookingTime)
	}
	if len(got.Tags) != 1 || got.Tags[0].Slug != "dinner" {
		t.Fatalf("tags should be replaced: %+v", got.Tags)
	}
	if len(got.Ingredients) != 1 || got.Ingredients[0].Ingredient.Name != "Sugar" || got.Ingredients[0].Amount != 30 {
		t.Fatalf("ingredients should be replaced: %+v", got.Ingredients)
	}
}

func TestRecipeRepositoryListFilters(t *testing.T) {
	db := openRecipeTestDB(t)
	repo := NewRecipeRepository(db)
	favorites := NewFavoriteRepository(db)
	carts := NewShoppingCartRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	breakfast := createTestTag(t, db, "Завтрак", "#E26C2D", "breakfast")
	lunch := createTestTag(t, db, "Обед", "#49B64E", "lunch")
	salt := createTestIngredient(t, db, "Salt", "g")

	first := createTestRecipe(t, repo, alice.ID, "Pancakes", []uint{breakfast.ID}, models.IngredientAmount{IngredientID: salt.ID, Amount: 1})
	second := createTestRecipe(t, repo, alice.ID, "Soup", []uint{lunch.ID}, models.IngredientAmount{IngredientID: salt.ID, Amount: 2})
	third := createTestRecipe(t, repo, bob.ID, "Brunch", []uint{breakfast.ID, lunch.ID}, models.IngredientAmount{IngredientID: salt.ID, Amount: 3})

	if err := favorites.Create(&models.Favorite{UserID: bob.ID, RecipeID: first.ID}); err != nil {
		t.Fatalf("create favorite failed: %v", err)
	}
	if err := carts.Create(&models.ShoppingCart{UserID: bob.ID, RecipeID: second.ID}); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}

	recipes, total, err := repo.List(RecipeListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(recipes) != 3 {
		t.Fatalf("unexpected total: got=%d expected=3", total)
	}

	_, total, _ = repo.List(RecipeListFilter{AuthorID: alice.ID})
	if total != 2 {
		t.Fatalf("unexpected author total: got=%d expected=2", total)
	}

	recipes, total, _ = repo.List(RecipeListFilter{TagSlugs: []string{"breakfast", " "}})
	if total != 2 {
		t.Fatalf("unexpected tag total: got=%d expected=2", total)
	}
	for _, recipe := range recipes {
		if recipe.ID == second.ID {
			t.Fatalf("lunch-only recipe should not match breakfast")
		}
	}

	_, total, _ = repo.List(RecipeListFilter{TagSlugs: []string{"breakfast", "lunch"}})
	if total != 3 {
		t.Fatalf("tag filter should match any slug: got=%d expected=3", total)
	}

	recipes, _, _ = repo.List(RecipeListFilter{FavoritedBy: bob.ID})
	if len(recipes) != 1 || recipes[0].ID != first.ID {
		t.Fatalf("unexpected favorited recipes: %+v", recipes)
	}

	recipes, _, _ = repo.List(RecipeListFilter{InCartOf: bob.ID})
	if len(recipes) != 1 || recipes[0].ID != second.ID {
		t.Fatalf("unexpected cart recipes: %+v", recipes)
	}

	recipes, _, _ = repo.List(RecipeListFilter{Name: "brun"})
	if len(recipes) != 1 || recipes[0].ID != third.ID {
		t.Fatalf("unexpected name search result: %+v", recipes)
	}

	counts, err := repo.CountByAuthors([]uint{alice.ID, bob.ID})
	if err != nil {
		t.Fatalf("count by authors failed: %v", err)
	}
	if counts[alice.ID] != 2 || counts[bob.ID] != 1 {
		t.Fatalf("unexpected author counts: %+v", counts)
	}

	favCounts, err := repo.CountFavorites([]uint{first.ID, second.ID})
	if err != nil {
		t.Fatalf("count favorites failed: %v", err)
	}
	if favCounts[first.ID] != 1 || favCounts[second.ID] != 0 {
		t.Fatalf("unexpected favorite counts: %+v", favCounts)
	}
}

func TestRecipeRepositoryDeleteCleansRelations(t *testing.T) {
	db := openRecipeTestDB(t)
	repo := NewRecipeRepository(db)
	author := createTestUser(t, db, "author")
	salt := createTestIngredient(t, db, "Salt", "g")
	tag := createTestTag(t, db, "Завтрак", "#E26C2D", "breakfast")
	recipe := createTestRecipe(t, repo, author.ID, "Toast", []uint{tag.ID}, models.IngredientAmount{IngredientID: salt.ID, Amount: 1})

	if err := NewFavoriteRepository(db).Create(&models.Favorite{UserID: author.ID, RecipeID: recipe.ID}); err != nil {
		t.Fatalf("create favorite failed: %v", err)
	}
	carts := NewShoppingCartRepository(db)
	if err := carts.Create(&models.ShoppingCart{UserID: author.ID, RecipeID: recipe.ID}); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if err := repo.Delete(recipe.ID); err != nil {
		t.Fatalf("delete recipe failed: %v", err)
	}

	exists, err := repo.Exists(recipe.ID)
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Fatalf("recipe should be deleted")
	}
	for table, model := range map[string]interface{}{
		"favorites":          &models.Favorite{},
		"shopping_carts":     &models.ShoppingCart{},
		"ingredient_amounts": &models.IngredientAmount{},
	} {
		var count int64
		db.Model(model).Count(&count)
		if count != 0 {
			t.Fatalf("%s should be empty, got=%d", table, count)
		}
	}
	var tagLinks int64
	db.Table("recipe_tags").Count(&tagLinks)
	if tagLinks != 0 {
		t.Fatalf("recipe_tags should be empty, got=%d", tagLinks)
	}
	rows, err := carts.ListShoppingRows(author.ID)
	if err != nil || len(rows) != 0 {
		t.Fatalf("deleted recipe should leave no shopping rows: rows=%+v err=%v", rows, err)
	}
}

func TestShoppingCartListShoppingRowsOrder(t *testing.T) {
	db := openRecipeTestDB(t)
	recipes := NewRecipeRepository(db)
	carts := NewShoppingCartRepository(db)
	user := createTestUser(t, db, "buyer")
	salt := createTestIngredient(t, db, "Salt", "g")
	sugar := createTestIngredient(t, db, "Sugar", "g")
	milk := createTestIngredient(t, db, "Milk", "ml")

	first := createTestRecipe(t, recipes, user.ID, "A", nil,
		models.IngredientAmount{IngredientID: salt.ID, Amount: 5},
		models.IngredientAmount{IngredientID: sugar.ID, Amount: 10},
	)
	second := createTestRecipe(t, recipes, user.ID, "B", nil,
		models.IngredientAmount{IngredientID: milk.ID, Amount: 200},
		models.IngredientAmount{IngredientID: salt.ID, Amount: 3},
	)
	createTestRecipe(t, recipes, user.ID, "C", nil, models.IngredientAmount{IngredientID: milk.ID, Amount: 1})

	// 先加入第二个菜谱，输出顺序跟随购物车写入顺序
	for _, recipeID := range []uint{second.ID, first.ID} {
		if err := carts.Create(&models.ShoppingCart{UserID: user.ID, RecipeID: recipeID}); err != nil {
			t.Fatalf("add to cart failed: %v", err)
		}
	}
	if err := carts.Create(&models.ShoppingCart{UserID: user.ID, RecipeID: first.ID}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected duplicate cart error, got=%v", err)
	}

	rows, err := carts.ListShoppingRows(user.ID)
	if err != nil {
		t.Fatalf("list shopping rows failed: %v", err)
	}
	expected := []ShoppingRow{
		{Name: "Milk", MeasurementUnit: "ml", Amount: 200},
		{Name: "Salt", MeasurementUnit: "g", Amount: 3},
		{Name: "Salt", MeasurementUnit: "g", Amount: 5},
		{Name: "Sugar", MeasurementUnit: "g", Amount: 10},
	}
	if len(rows) != len(expected) {
		t.Fatalf("unexpected row count: got=%d expected=%d", len(rows), len(expected))
	}
	for i := range expected {
		if rows[i] != expected[i] {
			t.Fatalf("unexpected row %d: got=%+v expected=%+v", i, rows[i], expected[i])
		}
	}

	empty, err := carts.ListShoppingRows(user.ID + 100)
	if err != nil {
		t.Fatalf("list empty rows failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no rows for empty cart, got=%d", len(empty))
	}

	affected, err := carts.Delete(user.ID, second.ID)
	if err != nil || affected != 1 {
		t.Fatalf("delete cart item failed: affected=%d err=%v", affected, err)
	}
	affected, _ = carts.Delete(user.ID, second.ID)
	if affected != 0 {
		t.Fatalf("second delete should affect nothing, got=%d", affected)
	}
}

func TestFollowRepositoryLifecycle(t *testing.T) {
	db := openRecipeTestDB(t)
	repo := NewFollowRepository(db)
	reader := createTestUser(t, db, "reader")
	authors := []*models.User{
		createTestUser(t, db, "chef1"),
		createTestUser(t, db, "chef2"),
		createTestUser(t, db, "chef3"),
	}
	for _, author := range authors {
		if err := repo.Create(&models.Follow{UserID: reader.ID, AuthorID: author.ID}); err != nil {
			t.Fatalf("follow failed: %v", err)
		}
	}
	if err := repo.Create(&models.Follow{UserID: reader.ID, AuthorID: authors[0].ID}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected duplicate follow error, got=%v", err)
	}

	ids, total, err := repo.ListAuthorIDs(reader.ID, 2, 2)
	if err != nil {
		t.Fatalf("list author ids failed: %v", err)
	}
	if total != 3 || len(ids) != 1 || ids[0] != authors[2].ID {
		t.Fatalf("unexpected page: total=%d ids=%v", total, ids)
	}

	followed, err := repo.FollowedAmong(reader.ID, []uint{authors[0].ID, reader.ID})
	if err != nil {
		t.Fatalf("followed among failed: %v", err)
	}
	if !followed[authors[0].ID] || followed[reader.ID] {
		t.Fatalf("unexpected followed set: %+v", followed)
	}

	batch, err := repo.ListFollowersAfter(authors[1].ID, 0, 10)
	if err != nil {
		t.Fatalf("list followers failed: %v", err)
	}
	if len(batch) != 1 || batch[0].UserID != reader.ID {
		t.Fatalf("unexpected followers: %+v", batch)
	}

	affected, err := repo.Delete(reader.ID, authors[1].ID)
	if err != nil || affected != 1 {
		t.Fatalf("unfollow failed: affected=%d err=%v", affected, err)
	}
	count, _ := repo.CountFollowers(authors[1].ID)
	if count != 0 {
		t.Fatalf("follower count should be 0, got=%d", count)
	}
}
