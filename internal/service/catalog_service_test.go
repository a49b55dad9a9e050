package service

import (
	"context"
	"errors"
	"testing"

	"github.com/foodgram-next/internal/repository"
)

func TestTagServiceValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTagService(env.tags)
	ctx := context.Background()

	tag, err := svc.Create(ctx, TagInput{Name: "Breakfast", Color: "#e26c2d", Slug: "breakfast"})
	if err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	if tag.Color != "#E26C2D" {
		t.Fatalf("color should be upper-cased: %s", tag.Color)
	}

	invalid := []TagInput{
		{Name: "", Color: "#000000", Slug: "empty"},
		{Name: "Bad color", Color: "red", Slug: "bad-color"},
		{Name: "Bad slug", Color: "#000001", Slug: "bad slug"},
	}
	for _, input := range invalid {
		if _, err := svc.Create(ctx, input); !errors.Is(err, ErrTagInvalid) {
			t.Fatalf("expected invalid tag for %+v, got %v", input, err)
		}
	}
	if _, err := svc.Create(ctx, TagInput{Name: "Other", Color: "#000002", Slug: "breakfast"}); !errors.Is(err, ErrTagExists) {
		t.Fatalf("expected duplicate slug, got %v", err)
	}

	tags, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list tags failed: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("unexpected tag count: got=%d expected=1", len(tags))
	}
	if err := svc.Delete(ctx, tag.ID); err != nil {
		t.Fatalf("delete tag failed: %v", err)
	}
	if _, err := svc.Get(tag.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestIngredientServiceSearchAndDelete(t *testing.T) {
	env := newTestEnv(t)
	svc := NewIngredientService(env.ingredients)

	for _, input := range []IngredientInput{
		{Name: "Sugar", MeasurementUnit: "g"},
		{Name: "salt", MeasurementUnit: "g"},
		{Name: "Salmon", MeasurementUnit: "kg"},
	} {
		if _, err := svc.Create(input); err != nil {
			t.Fatalf("create ingredient failed: %v", err)
		}
	}
	if _, err := svc.Create(IngredientInput{Name: "Sugar", MeasurementUnit: "g"}); !errors.Is(err, ErrIngredientExists) {
		t.Fatalf("expected duplicate ingredient, got %v", err)
	}

	found, err := svc.Search("Sa")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("prefix search should be case-insensitive: got=%d expected=2", len(found))
	}

	created, err := svc.Import([]IngredientInput{
		{Name: "Sugar", MeasurementUnit: "g"},
		{Name: "Pepper", MeasurementUnit: "g"},
	})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if created != 1 {
		t.Fatalf("import should skip existing rows: got=%d expected=1", created)
	}

	user := env.createUser(t, "cook")
	pepper, err := env.ingredients.GetByNameAndUnit("Pepper", "g")
	if err != nil || pepper == nil {
		t.Fatalf("pepper lookup failed: %v", err)
	}
	seedRecipe(t, env, user.ID, "spicy", map[uint]int{pepper.ID: 2}, []uint{pepper.ID})
	if err := svc.Delete(pepper.ID); !errors.Is(err, ErrIngredientInUse) {
		t.Fatalf("expected ingredient in use, got %v", err)
	}

	all, total, err := svc.List(repository.IngredientListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 4 || len(all) != 4 {
		t.Fatalf("unexpected total: got=%d expected=4", total)
	}
}
