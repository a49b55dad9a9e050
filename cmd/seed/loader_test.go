package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseIngredientsJSON(t *testing.T) {
	inputs, err := parseIngredientsJSON(strings.NewReader(`[
		{"name": "абрикосовое варенье", "measurement_unit": "г"},
		{"name": "соль", "measurement_unit": "по вкусу"}
	]`))
	if err != nil {
		t.Fatalf("parse json failed: %v", err)
	}
	if len(inputs) != 2 || inputs[1].Name != "соль" || inputs[1].MeasurementUnit != "по вкусу" {
		t.Fatalf("unexpected inputs: %+v", inputs)
	}
}

func TestParseIngredientsCSV(t *testing.T) {
	inputs, err := parseIngredientsCSV(strings.NewReader("мука,г\nяйца, шт\n"))
	if err != nil {
		t.Fatalf("parse csv failed: %v", err)
	}
	if len(inputs) != 2 || inputs[1].MeasurementUnit != "шт" {
		t.Fatalf("unexpected inputs: %+v", inputs)
	}

	if _, err := parseIngredientsCSV(strings.NewReader("мука\n")); err == nil {
		t.Fatalf("expected error for row without unit")
	}
}

func TestLoadIngredientsFileRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ingredients.txt")
	if err := os.WriteFile(path, []byte("salt"), 0o600); err != nil {
		t.Fatalf("write file failed: %v", err)
	}
	if _, err := loadIngredientsFile(path); err == nil {
		t.Fatalf("expected unsupported file error")
	}
}

func TestDefaultTagsAreValid(t *testing.T) {
	seen := map[string]bool{}
	for _, tag := range defaultTags {
		if seen[tag.Slug] {
			t.Fatalf("duplicate slug %s", tag.Slug)
		}
		seen[tag.Slug] = true
		if len(tag.Color) != 7 || tag.Color[0] != '#' {
			t.Fatalf("invalid color %s", tag.Color)
		}
	}
}
