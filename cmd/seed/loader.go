package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/foodgram-next/internal/service"

	"github.com/goccy/go-json"
)

type ingredientRecord struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func loadIngredientsFile(path string) ([]service.IngredientInput, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ingredients file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return parseIngredientsJSON(file)
	case ".csv":
		return parseIngredientsCSV(file)
	default:
		return nil, fmt.Errorf("unsupported ingredients file: %s", path)
	}
}

func parseIngredientsJSON(r io.Reader) ([]service.IngredientInput, error) {
	var records []ingredientRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode ingredients json: %w", err)
	}
	inputs := make([]service.IngredientInput, 0, len(records))
	for _, record := range records {
		inputs = append(inputs, service.IngredientInput{
			Name:            record.Name,
			MeasurementUnit: record.MeasurementUnit,
		})
	}
	return inputs, nil
}

// parseIngredientsCSV 每行 name,measurement_unit，无表头
func parseIngredientsCSV(r io.Reader) ([]service.IngredientInput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	var inputs []service.IngredientInput
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read ingredients csv: %w", err)
		}
		inputs = append(inputs, service.IngredientInput{Name: row[0], MeasurementUnit: row[1]})
	}
	return inputs, nil
}
