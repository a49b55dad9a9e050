package shoppinglist

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/foodgram-next/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func saltSugarRows() []Row {
	return []Row{
		{Name: "Salt", MeasurementUnit: "g", Amount: 10},
		{Name: "Salt", MeasurementUnit: "g", Amount: 5},
		{Name: "Sugar", MeasurementUnit: "g", Amount: 20},
	}
}

func TestAggregateSaltSugar(t *testing.T) {
	lines := Aggregate(saltSugarRows(), KeyByName)
	require.Len(t, lines, 2)
	assert.Equal(t, Line{Name: "Salt", MeasurementUnit: "g", Amount: 15}, lines[0])
	assert.Equal(t, Line{Name: "Sugar", MeasurementUnit: "g", Amount: 20}, lines[1])

	assert.Equal(t, lines, Aggregate(saltSugarRows(), KeyByNameAndUnit))
}

func TestAggregateEmpty(t *testing.T) {
	lines := Aggregate(nil, KeyByNameAndUnit)
	require.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestAggregateKeyModes(t *testing.T) {
	rows := []Row{
		{Name: "Milk", MeasurementUnit: "ml", Amount: 200},
		{Name: "Flour", MeasurementUnit: "g", Amount: 300},
		{Name: "Milk", MeasurementUnit: "cup", Amount: 1},
	}

	byName := Aggregate(rows, KeyByName)
	require.Len(t, byName, 2)
	assert.Equal(t, Line{Name: "Milk", MeasurementUnit: "ml", Amount: 201}, byName[0])
	assert.Equal(t, "Flour", byName[1].Name)

	byPair := Aggregate(rows, KeyByNameAndUnit)
	require.Len(t, byPair, 3)
	assert.Equal(t, Line{Name: "Milk", MeasurementUnit: "ml", Amount: 200}, byPair[0])
	assert.Equal(t, Line{Name: "Milk", MeasurementUnit: "cup", Amount: 1}, byPair[2])
}

func TestAggregateDoesNotMutateInput(t *testing.T) {
	rows := saltSugarRows()
	first := Aggregate(rows, KeyByName)
	second := Aggregate(rows, KeyByName)
	assert.Equal(t, first, second)
	assert.Equal(t, saltSugarRows(), rows)
}

func TestAggregateConcurrent(t *testing.T) {
	rows := saltSugarRows()
	var wg sync.WaitGroup
	results := make([][]Line, 8)
	for i := range results {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = Aggregate(rows, KeyByName)
		}(i)
	}
	wg.Wait()
	for _, lines := range results {
		assert.Equal(t, results[0], lines)
	}
}

func TestParseKeyMode(t *testing.T) {
	mode, err := ParseKeyMode("")
	require.NoError(t, err)
	assert.Equal(t, KeyByNameAndUnit, mode)

	mode, err = ParseKeyMode(" NAME ")
	require.NoError(t, err)
	assert.Equal(t, KeyByName, mode)

	_, err = ParseKeyMode("unit")
	assert.Error(t, err)
}

func TestTextRendererOutput(t *testing.T) {
	var buf bytes.Buffer
	renderer := TextRenderer{}
	require.NoError(t, renderer.Render(&buf, "Список покупок:", Aggregate(saltSugarRows(), KeyByName)))

	expected := "Список покупок:\n1. Salt - 15, g.\n2. Sugar - 20, g.\n"
	assert.Equal(t, expected, buf.String())
	assert.Equal(t, "shopping_list.txt", renderer.Filename())
	assert.Equal(t, "text/plain; charset=utf-8", renderer.ContentType())
}

func TestTextRendererEmptyCart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TextRenderer{}.Render(&buf, "Shopping list:", nil))
	assert.Equal(t, "Shopping list:\n", buf.String())
}

func TestPDFRendererMissingFont(t *testing.T) {
	renderer := NewPDFRenderer(layoutFromConfig(config.PDFConfig{
		FontPath: filepath.Join(t.TempDir(), "missing.ttf"),
	}))
	var buf bytes.Buffer
	err := renderer.Render(&buf, "Список покупок:", Aggregate(saltSugarRows(), KeyByName))
	require.ErrorIs(t, err, ErrFontNotFound)
	assert.Zero(t, buf.Len())
	assert.Equal(t, "shopping_list.pdf", renderer.Filename())
	assert.Equal(t, "application/pdf", renderer.ContentType())
}

// pdfPageObject 匹配页面对象，排除根节点 /Type /Pages
var pdfPageObject = regexp.MustCompile(`/Type /Page[^s]`)

func writeTestFont(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Go-Regular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))
	return path
}

func TestPDFRendererPagesLongList(t *testing.T) {
	renderer := NewPDFRenderer(layoutFromConfig(config.PDFConfig{FontPath: writeTestFont(t)}))
	rows := make([]Row, 0, 60)
	for i := 1; i <= 60; i++ {
		rows = append(rows, Row{Name: fmt.Sprintf("Ингредиент %02d", i), MeasurementUnit: "г", Amount: i})
	}
	lines := Aggregate(rows, KeyByName)
	require.Len(t, lines, 60)

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, "Список покупок:", lines))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	// A4 高 297mm，默认排版首页 26 行、之后每页 27 行
	placements := placeLines(len(lines), 297, renderer.Layout())
	wantPages := placements[len(placements)-1].page + 1
	assert.Equal(t, 3, wantPages)
	assert.Len(t, pdfPageObject.FindAll(buf.Bytes(), -1), wantPages)
}

func TestPDFRendererEmptyListTitleOnly(t *testing.T) {
	renderer := NewPDFRenderer(layoutFromConfig(config.PDFConfig{FontPath: writeTestFont(t)}))
	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, "Список покупок:", nil))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Len(t, pdfPageObject.FindAll(buf.Bytes(), -1), 1)
}

func TestPDFRendererFontDirectoryRejected(t *testing.T) {
	renderer := NewPDFRenderer(layoutFromConfig(config.PDFConfig{FontPath: t.TempDir()}))
	err := renderer.Render(&bytes.Buffer{}, "title", nil)
	require.ErrorIs(t, err, ErrFontNotFound)
}

func TestPlaceLinesPaging(t *testing.T) {
	layout := Layout{TopOffset: 20, LineStep: 10, BottomMargin: 15}
	// 页高 100：可用到 y=85，首页容纳 y=30..80 共 6 行
	placements := placeLines(8, 100, layout)
	require.Len(t, placements, 8)
	assert.Equal(t, placement{page: 0, y: 30}, placements[0])
	assert.Equal(t, placement{page: 0, y: 80}, placements[5])
	assert.Equal(t, placement{page: 1, y: 20}, placements[6])
	assert.Equal(t, placement{page: 1, y: 30}, placements[7])

	assert.Empty(t, placeLines(0, 100, layout))
}

func TestNewRendererRegistry(t *testing.T) {
	renderer, err := NewRenderer(config.ShoppingListConfig{Format: "text"})
	require.NoError(t, err)
	assert.IsType(t, TextRenderer{}, renderer)

	pdfCfg := config.PDFConfig{FontPath: "/missing/font.ttf", TitleSize: 24, LineSize: 16, LineStep: 10}
	renderer, err = NewRenderer(config.ShoppingListConfig{Format: "pdf", PDF: pdfCfg})
	require.NoError(t, err, "font must not be validated at construction")
	regular, ok := renderer.(*PDFRenderer)
	require.True(t, ok)

	renderer, err = NewRenderer(config.ShoppingListConfig{Format: "pdf_compact", PDF: pdfCfg})
	require.NoError(t, err)
	compact, ok := renderer.(*PDFRenderer)
	require.True(t, ok)
	assert.Less(t, compact.Layout().LineSize, regular.Layout().LineSize)
	assert.Less(t, compact.Layout().LineStep, regular.Layout().LineStep)

	_, err = NewRenderer(config.ShoppingListConfig{Format: "docx"})
	assert.Error(t, err)
}
