package shoppinglist

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/foodgram-next/internal/config"

	"github.com/go-pdf/fpdf"
)

// ErrFontNotFound 字体文件不存在或不可读
var ErrFontNotFound = errors.New("shopping list font not found")

const (
	pdfPageSize    = "A4"
	pdfUnit        = "mm"
	pdfFontStyle   = ""
	defaultFamily  = "DejaVu"
	compactScale   = 0.75
	compactStepPct = 0.7
)

// Layout PDF 排版参数，长度单位为 mm，字号单位为 pt
type Layout struct {
	FontPath     string
	FontFamily   string
	TitleSize    float64
	LineSize     float64
	TopOffset    float64
	LineStep     float64
	LeftMargin   float64
	BottomMargin float64
}

func layoutFromConfig(cfg config.PDFConfig) Layout {
	layout := Layout{
		FontPath:     strings.TrimSpace(cfg.FontPath),
		FontFamily:   strings.TrimSpace(cfg.FontFamily),
		TitleSize:    cfg.TitleSize,
		LineSize:     cfg.LineSize,
		TopOffset:    cfg.TopOffset,
		LineStep:     cfg.LineStep,
		LeftMargin:   cfg.LeftMargin,
		BottomMargin: cfg.BottomMargin,
	}
	if layout.FontFamily == "" {
		layout.FontFamily = defaultFamily
	}
	if layout.TitleSize <= 0 {
		layout.TitleSize = 24
	}
	if layout.LineSize <= 0 {
		layout.LineSize = 16
	}
	if layout.TopOffset <= 0 {
		layout.TopOffset = 20
	}
	if layout.LineStep <= 0 {
		layout.LineStep = 10
	}
	if layout.LeftMargin <= 0 {
		layout.LeftMargin = 15
	}
	if layout.BottomMargin <= 0 {
		layout.BottomMargin = 15
	}
	return layout
}

// compactLayout 缩小字号与行距，单页可容纳更多条目
func compactLayout(layout Layout) Layout {
	layout.TitleSize *= compactScale
	layout.LineSize *= compactScale
	layout.LineStep *= compactStepPct
	return layout
}

// placement 某一行所在的页码（从 0 开始）与纵坐标
type placement struct {
	page int
	y    float64
}

// placeLines 计算每行位置：标题位于 top，第 i 行位于 top + step*(i+1)，
// 超出 pageHeight - bottom 时换页并从 top 重新开始
func placeLines(count int, pageHeight float64, layout Layout) []placement {
	result := make([]placement, 0, count)
	limit := pageHeight - layout.BottomMargin
	page := 0
	y := layout.TopOffset
	for i := 0; i < count; i++ {
		y += layout.LineStep
		if y > limit {
			page++
			y = layout.TopOffset
		}
		result = append(result, placement{page: page, y: y})
	}
	return result
}

// PDFRenderer 基于 fpdf 的 PDF 清单
type PDFRenderer struct {
	layout Layout
}

// NewPDFRenderer 创建 PDF 渲染器
func NewPDFRenderer(layout Layout) *PDFRenderer {
	return &PDFRenderer{layout: layout}
}

// Layout 返回排版参数
func (r *PDFRenderer) Layout() Layout {
	return r.layout
}

// ContentType 实现 Renderer
func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}

// Filename 实现 Renderer
func (r *PDFRenderer) Filename() string {
	return "shopping_list.pdf"
}

// Render 加载字体并逐行绘制
func (r *PDFRenderer) Render(w io.Writer, title string, lines []Line) error {
	fontBytes, err := r.loadFont()
	if err != nil {
		return err
	}

	pdf := fpdf.New("P", pdfUnit, pdfPageSize, "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(r.layout.LeftMargin, r.layout.TopOffset, r.layout.LeftMargin)
	pdf.AddUTF8FontFromBytes(r.layout.FontFamily, pdfFontStyle, fontBytes)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("register font failed: %w", err)
	}

	pdf.AddPage()
	_, pageHeight := pdf.GetPageSize()
	pdf.SetFont(r.layout.FontFamily, pdfFontStyle, r.layout.TitleSize)
	pdf.Text(r.layout.LeftMargin, r.layout.TopOffset, title)

	pdf.SetFont(r.layout.FontFamily, pdfFontStyle, r.layout.LineSize)
	page := 0
	for i, pos := range placeLines(len(lines), pageHeight, r.layout) {
		if pos.page != page {
			pdf.AddPage()
			pdf.SetFont(r.layout.FontFamily, pdfFontStyle, r.layout.LineSize)
			page = pos.page
		}
		pdf.Text(r.layout.LeftMargin, pos.y, FormatLine(i+1, lines[i]))
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf failed: %w", err)
	}
	return pdf.Output(w)
}

func (r *PDFRenderer) loadFont() ([]byte, error) {
	if r.layout.FontPath == "" {
		return nil, ErrFontNotFound
	}
	info, err := os.Stat(r.layout.FontPath)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrFontNotFound, r.layout.FontPath)
	}
	content, err := os.ReadFile(r.layout.FontPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFontNotFound, r.layout.FontPath)
	}
	return content, nil
}
