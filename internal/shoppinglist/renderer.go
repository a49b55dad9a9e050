package shoppinglist

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/constants"
)

// Renderer 购物清单输出格式
type Renderer interface {
	// ContentType 响应的 Content-Type
	ContentType() string
	// Filename 附件文件名
	Filename() string
	// Render 写出标题与全部行；lines 为空时只输出标题
	Render(w io.Writer, title string, lines []Line) error
}

// NewRenderer 按 format 选择渲染器，未知格式直接报错
// 字体文件不在这里校验，每次渲染时检查
func NewRenderer(cfg config.ShoppingListConfig) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", constants.ShoppingListFormatText:
		return TextRenderer{}, nil
	case constants.ShoppingListFormatPDF:
		return NewPDFRenderer(layoutFromConfig(cfg.PDF)), nil
	case constants.ShoppingListFormatPDFCompact:
		return NewPDFRenderer(compactLayout(layoutFromConfig(cfg.PDF))), nil
	default:
		return nil, fmt.Errorf("unknown shopping list format: %s", cfg.Format)
	}
}

// TextRenderer 纯文本清单
type TextRenderer struct{}

// ContentType 实现 Renderer
func (TextRenderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Filename 实现 Renderer
func (TextRenderer) Filename() string {
	return "shopping_list.txt"
}

// Render 第一行为标题，之后每行一个条目
func (TextRenderer) Render(w io.Writer, title string, lines []Line) error {
	buf := bufio.NewWriter(w)
	if _, err := buf.WriteString(title + "\n"); err != nil {
		return err
	}
	for i, line := range lines {
		if _, err := buf.WriteString(FormatLine(i+1, line) + "\n"); err != nil {
			return err
		}
	}
	return buf.Flush()
}
