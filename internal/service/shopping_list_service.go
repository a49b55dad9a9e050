package service

import (
	"io"

	"github.com/foodgram-next/internal/i18n"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/shoppinglist"
)

// ShoppingListService 汇总购物车食材并输出清单
type ShoppingListService struct {
	cartRepo repository.ShoppingCartRepository
	renderer shoppinglist.Renderer
	mode     shoppinglist.KeyMode
}

// NewShoppingListService 创建购物清单服务
func NewShoppingListService(
	cartRepo repository.ShoppingCartRepository,
	renderer shoppinglist.Renderer,
	mode shoppinglist.KeyMode,
) *ShoppingListService {
	if mode == "" {
		mode = shoppinglist.KeyByNameAndUnit
	}
	if renderer == nil {
		renderer = shoppinglist.TextRenderer{}
	}
	return &ShoppingListService{cartRepo: cartRepo, renderer: renderer, mode: mode}
}

// Renderer 当前使用的渲染器
func (s *ShoppingListService) Renderer() shoppinglist.Renderer {
	return s.renderer
}

// Build 汇总用户购物车中所有菜谱的食材
func (s *ShoppingListService) Build(userID uint) ([]shoppinglist.Line, error) {
	rows, err := s.cartRepo.ListShoppingRows(userID)
	if err != nil {
		return nil, err
	}
	items := make([]shoppinglist.Row, 0, len(rows))
	for _, row := range rows {
		items = append(items, shoppinglist.Row{
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			Amount:          row.Amount,
		})
	}
	return shoppinglist.Aggregate(items, s.mode), nil
}

// Render 汇总并写出清单，标题按 locale 翻译
func (s *ShoppingListService) Render(w io.Writer, userID uint, locale string) error {
	lines, err := s.Build(userID)
	if err != nil {
		return err
	}
	return s.renderer.Render(w, i18n.T(locale, "shopping_list.title"), lines)
}
