package service

import (
	"errors"
	"strings"

	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

// IngredientService 食材业务服务
type IngredientService struct {
	repo repository.IngredientRepository
}

// NewIngredientService 创建食材服务
func NewIngredientService(repo repository.IngredientRepository) *IngredientService {
	return &IngredientService{repo: repo}
}

// IngredientInput 创建/更新食材输入
type IngredientInput struct {
	Name            string
	MeasurementUnit string
}

// Search 前台按名称前缀搜索，不分页
func (s *IngredientService) Search(namePrefix string) ([]models.Ingredient, error) {
	ingredients, _, err := s.repo.List(repository.IngredientListFilter{NamePrefix: namePrefix})
	return ingredients, err
}

// List 后台分页列表
func (s *IngredientService) List(filter repository.IngredientListFilter) ([]models.Ingredient, int64, error) {
	return s.repo.List(filter)
}

// Get 获取食材
func (s *IngredientService) Get(id uint) (*models.Ingredient, error) {
	ingredient, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, ErrNotFound
	}
	return ingredient, nil
}

// Create 创建食材
func (s *IngredientService) Create(input IngredientInput) (*models.Ingredient, error) {
	ingredient := &models.Ingredient{}
	if err := applyIngredientInput(ingredient, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ingredient); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrIngredientExists
		}
		return nil, err
	}
	return ingredient, nil
}

// Import 批量导入，已存在的 (名称, 单位) 跳过；返回新建数量
func (s *IngredientService) Import(inputs []IngredientInput) (int, error) {
	created := 0
	for _, input := range inputs {
		ingredient := &models.Ingredient{}
		if err := applyIngredientInput(ingredient, input); err != nil {
			return created, err
		}
		exist, err := s.repo.GetByNameAndUnit(ingredient.Name, ingredient.MeasurementUnit)
		if err != nil {
			return created, err
		}
		if exist != nil {
			continue
		}
		if err := s.repo.Create(ingredient); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}

// Update 更新食材
func (s *IngredientService) Update(id uint, input IngredientInput) (*models.Ingredient, error) {
	ingredient, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := applyIngredientInput(ingredient, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ingredient); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrIngredientExists
		}
		return nil, err
	}
	return ingredient, nil
}

// Delete 删除未被任何菜谱使用的食材
func (s *IngredientService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	count, err := s.repo.CountUsage(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrIngredientInUse
	}
	return s.repo.Delete(id)
}

func applyIngredientInput(ingredient *models.Ingredient, input IngredientInput) error {
	name := strings.TrimSpace(input.Name)
	unit := strings.TrimSpace(input.MeasurementUnit)
	if name == "" || len([]rune(name)) > constants.IngredientNameMaxLength {
		return newValidationError("error.ingredient_name_invalid", ErrIngredientInvalid)
	}
	if unit == "" || len([]rune(unit)) > constants.IngredientNameMaxLength {
		return newValidationError("error.ingredient_unit_invalid", ErrIngredientInvalid)
	}
	ingredient.Name = name
	ingredient.MeasurementUnit = unit
	return nil
}
