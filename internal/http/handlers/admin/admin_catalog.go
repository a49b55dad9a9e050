package admin

import (
	"strings"

	handlershared "github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

// TagRequest 标签请求
type TagRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Color string `json:"color" binding:"required,hexcolor"`
	Slug  string `json:"slug" binding:"required,max=200,fg_slug"`
}

func (r TagRequest) toInput() service.TagInput {
	return service.TagInput{Name: r.Name, Color: r.Color, Slug: r.Slug}
}

// GetAdminTags 标签列表
func (h *Handler) GetAdminTags(c *gin.Context) {
	tags, err := h.TagService.List(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.tag_fetch_failed", err)
		return
	}
	response.Success(c, tags)
}

// CreateTag 创建标签
func (h *Handler) CreateTag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	tag, err := h.TagService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondWithMappedError(c, err, tagErrorRules, "error.save_failed")
		return
	}
	response.Created(c, tag)
}

// UpdateTag 更新标签
func (h *Handler) UpdateTag(c *gin.Context) {
	id, ok := parseIDParam(c, "error.tag_id_invalid")
	if !ok {
		return
	}
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	tag, err := h.TagService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, tagErrorRules, "error.save_failed")
		return
	}
	response.Success(c, tag)
}

// DeleteTag 删除标签
func (h *Handler) DeleteTag(c *gin.Context) {
	id, ok := parseIDParam(c, "error.tag_id_invalid")
	if !ok {
		return
	}
	if err := h.TagService.Delete(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, tagErrorRules, "error.delete_failed")
		return
	}
	h.recordAdminAudit(c, service.AuthzAuditRecordInput{
		TargetType: service.AuditTargetTag,
		TargetID:   id,
		Action:     "tag_delete",
	})
	response.NoContent(c)
}

// IngredientRequest 食材请求
type IngredientRequest struct {
	Name            string `json:"name" binding:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" binding:"required,max=200"`
}

func (r IngredientRequest) toInput() service.IngredientInput {
	return service.IngredientInput{Name: r.Name, MeasurementUnit: r.MeasurementUnit}
}

// GetAdminIngredients 食材列表，search 按名称包含匹配
func (h *Handler) GetAdminIngredients(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c, h.paginationDefaults())
	ingredients, total, err := h.IngredientService.List(repository.IngredientListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.ingredient_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, ingredients, response.BuildPagination(page, pageSize, total))
}

// CreateIngredient 创建食材
func (h *Handler) CreateIngredient(c *gin.Context) {
	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	ingredient, err := h.IngredientService.Create(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, ingredientErrorRules, "error.save_failed")
		return
	}
	response.Created(c, ingredient)
}

// UpdateIngredient 更新食材
func (h *Handler) UpdateIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "error.ingredient_id_invalid")
	if !ok {
		return
	}
	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	ingredient, err := h.IngredientService.Update(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, ingredientErrorRules, "error.save_failed")
		return
	}
	response.Success(c, ingredient)
}

// DeleteIngredient 删除食材，仍被菜谱引用时拒绝
func (h *Handler) DeleteIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "error.ingredient_id_invalid")
	if !ok {
		return
	}
	if err := h.IngredientService.Delete(id); err != nil {
		respondWithMappedError(c, err, ingredientErrorRules, "error.delete_failed")
		return
	}
	h.recordAdminAudit(c, service.AuthzAuditRecordInput{
		TargetType: service.AuditTargetIngredient,
		TargetID:   id,
		Action:     "ingredient_delete",
	})
	response.NoContent(c)
}
