package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
}

// PageResponse 列表响应，pagination 与 data 同级
type PageResponse struct {
	Response
	Pagination Pagination `json:"pagination"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// BuildPagination pageSize 为 0 时 total_page 为 0
func BuildPagination(page, pageSize int, total int64) Pagination {
	p := Pagination{Page: page, PageSize: pageSize, Total: total}
	if pageSize > 0 {
		size := int64(pageSize)
		p.TotalPage = (total + size - 1) / size
	}
	return p
}

func ok(data interface{}) Response {
	return Response{StatusCode: CodeOK, Msg: msgSuccess, Data: data}
}

// Success 200
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, ok(data))
}

// Created 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, ok(data))
}

// NoContent 204，无响应体
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{Response: ok(data), Pagination: pagination})
}

// Error 中断请求并返回错误，HTTP 状态码与业务码一致
func Error(c *gin.Context, code int, msg string) {
	ErrorWithData(c, code, msg, nil)
}

// ErrorWithData 有 request_id 时 data 被包成 {request_id, data}
func ErrorWithData(c *gin.Context, code int, msg string, data interface{}) {
	c.AbortWithStatusJSON(httpStatus(code), Response{
		StatusCode: code,
		Msg:        msg,
		Data:       withRequestID(c, data),
	})
}

func withRequestID(c *gin.Context, data interface{}) interface{} {
	if c == nil {
		return data
	}
	requestID := c.GetString("request_id")
	switch {
	case requestID == "":
		return data
	case data == nil:
		return gin.H{"request_id": requestID}
	default:
		return gin.H{"request_id": requestID, "data": data}
	}
}
