package response

import "net/http"

// 业务状态码；非 0 时同时作为 HTTP 状态返回
const (
	CodeOK              = 0
	CodeBadRequest      = http.StatusBadRequest
	CodeUnauthorized    = http.StatusUnauthorized
	CodeForbidden       = http.StatusForbidden
	CodeNotFound        = http.StatusNotFound
	CodeTooManyRequests = http.StatusTooManyRequests
	CodeInternal        = http.StatusInternalServerError
)

const msgSuccess = "success"

// httpStatus 超出 4xx/5xx 范围的业务码一律按 500 返回
func httpStatus(code int) int {
	if code < http.StatusBadRequest || code > 599 {
		return http.StatusInternalServerError
	}
	return code
}
