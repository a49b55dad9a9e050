package response

import "fmt"

// AppError 处理器层错误，Message 为已翻译的提示，Err 只写日志不返回客户端
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// ServerSide 5xx 错误
func (e *AppError) ServerSide() bool { return httpStatus(e.Code) >= CodeInternal }

// WrapError 包装错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
