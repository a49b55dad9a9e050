package shared

import (
	"errors"

	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/i18n"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MappedError 业务错误到接口错误码与消息键的映射
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if id := c.GetString("request_id"); id != "" {
		return logger.SW("request_id", id)
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	respond(c, response.WrapError(code, i18n.T(locale, key), err))
}

// RespondValidation 校验错误优先使用其自带的消息键与参数
func RespondValidation(c *gin.Context, err error, fallbackKey string) {
	var verr *service.ValidationError
	if errors.As(err, &verr) && verr.Key != "" {
		msg := i18n.Sprintf(i18n.ResolveLocale(c), verr.Key, verr.Args...)
		respond(c, response.WrapError(response.CodeBadRequest, msg, nil))
		return
	}
	RespondError(c, response.CodeBadRequest, fallbackKey, nil)
}

// RespondMapped 按映射表返回错误，未命中时以 500 记录原始错误
func RespondMapped(c *gin.Context, err error, rules []MappedError, fallbackKey string) {
	var verr *service.ValidationError
	if errors.As(err, &verr) && verr.Key != "" {
		RespondValidation(c, err, fallbackKey)
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	RespondError(c, response.CodeInternal, fallbackKey, err)
}

// respond 5xx 以 error 级别记录原始错误，其余降为 warn
func respond(c *gin.Context, appErr *response.AppError) {
	if appErr.Err != nil {
		log := RequestLog(c).With("code", appErr.Code, "message", appErr.Message, "error", appErr.Err)
		if appErr.ServerSide() {
			log.Errorw("handler_error")
		} else {
			log.Warnw("handler_error")
		}
	}
	response.Error(c, appErr.Code, appErr.Message)
}
