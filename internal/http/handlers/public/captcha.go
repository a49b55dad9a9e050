package public

import (
	"github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

var captchaErrorRules = []shared.MappedError{
	{Target: service.ErrCaptchaConfigInvalid, Code: response.CodeBadRequest, Key: "error.captcha_unavailable"},
}

// GetImageCaptcha 返回 captcha_id 与 base64 图片
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if h.CaptchaService == nil {
		respondError(c, response.CodeInternal, "error.captcha_unavailable", service.ErrCaptchaConfigInvalid)
		return
	}
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondWithMappedError(c, err, captchaErrorRules, "error.captcha_generate_failed")
		return
	}
	response.Success(c, challenge)
}

// GetCaptchaSetting 未配置验证码服务时返回空场景列表
func (h *Handler) GetCaptchaSetting(c *gin.Context) {
	setting := service.CaptchaPublicSetting{Scenes: []string{}}
	if h.CaptchaService != nil {
		setting = h.CaptchaService.PublicSetting()
	}
	response.Success(c, setting)
}
