package public

import (
	"time"

	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Email          string                       `json:"email" binding:"required,email,max=254"`
	Username       string                       `json:"username" binding:"required,max=150,fg_username"`
	FirstName      string                       `json:"first_name" binding:"required,max=150"`
	LastName       string                       `json:"last_name" binding:"required,max=150"`
	Password       string                       `json:"password" binding:"required,max=150"`
	CaptchaPayload shared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !shared.VerifyCaptcha(c, h.CaptchaService, constants.CaptchaSceneRegister, req.CaptchaPayload) {
		return
	}

	user, err := h.UserAuthService.Register(service.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		respondWithMappedError(c, err, registerErrorRules, "error.register_failed")
		return
	}

	response.Created(c, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	})
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email          string                       `json:"email" binding:"required"`
	Password       string                       `json:"password" binding:"required"`
	CaptchaPayload shared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// UserLogin 用户登录，返回 auth_token
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !shared.VerifyCaptcha(c, h.CaptchaService, constants.CaptchaSceneLogin, req.CaptchaPayload) {
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password)
	var userID uint
	if user != nil {
		userID = user.ID
	}
	h.recordLogin(c, userID, req.Email, err)
	if err != nil {
		respondWithMappedError(c, err, loginErrorRules, "error.login_failed")
		return
	}

	response.Success(c, gin.H{
		"auth_token": token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// UserLogout 使当前用户已签发的 Token 全部失效
func (h *Handler) UserLogout(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.UserAuthService.Logout(userID); err != nil {
		respondWithMappedError(c, err, passwordErrorRules, "error.logout_failed")
		return
	}
	response.NoContent(c)
}

// SetPasswordRequest 修改密码请求
type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// SetPassword 修改当前用户密码
func (h *Handler) SetPassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.UserAuthService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, passwordErrorRules, "error.password_change_failed")
		return
	}
	response.NoContent(c)
}
