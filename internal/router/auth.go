package router

import (
	"context"
	"strings"

	"github.com/foodgram-next/internal/authz"
	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/i18n"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	adminIDContextKey      = "admin_id"
	adminIsSuperContextKey = "admin_is_super"
	usernameContextKey     = "username"
	userIDContextKey       = "user_id"
	userEmailContextKey    = "user_email"
	userIsStaffContextKey  = "user_is_staff"
)

var hs256Parser = jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

func abortUnauthorized(c *gin.Context, key string) {
	response.Error(c, response.CodeUnauthorized, i18n.T(i18n.ResolveLocale(c), key))
	c.Abort()
}

// bearerToken 取出 Authorization 中的 token，前缀可以是 Bearer 或 Token
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || (scheme != "Bearer" && scheme != "Token") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func parseHS256(secret, raw string, claims jwt.Claims) bool {
	token, err := hs256Parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	return err == nil && token.Valid
}

// tokenFresh 版本号一致，且签发时间不早于 invalidBefore（Unix 秒，0 为未设置）
func tokenFresh(issuedAt *jwt.NumericDate, claimVersion, currentVersion uint64, invalidBefore int64) bool {
	if claimVersion != currentVersion {
		return false
	}
	if invalidBefore <= 0 {
		return true
	}
	return issuedAt != nil && issuedAt.Unix() >= invalidBefore
}

// adminState 先查 redis 快照，未命中时读库并回填
func adminState(ctx context.Context, adminRepo repository.AdminRepository, adminID uint) *cache.AdminAuthState {
	if state, hit, err := cache.GetAdminAuthState(ctx, adminID); err == nil && hit && state != nil {
		return state
	}
	admin, err := adminRepo.GetByID(adminID)
	if err != nil || admin == nil {
		return nil
	}
	state := cache.BuildAdminAuthState(admin)
	if err := cache.SetAdminAuthState(ctx, state); err != nil {
		logger.Debugw("auth_state_cache_set_failed", "admin_id", adminID, "error", err)
	}
	return state
}

func userState(ctx context.Context, userRepo repository.UserRepository, userID uint) *cache.UserAuthState {
	if state, hit, err := cache.GetUserAuthState(ctx, userID); err == nil && hit && state != nil {
		return state
	}
	user, err := userRepo.GetByID(userID)
	if err != nil || user == nil {
		return nil
	}
	state := cache.BuildUserAuthState(user)
	if err := cache.SetUserAuthState(ctx, state); err != nil {
		logger.Debugw("auth_state_cache_set_failed", "user_id", userID, "error", err)
	}
	return state
}

// JWTAuthMiddleware 后台管理员鉴权
func JWTAuthMiddleware(secretKey string, adminRepo repository.AdminRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" {
			abortUnauthorized(c, "error.jwt_secret_missing")
			return
		}
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "error.auth_header_missing")
			return
		}
		raw, ok := bearerToken(header)
		if !ok {
			abortUnauthorized(c, "error.auth_header_invalid")
			return
		}
		claims := &service.JWTClaims{}
		if adminRepo == nil || !parseHS256(secretKey, raw, claims) || claims.AdminID == 0 {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		state := adminState(c.Request.Context(), adminRepo, claims.AdminID)
		if state == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		if !tokenFresh(claims.IssuedAt, claims.TokenVersion, state.TokenVersion, state.TokenInvalidBefore) {
			abortUnauthorized(c, "error.token_revoked")
			return
		}
		c.Set(adminIDContextKey, claims.AdminID)
		c.Set(usernameContextKey, claims.Username)
		c.Set(adminIsSuperContextKey, state.IsSuper)
		c.Next()
	}
}

// AdminRBACMiddleware 超级管理员直接放行，其余按路由模板与方法做 casbin 判定
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("admin_rbac_service_unavailable")
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		if c.GetBool(adminIsSuperContextKey) {
			c.Next()
			return
		}
		adminID := c.GetUint(adminIDContextKey)
		if adminID == 0 {
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		resource := c.FullPath()
		if resource == "" {
			resource = c.Request.URL.Path
		}
		allowed, err := authzService.EnforceAdmin(adminID, resource, c.Request.Method)
		switch {
		case err != nil:
			logger.Errorw("admin_rbac_enforce_failed", "admin_id", adminID, "method", c.Request.Method, "resource", resource, "error", err)
			abortUnauthorized(c, "error.unauthorized")
		case !allowed:
			logger.Warnw("admin_rbac_permission_denied", "admin_id", adminID, "method", c.Request.Method, "resource", authz.NormalizeObject(resource))
			response.Error(c, response.CodeForbidden, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
		default:
			c.Next()
		}
	}
}

// authenticateUser 校验用户 token，返回失败时对应的错误 key
func authenticateUser(c *gin.Context, secretKey string, userRepo repository.UserRepository, raw string) (*service.UserJWTClaims, *cache.UserAuthState, string) {
	claims := &service.UserJWTClaims{}
	if !parseHS256(secretKey, raw, claims) || claims.UserID == 0 {
		return nil, nil, "error.token_invalid"
	}
	state := userState(c.Request.Context(), userRepo, claims.UserID)
	if state == nil {
		return nil, nil, "error.token_invalid"
	}
	if strings.ToLower(strings.TrimSpace(state.Status)) != constants.UserStatusActive {
		return nil, nil, "error.user_disabled"
	}
	if !tokenFresh(claims.IssuedAt, claims.TokenVersion, state.TokenVersion, state.TokenInvalidBefore) {
		return nil, nil, "error.token_revoked"
	}
	return claims, state, ""
}

func setUserContext(c *gin.Context, claims *service.UserJWTClaims, state *cache.UserAuthState) {
	c.Set(userIDContextKey, claims.UserID)
	c.Set(userEmailContextKey, claims.Email)
	c.Set(userIsStaffContextKey, state.IsStaff)
}

// UserJWTAuthMiddleware 需要登录的用户接口
func UserJWTAuthMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" {
			abortUnauthorized(c, "error.jwt_secret_missing")
			return
		}
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		raw, ok := bearerToken(header)
		if !ok {
			abortUnauthorized(c, "error.auth_header_invalid")
			return
		}
		if userRepo == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		claims, state, failure := authenticateUser(c, secretKey, userRepo, raw)
		if failure != "" {
			abortUnauthorized(c, failure)
			return
		}
		setUserContext(c, claims, state)
		c.Next()
	}
}

// OptionalUserJWTMiddleware token 有效时写入用户上下文，无效或缺失都按游客继续
func OptionalUserJWTMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if ok && secretKey != "" && userRepo != nil {
			if claims, state, failure := authenticateUser(c, secretKey, userRepo, raw); failure == "" {
				setUserContext(c, claims, state)
			}
		}
		c.Next()
	}
}
